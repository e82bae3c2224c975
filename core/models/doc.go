// Package models defines the value objects shared between the gateways
// and the sync engine.
//
// All types are plain immutable data carriers constructed fresh per
// operation; nothing here persists beyond a single request/response
// cycle. JSON tags follow the wire names used by the service API
// (source_id, fqdn, created_or_updated, ...).
package models
