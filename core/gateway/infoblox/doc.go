// Package infoblox wraps the Infoblox WAPI.
//
// The Client interface abstracts the grid so the sync engine can be
// tested against mocks (see core/gateway/infoblox/mocks).
//
// # Upsert semantics
//
// UpsertHostRecord is keyed by FQDN: it queries record:host by name and
// either replaces the existing record in full (PUT to its _ref) or
// creates a new one (POST). Dry runs are recognized here, at the gateway
// boundary, so the sync engine's control flow is identical whether or
// not writes happen; the synthetic "dry-run-upsert" action label is
// observable in the service's responses.
//
// # IPAM fetchers
//
// The Fetch* methods are plain list passthroughs of WAPI objects
// (network views, networks, containers, fixed addresses, ranges, alias
// records, shared networks). The ipam feature combines them with the
// ipspace package to report address-space utilization.
package infoblox
