// Package wug wraps the WhatsUp Gold REST API.
//
// The Client interface abstracts the monitor so the sync engine can be
// tested against mocks (see core/gateway/wug/mocks).
//
// # Authentication
//
// WUG uses an OAuth password grant. The token is cached inside the
// client instance and refreshed shortly before expiry or after a 401;
// concurrent refreshes collapse into a single request. Authentication
// failures are reported as *AuthError, which callers treat as a
// whole-run failure rather than a per-item one.
//
// # Device listing
//
// The REST API exposes devices per device group, so FetchDevices walks
// /device-groups/- and then each group's /devices page, deduplicating
// by device ID. Devices missing an ID or an IP address are dropped at
// this boundary; the sync engine never sees them.
package wug
