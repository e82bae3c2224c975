// Package gateway groups the remote-API clients the sync service talks to.
//
// Each subpackage wraps one external system behind a small interface:
//
//   - wug: the WhatsUp Gold network monitor (device inventory source)
//   - infoblox: the Infoblox DDI platform (authoritative host records)
//   - transport: the shared retrying HTTP client both gateways use
//
// The gateways own all transport concerns (authentication, retries,
// timeouts, dry-run short-circuits); the sync engine only ever sees
// their final success or failure.
package gateway
