package models

// Device represents a device discovered in WhatsUp Gold.
// SourceID is the stable identifier assigned by WUG; Raw carries the
// untouched JSON payload for diagnostics.
type Device struct {
	// SourceID is the WUG device identifier.
	SourceID string `json:"source_id"`

	// Hostname is the display name reported by WUG.
	Hostname string `json:"hostname"`

	// IPAddress is the device's primary IPv4 address.
	IPAddress string `json:"ip_address"`

	// Status is the monitoring state as reported by WUG (opaque).
	Status string `json:"status"`

	// Raw is the original device payload, kept as an open key-value bag.
	Raw map[string]any `json:"raw,omitempty"`
}

// ExtAttrValue wraps an extensible attribute value.
// Infoblox requires every extattr value to be wrapped in a single-key
// object rather than passed as a bare scalar.
type ExtAttrValue struct {
	Value string `json:"value"`
}

// HostRecord represents an Infoblox host record to be written via WAPI.
type HostRecord struct {
	// FQDN is the normalized, dot-qualified record name.
	FQDN string `json:"fqdn"`

	// IPAddress is the record's IPv4 address.
	IPAddress string `json:"ip_address"`

	// NetworkView is the Infoblox network view the record belongs to.
	NetworkView string `json:"network_view"`

	// ExtAttrs holds provenance metadata, each value wrapped per the
	// Infoblox extattr convention.
	ExtAttrs map[string]ExtAttrValue `json:"extattrs"`
}

// SyncDetail is the per-item outcome entry of a sync run.
// Exactly one of Result, Error or Skipped is populated.
type SyncDetail struct {
	DeviceID  string `json:"device_id,omitempty"`
	Hostname  string `json:"hostname"`
	IPAddress string `json:"ip_address"`

	// Result holds the success payload returned by the gateway.
	Result any `json:"result,omitempty"`

	// Error holds the failure message for items that could not be synced.
	Error string `json:"error,omitempty"`

	// Skipped holds the reason an item was intentionally not synced.
	Skipped string `json:"skipped,omitempty"`
}

// SyncResult aggregates the outcome of one full sync pass.
type SyncResult struct {
	// Discovered is the number of items fetched from the source system.
	Discovered int `json:"discovered"`

	// Processed is the number of items attempted, regardless of outcome.
	Processed int `json:"processed"`

	// CreatedOrUpdated counts items successfully written (or that would
	// have been written in a dry run).
	CreatedOrUpdated int `json:"created_or_updated"`

	// Skipped counts items intentionally left alone.
	Skipped int `json:"skipped"`

	// Errors counts items that failed.
	Errors int `json:"errors"`

	// DryRun indicates whether writes were actually performed.
	DryRun bool `json:"dry_run"`

	// Details lists per-item outcomes in processing order.
	Details []SyncDetail `json:"details"`
}
