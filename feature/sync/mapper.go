package sync

import (
	"strings"

	"inventory-sync/core/models"
)

// localSuffix makes bare hostnames dot-qualified; Infoblox rejects host
// record names that are not FQDN-shaped.
const localSuffix = ".local"

// Provenance extattr keys stamped on every synced record.
const (
	extAttrSource   = "Source"
	extAttrDeviceID = "WUG Device ID"
	extAttrStatus   = "WUG Status"

	sourceSystemName = "WhatsUpGold"
)

// DeviceToHostRecord maps a WUG device onto the Infoblox host record
// shape. Pure: same input always yields the same output.
//
// Hostname normalization: trim, lowercase, spaces become hyphens, and a
// ".local" suffix is appended when the name carries no dot.
func DeviceToHostRecord(device models.Device, networkView string) models.HostRecord {
	host := strings.ToLower(strings.TrimSpace(device.Hostname))
	host = strings.ReplaceAll(host, " ", "-")
	if !strings.Contains(host, ".") {
		host += localSuffix
	}

	return models.HostRecord{
		FQDN:        host,
		IPAddress:   device.IPAddress,
		NetworkView: networkView,
		ExtAttrs: map[string]models.ExtAttrValue{
			extAttrSource:   {Value: sourceSystemName},
			extAttrDeviceID: {Value: device.SourceID},
			extAttrStatus:   {Value: device.Status},
		},
	}
}
