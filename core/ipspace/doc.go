// Package ipspace provides pure IPv4 address-space arithmetic over CIDR
// strings: validation, usable-host enumeration, membership tests,
// utilization statistics and next-free-address selection.
//
// All functions are side-effect free. Validation helpers never return
// errors for malformed input; they report false instead, which keeps
// callers free of error plumbing at the service boundary.
//
// Host bits in a CIDR are tolerated ("192.168.1.5/24" means
// "192.168.1.0/24"). Networks smaller than three addresses (/31, /32)
// are treated as having no usable hosts, matching the classic
// network+broadcast exclusion rule.
package ipspace
