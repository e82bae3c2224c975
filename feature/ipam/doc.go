// Package ipam exposes the Infoblox address space over HTTP.
//
// It combines the read-only WAPI fetchers (networks, views, containers,
// fixed addresses, ranges, alias records, shared networks) with the
// pure ipspace arithmetic to answer utilization and next-free-address
// questions. Fixed addresses and host records both count as used when
// computing utilization.
package ipam
