package ipspace

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"
	"net/netip"
)

// Utilization describes how full an IPv4 network is.
type Utilization struct {
	// Network is the CIDR the report was computed for, as given.
	Network string `json:"network"`

	// TotalIPs is the number of usable host addresses (network and
	// broadcast excluded).
	TotalIPs int `json:"total_ips"`

	// UsedIPs is the number of supplied addresses that actually fall
	// inside the network.
	UsedIPs int `json:"used_ips"`

	// AvailableIPs is TotalIPs minus UsedIPs.
	AvailableIPs int `json:"available_ips"`

	// UtilizationPercent is UsedIPs/TotalIPs as a percentage, rounded
	// to two decimals. Zero when the network has no usable addresses.
	UtilizationPercent float64 `json:"utilization_percent"`

	NetworkAddress   string `json:"network_address"`
	BroadcastAddress string `json:"broadcast_address"`
	Netmask          string `json:"netmask"`
	PrefixLength     int    `json:"prefix_length"`
}

// parseNetwork parses an IPv4 CIDR. Host bits are tolerated: the prefix
// is masked down to its network address.
func parseNetwork(cidr string) (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid network %q: %w", cidr, err)
	}
	if !prefix.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("invalid network %q: not IPv4", cidr)
	}
	return prefix.Masked(), nil
}

// ValidAddress reports whether s is a well-formed IPv4 address.
func ValidAddress(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

// ValidNetwork reports whether s is a well-formed IPv4 CIDR.
func ValidNetwork(s string) bool {
	_, err := parseNetwork(s)
	return err == nil
}

// AddressInNetwork reports whether ip belongs to the given network.
// Malformed input yields false, never an error.
func AddressInNetwork(ip, cidr string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return false
	}
	prefix, err := parseNetwork(cidr)
	if err != nil {
		return false
	}
	return prefix.Contains(addr)
}

// UsableAddresses returns every host address in the network, in
// ascending order, excluding the network and broadcast addresses.
// Networks with fewer than three total addresses (/31, /32) yield an
// empty slice.
func UsableAddresses(cidr string) ([]string, error) {
	prefix, err := parseNetwork(cidr)
	if err != nil {
		return nil, err
	}
	first, last := hostRange(prefix)
	if first > last {
		return []string{}, nil
	}
	out := make([]string, 0, last-first+1)
	for v := first; v <= last; v++ {
		out = append(out, u32ToAddr(v).String())
	}
	return out, nil
}

// ComputeUtilization calculates usage statistics for a network.
// Entries of used that are malformed or outside the network are
// silently excluded from the count.
func ComputeUtilization(cidr string, used []string) (*Utilization, error) {
	prefix, err := parseNetwork(cidr)
	if err != nil {
		return nil, err
	}

	total := totalUsable(prefix)

	usedCount := 0
	for _, s := range used {
		addr, err := netip.ParseAddr(s)
		if err != nil || !addr.Is4() {
			continue
		}
		if prefix.Contains(addr) {
			usedCount++
		}
	}

	percent := 0.0
	if total > 0 {
		percent = math.Round(float64(usedCount)/float64(total)*100*100) / 100
	}

	network := prefix.Addr()
	broadcast := broadcastAddr(prefix)
	mask := net.CIDRMask(prefix.Bits(), 32)

	return &Utilization{
		Network:            cidr,
		TotalIPs:           total,
		UsedIPs:            usedCount,
		AvailableIPs:       total - usedCount,
		UtilizationPercent: percent,
		NetworkAddress:     network.String(),
		BroadcastAddress:   broadcast.String(),
		Netmask:            net.IP(mask).String(),
		PrefixLength:       prefix.Bits(),
	}, nil
}

// AvailableAddresses returns the usable addresses of the network that
// do not appear in used, ascending. A positive limit truncates the
// result.
func AvailableAddresses(cidr string, used []string, limit int) ([]string, error) {
	prefix, err := parseNetwork(cidr)
	if err != nil {
		return nil, err
	}

	usedSet := make(map[uint32]struct{}, len(used))
	for _, s := range used {
		addr, err := netip.ParseAddr(s)
		if err != nil || !addr.Is4() {
			continue
		}
		usedSet[addrToU32(addr)] = struct{}{}
	}

	first, last := hostRange(prefix)
	out := []string{}
	for v := first; first <= last && v <= last; v++ {
		if _, taken := usedSet[v]; taken {
			continue
		}
		out = append(out, u32ToAddr(v).String())
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// NextAvailableAddress returns the first free usable address in the
// network, or an empty string when the network is full.
func NextAvailableAddress(cidr string, used []string) (string, error) {
	available, err := AvailableAddresses(cidr, used, 1)
	if err != nil {
		return "", err
	}
	if len(available) == 0 {
		return "", nil
	}
	return available[0], nil
}

// totalUsable returns the host address count, excluding network and
// broadcast. /31 and /32 have no usable addresses under this model.
func totalUsable(prefix netip.Prefix) int {
	if prefix.Bits() >= 31 {
		return 0
	}
	return (1 << (32 - prefix.Bits())) - 2
}

// hostRange returns the first and last usable address as uint32 values.
// first > last signals an empty range.
func hostRange(prefix netip.Prefix) (uint32, uint32) {
	base := addrToU32(prefix.Addr())
	if prefix.Bits() >= 31 {
		return 1, 0
	}
	size := uint32(1) << (32 - prefix.Bits())
	return base + 1, base + size - 2
}

func broadcastAddr(prefix netip.Prefix) netip.Addr {
	base := addrToU32(prefix.Addr())
	if prefix.Bits() >= 32 {
		return prefix.Addr()
	}
	size := uint32(1) << (32 - prefix.Bits())
	return u32ToAddr(base + size - 1)
}

func addrToU32(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

func u32ToAddr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
