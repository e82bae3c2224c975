package ipam

import (
	"context"

	"inventory-sync/core/gateway/infoblox"
	"inventory-sync/core/ipspace"
	"inventory-sync/core/utils"

	"go.uber.org/zap"
)

// Service answers address-space questions by combining Infoblox data
// with the pure ipspace arithmetic.
type Service struct {
	infoblox infoblox.Client
	logger   *zap.Logger
}

// NewService creates a new ipam service.
func NewService(infobloxClient infoblox.Client, logger *zap.Logger) *Service {
	return &Service{infoblox: infobloxClient, logger: logger}
}

// usedAddresses collects the addresses consumed inside the network:
// fixed addresses plus host record addresses. Entries outside the
// network are dropped.
func (s *Service) usedAddresses(ctx context.Context, cidr string) ([]string, error) {
	used := []string{}

	fixed, err := s.infoblox.FetchFixedAddresses(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range fixed {
		if ip := utils.ToString(item["ipv4addr"]); ipspace.AddressInNetwork(ip, cidr) {
			used = append(used, ip)
		}
	}

	records, err := s.infoblox.FetchAllHostRecords(ctx, 0)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if ipspace.AddressInNetwork(record.IPAddress, cidr) {
			used = append(used, record.IPAddress)
		}
	}

	return used, nil
}

// Utilization reports how full the network is, counting fixed addresses
// and host records as used.
func (s *Service) Utilization(ctx context.Context, cidr string) (*ipspace.Utilization, error) {
	used, err := s.usedAddresses(ctx, cidr)
	if err != nil {
		return nil, err
	}
	return ipspace.ComputeUtilization(cidr, used)
}

// Available lists the free usable addresses of the network, ascending,
// truncated to limit when positive.
func (s *Service) Available(ctx context.Context, cidr string, limit int) ([]string, error) {
	used, err := s.usedAddresses(ctx, cidr)
	if err != nil {
		return nil, err
	}
	return ipspace.AvailableAddresses(cidr, used, limit)
}

// NextAvailable returns the first free usable address, or an empty
// string when the network is full.
func (s *Service) NextAvailable(ctx context.Context, cidr string) (string, error) {
	used, err := s.usedAddresses(ctx, cidr)
	if err != nil {
		return "", err
	}
	return ipspace.NextAvailableAddress(cidr, used)
}
