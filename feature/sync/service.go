package sync

import (
	"context"
	"errors"

	"inventory-sync/core/gateway/infoblox"
	"inventory-sync/core/gateway/wug"
	"inventory-sync/core/models"

	"go.uber.org/zap"
)

// actionDryRunCreate is the synthetic action reported for reverse-sync
// items that would be created in a real run.
const actionDryRunCreate = "dry-run-create"

// Service drives full sync passes between WUG and Infoblox.
//
// Each pass is a single-threaded batch reducer over one fetched
// collection: per-item outcomes are independent, recorded in fetch
// order, and never abort the batch. Only systemic failures (fetching
// the collection, authentication) propagate out.
type Service struct {
	wug         wug.Client
	infoblox    infoblox.Client
	networkView string
	logger      *zap.Logger
}

// NewService creates a new sync service.
func NewService(wugClient wug.Client, infobloxClient infoblox.Client, networkView string, logger *zap.Logger) *Service {
	return &Service{
		wug:         wugClient,
		infoblox:    infobloxClient,
		networkView: networkView,
		logger:      logger,
	}
}

// RunSync pushes WUG devices into Infoblox host records.
// Dry-run recognition lives in the Infoblox gateway, so the control flow
// here is identical in both modes.
func (s *Service) RunSync(ctx context.Context, dryRun bool, limit int) (*models.SyncResult, error) {
	devices, err := s.wug.FetchDevices(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &models.SyncResult{
		Discovered: len(devices),
		DryRun:     dryRun,
		Details:    []models.SyncDetail{},
	}

	for _, device := range devices {
		result.Processed++

		detail := models.SyncDetail{
			DeviceID:  device.SourceID,
			Hostname:  device.Hostname,
			IPAddress: device.IPAddress,
		}

		record := DeviceToHostRecord(device, s.networkView)
		upsert, err := s.infoblox.UpsertHostRecord(ctx, record, dryRun)
		if err != nil {
			result.Errors++
			detail.Error = err.Error()
			result.Details = append(result.Details, detail)
			s.logger.Warn("Failed to upsert host record",
				zap.String("device_id", device.SourceID),
				zap.String("fqdn", record.FQDN),
				zap.Error(err))
			continue
		}

		result.CreatedOrUpdated++
		detail.Result = upsert
		result.Details = append(result.Details, detail)
	}

	return result, nil
}

// RunReverseSync imports Infoblox host records into WUG as devices.
// Records already present in WUG (by IP address) are skipped, as are
// records missing a hostname or address.
func (s *Service) RunReverseSync(ctx context.Context, dryRun bool, limit int) (*models.SyncResult, error) {
	records, err := s.infoblox.FetchAllHostRecords(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &models.SyncResult{
		Discovered: len(records),
		DryRun:     dryRun,
		Details:    []models.SyncDetail{},
	}

	// The WUG address set is fetched once per run and kept current as
	// devices are created, which preserves duplicate prevention within
	// the run without re-fetching the inventory per record.
	var existing map[string]struct{}

	for _, record := range records {
		result.Processed++

		detail := models.SyncDetail{
			Hostname:  record.Hostname,
			IPAddress: record.IPAddress,
		}

		if record.Hostname == "" || record.IPAddress == "" {
			result.Skipped++
			detail.Skipped = "Missing hostname or IP address"
			result.Details = append(result.Details, detail)
			continue
		}

		if existing == nil {
			set, err := s.wugAddressSet(ctx)
			if err != nil {
				var authErr *wug.AuthError
				if errors.As(err, &authErr) {
					return nil, err
				}
				result.Errors++
				detail.Error = err.Error()
				result.Details = append(result.Details, detail)
				s.logger.Warn("Failed to list WUG devices for existence check", zap.Error(err))
				continue
			}
			existing = set
		}

		if _, found := existing[record.IPAddress]; found {
			result.Skipped++
			detail.Skipped = "Device already exists"
			result.Details = append(result.Details, detail)
			continue
		}

		if dryRun {
			result.CreatedOrUpdated++
			detail.Result = map[string]any{
				"action":     actionDryRunCreate,
				"hostname":   record.Hostname,
				"ip_address": record.IPAddress,
			}
			result.Details = append(result.Details, detail)
			continue
		}

		created, err := s.wug.CreateDevice(ctx, wug.CreateDeviceParams{
			DisplayName:      record.Hostname,
			IPAddress:        record.IPAddress,
			Hostname:         record.Hostname,
			EnableMonitoring: true,
		})
		if err != nil {
			result.Errors++
			detail.Error = err.Error()
			result.Details = append(result.Details, detail)
			s.logger.Warn("Failed to create WUG device",
				zap.String("hostname", record.Hostname),
				zap.String("ip_address", record.IPAddress),
				zap.Error(err))
			continue
		}
		if !created.Success {
			result.Errors++
			detail.Error = created.Message
			result.Details = append(result.Details, detail)
			s.logger.Warn("WUG rejected device creation",
				zap.String("hostname", record.Hostname),
				zap.String("message", created.Message))
			continue
		}

		result.CreatedOrUpdated++
		detail.DeviceID = created.DeviceID
		detail.Result = created
		result.Details = append(result.Details, detail)
		existing[record.IPAddress] = struct{}{}
	}

	return result, nil
}

// wugAddressSet collects the IP addresses of every known WUG device.
func (s *Service) wugAddressSet(ctx context.Context) (map[string]struct{}, error) {
	devices, err := s.wug.FetchDevices(ctx, 0)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(devices))
	for _, d := range devices {
		set[d.IPAddress] = struct{}{}
	}
	return set, nil
}
