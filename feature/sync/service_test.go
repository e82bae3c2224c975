package sync

import (
	"context"
	"errors"
	"testing"

	"inventory-sync/core/gateway/infoblox"
	infobloxmocks "inventory-sync/core/gateway/infoblox/mocks"
	"inventory-sync/core/gateway/wug"
	wugmocks "inventory-sync/core/gateway/wug/mocks"
	"inventory-sync/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (*Service, *wugmocks.Client, *infobloxmocks.Client) {
	wugClient := new(wugmocks.Client)
	infobloxClient := new(infobloxmocks.Client)
	svc := NewService(wugClient, infobloxClient, "default", zap.NewNop())
	return svc, wugClient, infobloxClient
}

func testDevices(n int) []models.Device {
	devices := make([]models.Device, 0, n)
	for i := 0; i < n; i++ {
		devices = append(devices, models.Device{
			SourceID:  string(rune('a' + i)),
			Hostname:  "host-" + string(rune('a'+i)),
			IPAddress: "10.0.0." + string(rune('1'+i)),
			Status:    "Up",
		})
	}
	return devices
}

func TestRunSync_HappyPath(t *testing.T) {
	svc, wugClient, infobloxClient := newTestService()

	devices := testDevices(3)
	wugClient.On("FetchDevices", mock.Anything, 0).Return(devices, nil)
	infobloxClient.On("UpsertHostRecord", mock.Anything, mock.Anything, false).
		Return(&infoblox.UpsertResult{Action: infoblox.ActionCreated}, nil)

	result, err := svc.RunSync(context.Background(), false, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Discovered)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 3, result.CreatedOrUpdated)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, 0, result.Skipped)
	assert.False(t, result.DryRun)
	require.Len(t, result.Details, 3)
	for i, detail := range result.Details {
		assert.Equal(t, devices[i].SourceID, detail.DeviceID)
		assert.NotNil(t, detail.Result)
		assert.Empty(t, detail.Error)
	}
}

func TestRunSync_FailureIsolation(t *testing.T) {
	svc, wugClient, infobloxClient := newTestService()

	devices := testDevices(3)
	wugClient.On("FetchDevices", mock.Anything, 0).Return(devices, nil)

	// Middle item fails, neighbors must still be processed.
	middle := DeviceToHostRecord(devices[1], "default")
	infobloxClient.On("UpsertHostRecord", mock.Anything, middle, false).
		Return(nil, errors.New("infoblox: POST /record:host returned 400 Bad Request"))
	infobloxClient.On("UpsertHostRecord", mock.Anything, mock.Anything, false).
		Return(&infoblox.UpsertResult{Action: infoblox.ActionUpdated}, nil)

	result, err := svc.RunSync(context.Background(), false, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.CreatedOrUpdated)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.Details, 3)

	// Details stay in fetch order with the failure recorded in place.
	assert.Empty(t, result.Details[0].Error)
	assert.Contains(t, result.Details[1].Error, "400 Bad Request")
	assert.Empty(t, result.Details[2].Error)
}

func TestRunSync_DryRunPassesThroughToGateway(t *testing.T) {
	svc, wugClient, infobloxClient := newTestService()

	wugClient.On("FetchDevices", mock.Anything, 5).Return(testDevices(1), nil)
	infobloxClient.On("UpsertHostRecord", mock.Anything, mock.Anything, true).
		Return(&infoblox.UpsertResult{Action: infoblox.ActionDryRunUpsert}, nil)

	result, err := svc.RunSync(context.Background(), true, 5)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.CreatedOrUpdated)
	infobloxClient.AssertCalled(t, "UpsertHostRecord", mock.Anything, mock.Anything, true)
}

func TestRunSync_FetchFailureIsSystemic(t *testing.T) {
	svc, wugClient, _ := newTestService()

	wugClient.On("FetchDevices", mock.Anything, 0).
		Return(nil, &wug.AuthError{Message: "token endpoint returned 401 Unauthorized"})

	_, err := svc.RunSync(context.Background(), false, 0)
	require.Error(t, err)

	var authErr *wug.AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestRunSync_Idempotent(t *testing.T) {
	svc, wugClient, infobloxClient := newTestService()

	devices := testDevices(2)
	wugClient.On("FetchDevices", mock.Anything, 0).Return(devices, nil)

	// In-memory target: the first run creates each record, the second
	// resolves to an update carrying an identical record.
	stored := map[string]models.HostRecord{}
	record := func(args mock.Arguments) models.HostRecord {
		return args.Get(1).(models.HostRecord)
	}
	for _, device := range devices {
		mapped := DeviceToHostRecord(device, "default")
		infobloxClient.On("UpsertHostRecord", mock.Anything, mapped, false).
			Run(func(args mock.Arguments) { stored[record(args).FQDN] = record(args) }).
			Return(&infoblox.UpsertResult{Action: infoblox.ActionCreated, FQDN: mapped.FQDN}, nil).Once()
		infobloxClient.On("UpsertHostRecord", mock.Anything, mapped, false).
			Run(func(args mock.Arguments) { stored[record(args).FQDN] = record(args) }).
			Return(&infoblox.UpsertResult{Action: infoblox.ActionUpdated, FQDN: mapped.FQDN}, nil).Once()
	}

	first, err := svc.RunSync(context.Background(), false, 0)
	require.NoError(t, err)
	afterFirst := map[string]models.HostRecord{}
	for k, v := range stored {
		afterFirst[k] = v
	}

	second, err := svc.RunSync(context.Background(), false, 0)
	require.NoError(t, err)

	assert.Equal(t, first.Processed, second.Processed)
	assert.Equal(t, afterFirst, stored, "second run must not change the target records")
	for _, detail := range second.Details {
		upsert := detail.Result.(*infoblox.UpsertResult)
		assert.Equal(t, infoblox.ActionUpdated, upsert.Action)
	}
}

func TestRunReverseSync_SkipsAndCreates(t *testing.T) {
	svc, wugClient, infobloxClient := newTestService()

	records := []infoblox.HostEntry{
		{Hostname: "known.example.com", IPAddress: "10.0.0.1"},
		{Hostname: "", IPAddress: "10.0.0.9"},
		{Hostname: "new.example.com", IPAddress: "10.0.0.2"},
	}
	infobloxClient.On("FetchAllHostRecords", mock.Anything, 0).Return(records, nil)
	wugClient.On("FetchDevices", mock.Anything, 0).Return([]models.Device{
		{SourceID: "1", Hostname: "known", IPAddress: "10.0.0.1", Status: "Up"},
	}, nil)
	wugClient.On("CreateDevice", mock.Anything, mock.Anything).
		Return(&wug.CreateResult{Success: true, DeviceID: "99"}, nil)

	result, err := svc.RunReverseSync(context.Background(), false, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Discovered)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 1, result.CreatedOrUpdated)
	assert.Equal(t, 0, result.Errors)
	require.Len(t, result.Details, 3)

	assert.Equal(t, "Device already exists", result.Details[0].Skipped)
	assert.Equal(t, "Missing hostname or IP address", result.Details[1].Skipped)
	assert.Equal(t, "99", result.Details[2].DeviceID)

	// The inventory is fetched once per run, not per record.
	wugClient.AssertNumberOfCalls(t, "FetchDevices", 1)
}

func TestRunReverseSync_DryRunCreatesNothing(t *testing.T) {
	svc, wugClient, infobloxClient := newTestService()

	infobloxClient.On("FetchAllHostRecords", mock.Anything, 0).Return([]infoblox.HostEntry{
		{Hostname: "new.example.com", IPAddress: "10.0.0.2"},
	}, nil)
	wugClient.On("FetchDevices", mock.Anything, 0).Return([]models.Device{}, nil)

	result, err := svc.RunReverseSync(context.Background(), true, 0)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.CreatedOrUpdated)
	require.Len(t, result.Details, 1)

	payload := result.Details[0].Result.(map[string]any)
	assert.Equal(t, "dry-run-create", payload["action"])

	wugClient.AssertNotCalled(t, "CreateDevice", mock.Anything, mock.Anything)
}

func TestRunReverseSync_ReportedFailureCountsAsError(t *testing.T) {
	svc, wugClient, infobloxClient := newTestService()

	infobloxClient.On("FetchAllHostRecords", mock.Anything, 0).Return([]infoblox.HostEntry{
		{Hostname: "rejected.example.com", IPAddress: "10.0.0.3"},
		{Hostname: "broken.example.com", IPAddress: "10.0.0.4"},
	}, nil)
	wugClient.On("FetchDevices", mock.Anything, 0).Return([]models.Device{}, nil)

	// First create is rejected by WUG, second fails at the transport.
	wugClient.On("CreateDevice", mock.Anything, mock.MatchedBy(func(p wug.CreateDeviceParams) bool {
		return p.IPAddress == "10.0.0.3"
	})).Return(&wug.CreateResult{Success: false, Message: "duplicate display name"}, nil)
	wugClient.On("CreateDevice", mock.Anything, mock.MatchedBy(func(p wug.CreateDeviceParams) bool {
		return p.IPAddress == "10.0.0.4"
	})).Return(nil, errors.New("wug: POST /api/v1/devices/new-device returned 500 Internal Server Error"))

	result, err := svc.RunReverseSync(context.Background(), false, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Errors)
	assert.Equal(t, 0, result.CreatedOrUpdated)
	assert.Equal(t, "duplicate display name", result.Details[0].Error)
	assert.Contains(t, result.Details[1].Error, "500")
}

func TestRunReverseSync_AuthFailureAbortsRun(t *testing.T) {
	svc, wugClient, infobloxClient := newTestService()

	infobloxClient.On("FetchAllHostRecords", mock.Anything, 0).Return([]infoblox.HostEntry{
		{Hostname: "a.example.com", IPAddress: "10.0.0.1"},
	}, nil)
	wugClient.On("FetchDevices", mock.Anything, 0).
		Return(nil, &wug.AuthError{Message: "credentials rejected"})

	_, err := svc.RunReverseSync(context.Background(), false, 0)
	require.Error(t, err)

	var authErr *wug.AuthError
	assert.True(t, errors.As(err, &authErr))
}
