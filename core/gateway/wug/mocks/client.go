package mocks

import (
	"context"

	"inventory-sync/core/gateway/wug"
	"inventory-sync/core/models"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of wug.Client
type Client struct {
	mock.Mock
}

func (m *Client) Authenticate(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Client) FetchDevices(ctx context.Context, limit int) ([]models.Device, error) {
	args := m.Called(ctx, limit)
	if devices, ok := args.Get(0).([]models.Device); ok {
		return devices, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) DeviceExistsByAddress(ctx context.Context, ip string) (bool, error) {
	args := m.Called(ctx, ip)
	return args.Bool(0), args.Error(1)
}

func (m *Client) CreateDevice(ctx context.Context, params wug.CreateDeviceParams) (*wug.CreateResult, error) {
	args := m.Called(ctx, params)
	if result, ok := args.Get(0).(*wug.CreateResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}
