package mocks

import (
	"context"

	"inventory-sync/core/gateway/infoblox"
	"inventory-sync/core/models"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of infoblox.Client
type Client struct {
	mock.Mock
}

func (m *Client) UpsertHostRecord(ctx context.Context, record models.HostRecord, dryRun bool) (*infoblox.UpsertResult, error) {
	args := m.Called(ctx, record, dryRun)
	if result, ok := args.Get(0).(*infoblox.UpsertResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FetchAllHostRecords(ctx context.Context, limit int) ([]infoblox.HostEntry, error) {
	args := m.Called(ctx, limit)
	if entries, ok := args.Get(0).([]infoblox.HostEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) DeleteHostRecord(ctx context.Context, hostname string) (*infoblox.DeleteResult, error) {
	args := m.Called(ctx, hostname)
	if result, ok := args.Get(0).(*infoblox.DeleteResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FetchNetworkViews(ctx context.Context) ([]map[string]any, error) {
	return m.listCall(m.Called(ctx))
}

func (m *Client) FetchNetworks(ctx context.Context) ([]map[string]any, error) {
	return m.listCall(m.Called(ctx))
}

func (m *Client) FetchNetworkContainers(ctx context.Context) ([]map[string]any, error) {
	return m.listCall(m.Called(ctx))
}

func (m *Client) FetchFixedAddresses(ctx context.Context) ([]map[string]any, error) {
	return m.listCall(m.Called(ctx))
}

func (m *Client) FetchRanges(ctx context.Context) ([]map[string]any, error) {
	return m.listCall(m.Called(ctx))
}

func (m *Client) FetchAliasRecords(ctx context.Context) ([]map[string]any, error) {
	return m.listCall(m.Called(ctx))
}

func (m *Client) FetchSharedNetworks(ctx context.Context) ([]map[string]any, error) {
	return m.listCall(m.Called(ctx))
}

func (m *Client) listCall(args mock.Arguments) ([]map[string]any, error) {
	if list, ok := args.Get(0).([]map[string]any); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
