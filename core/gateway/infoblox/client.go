package infoblox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"inventory-sync/core/gateway/transport"
	"inventory-sync/core/models"
	"inventory-sync/core/utils"

	"go.uber.org/zap"
)

// Upsert action labels. The dry-run label is part of the service's
// observable API, so it is a constant rather than an implementation
// detail.
const (
	ActionCreated      = "created"
	ActionUpdated      = "updated"
	ActionDryRunUpsert = "dry-run-upsert"
)

// UpsertResult describes what an upsert did (or would do, for dry runs).
type UpsertResult struct {
	Action    string `json:"action"`
	FQDN      string `json:"fqdn"`
	IPAddress string `json:"ip_address"`
	Ref       string `json:"ref,omitempty"`
}

// HostEntry is a flattened host record as returned by FetchAllHostRecords:
// the record name plus its first IPv4 address.
type HostEntry struct {
	Hostname  string         `json:"hostname"`
	IPAddress string         `json:"ip_address"`
	ExtAttrs  map[string]any `json:"extattrs,omitempty"`
	Comment   string         `json:"comment,omitempty"`
}

// DeleteResult reports the outcome of a host record deletion.
// A missing record is a reported failure, not an error.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client defines the interface for Infoblox WAPI operations.
type Client interface {
	// UpsertHostRecord creates or replaces the host record keyed by its
	// FQDN. With dryRun set it returns a synthetic acknowledgement and
	// performs no network I/O at all.
	UpsertHostRecord(ctx context.Context, record models.HostRecord, dryRun bool) (*UpsertResult, error)
	// FetchAllHostRecords lists host records, flattened to their first
	// IPv4 address. Entries missing a hostname or address are dropped.
	FetchAllHostRecords(ctx context.Context, limit int) ([]HostEntry, error)
	// DeleteHostRecord removes the host record with the given name.
	DeleteHostRecord(ctx context.Context, hostname string) (*DeleteResult, error)

	// Read-only IPAM fetchers, plain list passthroughs of the WAPI JSON.
	FetchNetworkViews(ctx context.Context) ([]map[string]any, error)
	FetchNetworks(ctx context.Context) ([]map[string]any, error)
	FetchNetworkContainers(ctx context.Context) ([]map[string]any, error)
	FetchFixedAddresses(ctx context.Context) ([]map[string]any, error)
	FetchRanges(ctx context.Context) ([]map[string]any, error)
	FetchAliasRecords(ctx context.Context) ([]map[string]any, error)
	FetchSharedNetworks(ctx context.Context) ([]map[string]any, error)
}

type client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// NewClient creates an Infoblox client over the shared retrying transport.
func NewClient(cfg Config, tcfg transport.Config, log *zap.Logger) Client {
	return &client{
		cfg:  cfg,
		http: transport.NewClient(tcfg, log),
		log:  log.Named("infoblox"),
	}
}

// wapiBase returns the versioned WAPI root, e.g. ".../wapi/v2.12.3".
func (c *client) wapiBase() string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/wapi/" + c.cfg.WAPIVersion
}

// do issues a basic-auth WAPI request and decodes the JSON response into
// out. Non-2xx statuses (after the transport's retries) are errors.
func (c *client) do(ctx context.Context, method, rawURL string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("infoblox: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("infoblox: build request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("infoblox: %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("infoblox: %s %s returned %s: %s",
			method, req.URL.Path, resp.Status, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("infoblox: decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// fetchObjects lists WAPI objects of the given type.
func (c *client) fetchObjects(ctx context.Context, objectType string, params url.Values) ([]map[string]any, error) {
	u := c.wapiBase() + "/" + objectType
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// findHostRecord looks a host record up by name, returning nil when it
// does not exist.
func (c *client) findHostRecord(ctx context.Context, fqdn string) (map[string]any, error) {
	params := url.Values{
		"name":           {fqdn},
		"_return_fields": {"name,ipv4addrs,extattrs"},
	}
	existing, err := c.fetchObjects(ctx, "record:host", params)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, nil
	}
	return existing[0], nil
}

func (c *client) UpsertHostRecord(ctx context.Context, record models.HostRecord, dryRun bool) (*UpsertResult, error) {
	if dryRun {
		return &UpsertResult{
			Action:    ActionDryRunUpsert,
			FQDN:      record.FQDN,
			IPAddress: record.IPAddress,
		}, nil
	}

	existing, err := c.findHostRecord(ctx, record.FQDN)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"name":      record.FQDN,
		"ipv4addrs": []map[string]string{{"ipv4addr": record.IPAddress}},
		"extattrs":  record.ExtAttrs,
		"view":      record.NetworkView,
	}

	if existing != nil {
		ref := utils.ToString(existing["_ref"])
		if ref == "" {
			return nil, fmt.Errorf("infoblox: existing record without _ref for %s", record.FQDN)
		}
		// Full replacement, not a merge: the record is rewritten from the
		// mapped source device.
		if err := c.do(ctx, http.MethodPut, c.wapiBase()+"/"+ref, payload, nil); err != nil {
			return nil, err
		}
		return &UpsertResult{
			Action:    ActionUpdated,
			FQDN:      record.FQDN,
			IPAddress: record.IPAddress,
			Ref:       ref,
		}, nil
	}

	var ref string
	if err := c.do(ctx, http.MethodPost, c.wapiBase()+"/record:host", payload, &ref); err != nil {
		return nil, err
	}
	return &UpsertResult{
		Action:    ActionCreated,
		FQDN:      record.FQDN,
		IPAddress: record.IPAddress,
		Ref:       ref,
	}, nil
}

func (c *client) FetchAllHostRecords(ctx context.Context, limit int) ([]HostEntry, error) {
	params := url.Values{
		"_return_fields": {"name,ipv4addrs,extattrs,comment"},
	}
	if limit > 0 {
		params.Set("_max_results", strconv.Itoa(limit))
	}

	raw, err := c.fetchObjects(ctx, "record:host", params)
	if err != nil {
		return nil, err
	}

	entries := []HostEntry{}
	for _, item := range raw {
		hostname := utils.ToString(item["name"])

		// Flatten to the first IPv4 address on the record.
		var ip string
		if addrs, ok := item["ipv4addrs"].([]any); ok && len(addrs) > 0 {
			if first, ok := addrs[0].(map[string]any); ok {
				ip = utils.ToString(first["ipv4addr"])
			}
		}

		if hostname == "" || ip == "" {
			continue
		}

		var extattrs map[string]any
		if ea, ok := item["extattrs"].(map[string]any); ok {
			extattrs = ea
		}

		entries = append(entries, HostEntry{
			Hostname:  hostname,
			IPAddress: ip,
			ExtAttrs:  extattrs,
			Comment:   utils.ToString(item["comment"]),
		})

		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

func (c *client) DeleteHostRecord(ctx context.Context, hostname string) (*DeleteResult, error) {
	existing, err := c.findHostRecord(ctx, hostname)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &DeleteResult{Success: false, Message: "host record not found: " + hostname}, nil
	}

	ref := utils.ToString(existing["_ref"])
	if ref == "" {
		return nil, fmt.Errorf("infoblox: existing record without _ref for %s", hostname)
	}
	if err := c.do(ctx, http.MethodDelete, c.wapiBase()+"/"+ref, nil, nil); err != nil {
		return nil, err
	}
	return &DeleteResult{Success: true, Message: "deleted " + hostname}, nil
}

func (c *client) FetchNetworkViews(ctx context.Context) ([]map[string]any, error) {
	return c.fetchObjects(ctx, "networkview", nil)
}

func (c *client) FetchNetworks(ctx context.Context) ([]map[string]any, error) {
	return c.fetchObjects(ctx, "network", url.Values{
		"_return_fields": {"network,network_view,comment,extattrs"},
	})
}

func (c *client) FetchNetworkContainers(ctx context.Context) ([]map[string]any, error) {
	return c.fetchObjects(ctx, "networkcontainer", nil)
}

func (c *client) FetchFixedAddresses(ctx context.Context) ([]map[string]any, error) {
	return c.fetchObjects(ctx, "fixedaddress", url.Values{
		"_return_fields": {"ipv4addr,mac,network_view,comment"},
	})
}

func (c *client) FetchRanges(ctx context.Context) ([]map[string]any, error) {
	return c.fetchObjects(ctx, "range", nil)
}

func (c *client) FetchAliasRecords(ctx context.Context) ([]map[string]any, error) {
	return c.fetchObjects(ctx, "record:alias", nil)
}

func (c *client) FetchSharedNetworks(ctx context.Context) ([]map[string]any, error) {
	return c.fetchObjects(ctx, "sharednetwork", nil)
}
