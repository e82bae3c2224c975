package wug

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
	"sync"
	"time"

	"inventory-sync/core/gateway/transport"
	"inventory-sync/core/models"
	"inventory-sync/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AuthError indicates the WUG token endpoint rejected the credentials or
// returned an unusable response. It is systemic: callers abort the whole
// run instead of treating it as a per-item failure.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "wug authentication failed: " + e.Message
}

// CreateDeviceParams describes a device to register in WUG.
type CreateDeviceParams struct {
	DisplayName         string
	IPAddress           string
	Hostname            string
	DeviceType          string
	PrimaryRole         string
	PollIntervalSeconds int
	EnableMonitoring    bool
}

// CreateResult is the gateway-level outcome of a device creation.
// Success=false with a Message is a reported failure, distinct from a
// transport error.
type CreateResult struct {
	Success  bool     `json:"success"`
	DeviceID string   `json:"device_id,omitempty"`
	Message  string   `json:"message,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Client defines the interface for WhatsUp Gold operations.
type Client interface {
	// Authenticate obtains (or refreshes) an API token.
	Authenticate(ctx context.Context) (string, error)
	// FetchDevices lists devices across all device groups, deduplicated by
	// device ID. Items missing an ID or IP address are silently excluded.
	// A positive limit stops the walk early.
	FetchDevices(ctx context.Context, limit int) ([]models.Device, error)
	// DeviceExistsByAddress reports whether any device carries the address.
	DeviceExistsByAddress(ctx context.Context, ip string) (bool, error)
	// CreateDevice registers a new device.
	CreateDevice(ctx context.Context, params CreateDeviceParams) (*CreateResult, error)
}

type client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	sf          singleflight.Group
}

// NewClient creates a WUG client over the shared retrying transport.
func NewClient(cfg Config, tcfg transport.Config, log *zap.Logger) Client {
	return &client{
		cfg:  cfg,
		http: transport.NewClient(tcfg, log),
		log:  log.Named("wug"),
	}
}

func (c *client) baseURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/")
}

// Authenticate performs the OAuth password grant against the token
// endpoint and caches the result until shortly before expiry.
func (c *client) Authenticate(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.cfg.Username},
		"password":   {c.cfg.Password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL()+c.cfg.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("wug: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("wug: token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &AuthError{Message: fmt.Sprintf("token endpoint returned %s", resp.Status)}
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &AuthError{Message: "token response is not valid JSON"}
	}
	if body.AccessToken == "" {
		return "", &AuthError{Message: "authentication succeeded but no access_token returned"}
	}

	expiry := time.Now().Add(time.Hour)
	if body.ExpiresIn > 0 {
		expiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	}

	c.mu.Lock()
	c.token = body.AccessToken
	c.tokenExpiry = expiry
	c.mu.Unlock()

	return body.AccessToken, nil
}

// bearerToken returns a cached token, refreshing it when missing or
// within 30 seconds of expiry. Concurrent refreshes are deduplicated.
func (c *client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Until(c.tokenExpiry) > 30*time.Second {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	token, err, _ := c.sf.Do("token", func() (any, error) {
		return c.Authenticate(ctx)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// invalidateToken drops the cached token so the next call re-authenticates.
func (c *client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// doJSON issues an authenticated request and decodes the JSON response.
// A 401 triggers one re-authentication and retry before giving up.
func (c *client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.bearerToken(ctx)
		if err != nil {
			return err
		}

		var body io.Reader
		if payload != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("wug: encode request: %w", err)
			}
			body = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, body)
		if err != nil {
			return fmt.Errorf("wug: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("wug: %s %s: %w", method, path, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			resp.Body.Close()
			c.invalidateToken()
			continue
		}

		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("wug: %s %s returned %s", method, path, resp.Status)
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("wug: decode %s response: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("wug: %s %s: unauthorized after token refresh", method, path)
}

// FetchDevices walks every device group and collects its devices.
// Group-level failures are logged and skipped so one broken group does
// not hide the rest of the inventory.
func (c *client) FetchDevices(ctx context.Context, limit int) ([]models.Device, error) {
	var groupsBody struct {
		Data struct {
			Groups []map[string]any `json:"groups"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/device-groups/-", nil, &groupsBody); err != nil {
		return nil, err
	}

	devices := []models.Device{}
	seen := make(map[string]struct{})

	for _, group := range groupsBody.Data.Groups {
		groupID := utils.FirstString(group, "id")
		groupName := utils.FirstString(group, "name")
		if groupID == "" {
			continue
		}

		path := "/api/v1/device-groups/" + url.PathEscape(groupID) + "/devices"
		if c.cfg.PageSize > 0 {
			path += "?pageSize=" + strconv.Itoa(c.cfg.PageSize)
		}

		var devicesBody struct {
			Data struct {
				Devices []map[string]any `json:"devices"`
			} `json:"data"`
		}
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &devicesBody); err != nil {
			if _, systemic := err.(*AuthError); systemic {
				return nil, err
			}
			c.log.Warn("Failed to fetch devices from group, skipping",
				zap.String("group", groupName), zap.Error(err))
			continue
		}

		for _, item := range devicesBody.Data.Devices {
			deviceID := utils.FirstString(item, "id", "deviceId")
			if deviceID == "" {
				continue
			}
			if _, dup := seen[deviceID]; dup {
				continue
			}

			ip := utils.FirstString(item, "networkAddress", "ipAddress", "primaryAddress")
			if ip == "" {
				continue
			}

			hostname := utils.FirstString(item, "displayName", "hostName", "name")
			if hostname == "" {
				hostname = "wug-" + deviceID
			}

			status := utils.FirstString(item, "bestState", "state", "status")
			if status == "" {
				status = "unknown"
			}

			item["group_id"] = groupID
			item["group_name"] = groupName

			devices = append(devices, models.Device{
				SourceID:  deviceID,
				Hostname:  hostname,
				IPAddress: ip,
				Status:    status,
				Raw:       item,
			})
			seen[deviceID] = struct{}{}

			if limit > 0 && len(devices) >= limit {
				return devices, nil
			}
		}
	}

	return devices, nil
}

// DeviceExistsByAddress scans the device inventory for the address.
func (c *client) DeviceExistsByAddress(ctx context.Context, ip string) (bool, error) {
	devices, err := c.FetchDevices(ctx, 0)
	if err != nil {
		return false, err
	}
	for _, d := range devices {
		if d.IPAddress == ip {
			return true, nil
		}
	}
	return false, nil
}

// CreateDevice registers a device via the new-device endpoint.
// A response carrying success=false is returned to the caller as a
// reported failure, not an error.
func (c *client) CreateDevice(ctx context.Context, params CreateDeviceParams) (*CreateResult, error) {
	payload := map[string]any{
		"displayName":    params.DisplayName,
		"networkAddress": params.IPAddress,
	}
	if params.Hostname != "" {
		payload["hostName"] = params.Hostname
	}
	if params.DeviceType != "" {
		payload["deviceType"] = params.DeviceType
	}
	if params.PrimaryRole != "" {
		payload["primaryRole"] = params.PrimaryRole
	}
	if params.PollIntervalSeconds > 0 {
		payload["pollIntervalSeconds"] = params.PollIntervalSeconds
	}
	payload["enableMonitoring"] = params.EnableMonitoring

	var body struct {
		Data   map[string]any `json:"data"`
		Errors []any          `json:"errors"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/devices/new-device", payload, &body); err != nil {
		return nil, err
	}

	result := &CreateResult{}
	for _, e := range body.Errors {
		result.Errors = append(result.Errors, utils.ToString(e))
	}

	if body.Data != nil {
		result.Success = utils.ToBool(body.Data["success"])
		result.DeviceID = utils.FirstString(body.Data, "deviceId", "id")
		result.Message = utils.FirstString(body.Data, "message")
	}
	if !result.Success && result.Message == "" {
		if len(result.Errors) > 0 {
			result.Message = result.Errors[0]
		} else {
			result.Message = "WUG did not confirm device creation"
		}
	}

	return result, nil
}
