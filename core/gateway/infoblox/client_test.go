package infoblox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-sync/core/gateway/transport"
	"inventory-sync/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const wapiPrefix = "/wapi/v2.12.3"

// wapiServer fakes the Infoblox WAPI and counts every request it sees.
type wapiServer struct {
	*httptest.Server
	mux      *http.ServeMux
	requests int
}

func newWapiServer(t *testing.T) *wapiServer {
	t.Helper()
	s := &wapiServer{mux: http.NewServeMux()}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests++
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "infoblox" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		s.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestClient(baseURL string) Client {
	return NewClient(
		Config{BaseURL: baseURL, WAPIVersion: "v2.12.3", Username: "admin", Password: "infoblox", NetworkView: "default"},
		transport.Config{TimeoutSeconds: 5, RetryMax: 0},
		zap.NewNop(),
	)
}

func testRecord() models.HostRecord {
	return models.HostRecord{
		FQDN:        "switch-1.local",
		IPAddress:   "10.0.0.1",
		NetworkView: "default",
		ExtAttrs: map[string]models.ExtAttrValue{
			"Source": {Value: "WhatsUpGold"},
		},
	}
}

func TestUpsertHostRecord_DryRunDoesNoIO(t *testing.T) {
	server := newWapiServer(t)

	client := newTestClient(server.URL)
	result, err := client.UpsertHostRecord(context.Background(), testRecord(), true)

	require.NoError(t, err)
	assert.Equal(t, ActionDryRunUpsert, result.Action)
	assert.Equal(t, "switch-1.local", result.FQDN)
	assert.Equal(t, 0, server.requests, "dry run must not touch the WAPI")
}

func TestUpsertHostRecord_CreatesWhenMissing(t *testing.T) {
	server := newWapiServer(t)
	server.mux.HandleFunc(wapiPrefix+"/record:host", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "switch-1.local", r.URL.Query().Get("name"))
			json.NewEncoder(w).Encode([]map[string]any{})
		case http.MethodPost:
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "switch-1.local", payload["name"])
			assert.Equal(t, "default", payload["view"])
			json.NewEncoder(w).Encode("record:host/ZG5zLmhvc3Q:switch-1.local/default")
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	client := newTestClient(server.URL)
	result, err := client.UpsertHostRecord(context.Background(), testRecord(), false)

	require.NoError(t, err)
	assert.Equal(t, ActionCreated, result.Action)
	assert.Equal(t, "record:host/ZG5zLmhvc3Q:switch-1.local/default", result.Ref)
}

func TestUpsertHostRecord_ReplacesWhenPresent(t *testing.T) {
	server := newWapiServer(t)
	ref := "record:host/ZG5zLmhvc3Q:switch-1.local/default"

	server.mux.HandleFunc(wapiPrefix+"/record:host", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode([]map[string]any{
			{"_ref": ref, "name": "switch-1.local"},
		})
	})

	var replaced map[string]any
	server.mux.HandleFunc(wapiPrefix+"/"+ref, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&replaced))
		json.NewEncoder(w).Encode(ref)
	})

	client := newTestClient(server.URL)
	result, err := client.UpsertHostRecord(context.Background(), testRecord(), false)

	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, result.Action)
	assert.Equal(t, ref, result.Ref)
	assert.Equal(t, "switch-1.local", replaced["name"])
}

func TestUpsertHostRecord_MissingRefIsError(t *testing.T) {
	server := newWapiServer(t)
	server.mux.HandleFunc(wapiPrefix+"/record:host", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"name": "switch-1.local"},
		})
	})

	client := newTestClient(server.URL)
	_, err := client.UpsertHostRecord(context.Background(), testRecord(), false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "without _ref")
}

func TestFetchAllHostRecords_FlattensAndFilters(t *testing.T) {
	server := newWapiServer(t)
	server.mux.HandleFunc(wapiPrefix+"/record:host", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"name": "a.example.com",
				"ipv4addrs": []map[string]any{
					{"ipv4addr": "10.0.0.1"},
					{"ipv4addr": "10.0.0.2"},
				},
				"comment": "primary",
			},
			// No addresses: dropped.
			{"name": "b.example.com", "ipv4addrs": []map[string]any{}},
			// No name: dropped.
			{"ipv4addrs": []map[string]any{{"ipv4addr": "10.0.0.3"}}},
		})
	})

	client := newTestClient(server.URL)
	entries, err := client.FetchAllHostRecords(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.example.com", entries[0].Hostname)
	assert.Equal(t, "10.0.0.1", entries[0].IPAddress, "only the first address is kept")
	assert.Equal(t, "primary", entries[0].Comment)
}

func TestFetchAllHostRecords_LimitPassedThrough(t *testing.T) {
	server := newWapiServer(t)
	server.mux.HandleFunc(wapiPrefix+"/record:host", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("_max_results"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"name": "a.example.com", "ipv4addrs": []map[string]any{{"ipv4addr": "10.0.0.1"}}},
			{"name": "b.example.com", "ipv4addrs": []map[string]any{{"ipv4addr": "10.0.0.2"}}},
			{"name": "c.example.com", "ipv4addrs": []map[string]any{{"ipv4addr": "10.0.0.3"}}},
		})
	})

	client := newTestClient(server.URL)
	entries, err := client.FetchAllHostRecords(context.Background(), 2)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDeleteHostRecord(t *testing.T) {
	server := newWapiServer(t)
	ref := "record:host/ZG5zLmhvc3Q:gone.local/default"

	server.mux.HandleFunc(wapiPrefix+"/record:host", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "gone.local" {
			json.NewEncoder(w).Encode([]map[string]any{{"_ref": ref, "name": "gone.local"}})
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	server.mux.HandleFunc(wapiPrefix+"/"+ref, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(ref)
	})

	client := newTestClient(server.URL)

	deleted, err := client.DeleteHostRecord(context.Background(), "gone.local")
	require.NoError(t, err)
	assert.True(t, deleted.Success)

	missing, err := client.DeleteHostRecord(context.Background(), "never-existed.local")
	require.NoError(t, err)
	assert.False(t, missing.Success)
	assert.Contains(t, missing.Message, "not found")
}

func TestFetchNetworks_Passthrough(t *testing.T) {
	server := newWapiServer(t)
	server.mux.HandleFunc(wapiPrefix+"/network", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"network": "10.0.0.0/24", "network_view": "default"},
		})
	})

	client := newTestClient(server.URL)
	networks, err := client.FetchNetworks(context.Background())

	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Equal(t, "10.0.0.0/24", networks[0]["network"])
}

func TestDo_SurfacesWAPIErrorBody(t *testing.T) {
	server := newWapiServer(t)
	server.mux.HandleFunc(wapiPrefix+"/record:host", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{ "Error": "AdmConProtoError: Unknown argument/field: 'bogus'" }`))
	})

	client := newTestClient(server.URL)
	_, err := client.FetchAllHostRecords(context.Background(), 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "AdmConProtoError")
}
