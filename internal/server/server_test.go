// server_test.go
//
// A drone model catalog data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of dronedb.
// dronedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// dronedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with dronedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/events"
	"github.com/localnerve/dronedb/internal/handlers"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/server"
	"github.com/localnerve/dronedb/internal/services"
	"github.com/localnerve/dronedb/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app       *fiber.App
	store     services.DroneStore
	published *events.MemoryPublisher
	base      string
}

func setupApp(t *testing.T, base string) *testApp {
	t.Helper()

	store, err := services.NewBadgerStore(services.InMemory, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	published := &events.MemoryPublisher{}
	cfg := &config.Config{
		AppEnv:      "test",
		APIBasePath: base,
		CORSOrigins: "*",
		DBType:      "badger",
		DBDatabase:  services.InMemory,
	}

	app := server.New(server.Options{
		Config: cfg,
		Store:  store,
		Events: published,
		Log:    logging.Discard(),
	})
	return &testApp{app: app, store: store, published: published, base: base}
}

// do sends a request and decodes the JSON envelope
func (ta *testApp) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, ta.base+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func validDrone() map[string]interface{} {
	return map[string]interface{}{
		"name":            "DJI Mini 3",
		"category":        "quadcopter",
		"manufacturer":    "DJI",
		"maxSpeed":        57,
		"maxRange":        5000,
		"weight":          249,
		"dimensions":      map[string]interface{}{"length": 20, "width": 20, "height": 8},
		"payloadCapacity": 200,
		"batteryCapacity": 2250,
		"firmwareVersion": "1.0.5",
	}
}

func (ta *testApp) create(t *testing.T, overrides map[string]interface{}) map[string]interface{} {
	t.Helper()

	body := validDrone()
	for k, v := range overrides {
		body[k] = v
	}
	status, out := ta.do(t, http.MethodPost, "/drones", body)
	require.Equal(t, http.StatusCreated, status, "%v", out)
	// keep creation times distinct so newest-first order is deterministic
	time.Sleep(2 * time.Millisecond)
	return out["data"].(map[string]interface{})
}

func TestCreateDrone(t *testing.T) {
	ta := setupApp(t, "/api")

	status, out := ta.do(t, http.MethodPost, "/drones", validDrone())
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, handlers.MessageCreated, out["message"])

	data := out["data"].(map[string]interface{})
	_, err := uuid.Parse(data["id"].(string))
	assert.NoError(t, err)
	assert.Equal(t, "DJI Mini 3", data["name"])
	assert.Equal(t, true, data["enabled"])
	assert.Equal(t, []interface{}{}, data["features"])
	assert.NotEmpty(t, data["createdAt"])
	assert.Equal(t, data["createdAt"], data["updatedAt"])

	published := ta.published.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.DroneCreated, published[0].Type)
}

func TestCreateDroneValidation(t *testing.T) {
	ta := setupApp(t, "")

	status, out := ta.do(t, http.MethodPost, "/drones", map[string]interface{}{"name": "Test"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, handlers.MessageValidation, out["error"])
	assert.Len(t, out["details"], 8)

	status, out = ta.do(t, http.MethodPost, "/drones", `{"name": "broken"`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, handlers.MessageInvalidJSON, out["error"])

	status, _ = ta.do(t, http.MethodGet, "/drones", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, ta.published.Events(), "rejected writes publish nothing")
}

func TestListDrones(t *testing.T) {
	ta := setupApp(t, "/api")
	for i := 0; i < 12; i++ {
		ta.create(t, map[string]interface{}{"name": fmt.Sprintf("Drone %02d", i)})
	}
	ta.create(t, map[string]interface{}{"name": "Agras", "category": "octocopter", "enabled": false})

	status, out := ta.do(t, http.MethodGet, "/drones", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, out["data"], 10)
	assert.Equal(t, map[string]interface{}{
		"currentPage":  1.0,
		"totalPages":   2.0,
		"totalItems":   13.0,
		"itemsPerPage": 10.0,
	}, out["pagination"])
	first := out["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Agras", first["name"], "newest first")

	status, out = ta.do(t, http.MethodGet, "/drones?page=2&limit=5&category=quadcopter", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, out["data"], 5)
	pagination := out["pagination"].(map[string]interface{})
	assert.Equal(t, 12.0, pagination["totalItems"])
	assert.Equal(t, 3.0, pagination["totalPages"])

	_, out = ta.do(t, http.MethodGet, "/drones?enabled=false", nil)
	assert.Len(t, out["data"], 1)

	_, out = ta.do(t, http.MethodGet, "/drones?limit=0", nil)
	assert.Len(t, out["data"], 1)
	assert.Equal(t, 1.0, out["pagination"].(map[string]interface{})["itemsPerPage"])

	_, out = ta.do(t, http.MethodGet, "/drones?search=drone%2011", nil)
	assert.Len(t, out["data"], 1)

	_, out = ta.do(t, http.MethodGet, "/drones?category=hexacopter", nil)
	assert.Equal(t, []interface{}{}, out["data"])
	assert.Equal(t, 0.0, out["pagination"].(map[string]interface{})["totalPages"])

	for _, page := range []string{"3", "922337203685477582"} {
		status, out = ta.do(t, http.MethodGet, "/drones?limit=10&page="+page, nil)
		require.Equal(t, http.StatusOK, status, "page %s: %v", page, out)
		assert.Equal(t, []interface{}{}, out["data"], "page %s", page)
		pagination = out["pagination"].(map[string]interface{})
		assert.Equal(t, 13.0, pagination["totalItems"])
		assert.Equal(t, 2.0, pagination["totalPages"])
	}

	_, out = ta.do(t, http.MethodGet, "/drones?limit=5abc&page=2.9", nil)
	pagination = out["pagination"].(map[string]interface{})
	assert.Equal(t, 5.0, pagination["itemsPerPage"])
	assert.Equal(t, 2.0, pagination["currentPage"])
}

func TestGetDrone(t *testing.T) {
	ta := setupApp(t, "/api")
	created := ta.create(t, nil)

	status, out := ta.do(t, http.MethodGet, "/drones/"+created["id"].(string), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, out["data"])

	status, out = ta.do(t, http.MethodGet, "/drones/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, handlers.MessageNotFound, out["error"])

	status, out = ta.do(t, http.MethodGet, "/drones/invalid-id", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, handlers.MessageInvalidID, out["error"])
}

func TestUpdateDrone(t *testing.T) {
	ta := setupApp(t, "/api")
	created := ta.create(t, nil)
	id := created["id"].(string)

	status, out := ta.do(t, http.MethodPut, "/drones/"+id, map[string]interface{}{"maxSpeed": 80, "enabled": false})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, handlers.MessageUpdated, out["message"])
	data := out["data"].(map[string]interface{})
	assert.Equal(t, 80.0, data["maxSpeed"])
	assert.Equal(t, false, data["enabled"])
	assert.Equal(t, created["name"], data["name"])
	assert.Equal(t, created["createdAt"], data["createdAt"])

	published := ta.published.Events()
	require.Len(t, published, 2)
	assert.Equal(t, events.DroneUpdated, published[1].Type)
	update := published[1].Data.(handlers.DroneUpdate)
	assert.Equal(t, []string{"maxSpeed", "enabled"}, update.Fields)

	status, out = ta.do(t, http.MethodPut, "/drones/"+id, map[string]interface{}{"maxSpeed": 1000})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, handlers.MessageValidation, out["error"])

	status, out = ta.do(t, http.MethodPut, "/drones/"+id, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
	details := out["details"].([]interface{})
	require.Len(t, details, 1)
	assert.Equal(t, validation.NothingToUpdateMessage, details[0].(map[string]interface{})["message"])

	status, out = ta.do(t, http.MethodPut, "/drones/"+uuid.NewString(), map[string]interface{}{"weight": 300})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, handlers.MessageNotFound, out["error"])

	status, out = ta.do(t, http.MethodPut, "/drones/42", map[string]interface{}{"weight": 300})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, handlers.MessageInvalidID, out["error"])
}

func TestDeleteDrone(t *testing.T) {
	ta := setupApp(t, "/api")
	created := ta.create(t, nil)
	id := created["id"].(string)

	status, out := ta.do(t, http.MethodDelete, "/drones/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, handlers.MessageDeleted, out["message"])
	assert.Equal(t, id, out["data"].(map[string]interface{})["id"])

	status, _ = ta.do(t, http.MethodGet, "/drones/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ta.do(t, http.MethodDelete, "/drones/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ta.do(t, http.MethodDelete, "/drones/bad", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	published := ta.published.Events()
	require.Len(t, published, 2)
	assert.Equal(t, events.DroneDeleted, published[1].Type)
}

func TestStatsSummary(t *testing.T) {
	ta := setupApp(t, "/api")

	status, out := ta.do(t, http.MethodGet, "/drones/stats/summary", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, out["data"])

	ta.create(t, map[string]interface{}{"maxSpeed": 50})
	ta.create(t, map[string]interface{}{"maxSpeed": 70})
	ta.create(t, map[string]interface{}{"category": "fixed-wing"})

	_, out = ta.do(t, http.MethodGet, "/drones/stats/summary", nil)
	stats := out["data"].([]interface{})
	require.Len(t, stats, 2)
	top := stats[0].(map[string]interface{})
	assert.Equal(t, "quadcopter", top["category"])
	assert.Equal(t, 2.0, top["count"])
	assert.InDelta(t, 60.0, top["avgMaxSpeed"], 1e-9)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	ta := setupApp(t, "/api")
	ta.published.Err = errors.New("nats down")

	status, out := ta.do(t, http.MethodPost, "/drones", validDrone())
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, out["success"])
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	ta := setupApp(t, "/api")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, handlers.MessageRunning, out["message"])
	assert.NotEmpty(t, out["timestamp"])

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp, err = ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, out := ta.do(t, http.MethodGet, "/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, handlers.MessageRouteNotFound, out["error"])

	req = httptest.NewRequest(http.MethodPatch, "/api/drones", nil)
	resp, err = ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVersionHeader(t *testing.T) {
	ta := setupApp(t, "/api")

	req := httptest.NewRequest(http.MethodGet, "/api/drones", nil)
	req.Header.Set("X-Api-Version", "1.0")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.0.0", resp.Header.Get("X-Api-Version"))

	req = httptest.NewRequest(http.MethodGet, "/api/drones", nil)
	req.Header.Set("X-Api-Version", "2.0.0")
	resp, err = ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVersionHeaderOnUnknownRoute(t *testing.T) {
	// an empty base path puts every route under the API group
	ta := setupApp(t, "")

	for _, path := range []string{"/unknown", "/drones/x/y"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Api-Version", "2")
		resp, err := ta.app.Test(req, -1)
		require.NoError(t, err)

		var out map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, handlers.MessageRouteNotFound, out["error"], path)
	}

	req := httptest.NewRequest(http.MethodGet, "/drones", nil)
	req.Header.Set("X-Api-Version", "2")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
