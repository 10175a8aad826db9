package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alarmbot/internal/models"
	"alarmbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *models.AlarmStore {
	store := models.NewAlarmStore(10, nil)
	_, err := store.Add(1, "BTCUSDT", 100, models.DirectionUp)
	require.NoError(t, err)
	_, err = store.Add(1, "ETHUSDT", 200, models.DirectionDown)
	require.NoError(t, err)
	_, err = store.Add(-42, "BTCUSDT", 300, models.DirectionUp)
	require.NoError(t, err)
	return store
}

func TestHealth_ReturnsOK(t *testing.T) {
	sessions := models.NewSessionStore(0)
	sessions.Begin(5, "ETHUSDT", 3000, true)
	hc := NewHealthController(seededStore(t), sessions)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, float64(2), resp["owners"])
	assert.Equal(t, float64(3), resp["alarms"])
	assert.Equal(t, float64(1), resp["sessions"])
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0h0m0s"},
		{90 * time.Second, "0h1m30s"},
		{26*time.Hour + 5*time.Minute + 7*time.Second, "26h5m7s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}

func TestGetStats(t *testing.T) {
	ac := NewApiController(&testutil.MockLogger{}, seededStore(t))

	rr := httptest.NewRecorder()
	ac.GetStats(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Owners   int            `json:"owners"`
		Alarms   int            `json:"alarms"`
		PerOwner map[string]int `json:"per_owner"`
		Symbols  map[string]int `json:"symbols"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Owners)
	assert.Equal(t, 3, resp.Alarms)
	assert.Equal(t, map[string]int{"1": 2, "-42": 1}, resp.PerOwner)
	assert.Equal(t, map[string]int{"BTCUSDT": 2, "ETHUSDT": 1}, resp.Symbols)
}

func TestGetStats_Empty(t *testing.T) {
	ac := NewApiController(&testutil.MockLogger{}, models.NewAlarmStore(10, nil))

	rr := httptest.NewRecorder()
	ac.GetStats(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.JSONEq(t, `{"owners":0,"alarms":0,"per_owner":{},"symbols":{}}`, rr.Body.String())
}

func TestGetAlarms(t *testing.T) {
	ac := NewApiController(&testutil.MockLogger{}, seededStore(t))

	rr := httptest.NewRecorder()
	ac.GetAlarms(rr, httptest.NewRequest(http.MethodGet, "/alarms?owner=1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"symbol":"BTCUSDT","target":100,"direction":"up"},{"symbol":"ETHUSDT","target":200,"direction":"down"}]`, rr.Body.String())

	rr = httptest.NewRecorder()
	ac.GetAlarms(rr, httptest.NewRequest(http.MethodGet, "/alarms?owner=7", nil))
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = httptest.NewRecorder()
	ac.GetAlarms(rr, httptest.NewRequest(http.MethodGet, "/alarms?owner=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
