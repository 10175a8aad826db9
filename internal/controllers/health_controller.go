package controllers

import (
	"fmt"
	"net/http"
	"time"

	"alarmbot/internal/models"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	store     *models.AlarmStore
	sessions  *models.SessionStore
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Owners        int     `json:"owners"`
	Alarms        int     `json:"alarms"`
	Sessions      int     `json:"sessions"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Owners:        len(hc.store.Owners()),
		Alarms:        hc.store.Len(),
		Sessions:      hc.sessions.Len(),
	}
	writeJSON(w, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func writeJSON(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func NewHealthController(store *models.AlarmStore, sessions *models.SessionStore) *HealthController {
	return &HealthController{
		store:     store,
		sessions:  sessions,
		startTime: time.Now(),
	}
}
