package controllers

import (
	"net/http"
	"strconv"

	"alarmbot/internal/models"
	"alarmbot/internal/providers"
)

type ApiController struct {
	logger providers.Logger
	store  *models.AlarmStore
}

func NewApiController(logger providers.Logger, store *models.AlarmStore) *ApiController {
	return &ApiController{
		logger: logger,
		store:  store,
	}
}

type statsResponse struct {
	Owners   int            `json:"owners"`
	Alarms   int            `json:"alarms"`
	PerOwner map[string]int `json:"per_owner"`
	Symbols  map[string]int `json:"symbols"`
}

// GetStats reports alarm counts per owner and per symbol.
func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	snapshot := ac.store.Snapshot()

	resp := statsResponse{
		Owners:   len(snapshot),
		PerOwner: make(map[string]int, len(snapshot)),
		Symbols:  make(map[string]int),
	}
	for owner, alarms := range snapshot {
		resp.PerOwner[strconv.FormatInt(owner, 10)] = len(alarms)
		resp.Alarms += len(alarms)
		for _, a := range alarms {
			resp.Symbols[a.Symbol]++
		}
	}
	writeJSON(w, resp)
}

// GetAlarms lists the alarms of the owner given by the "owner" query parameter.
func (ac *ApiController) GetAlarms(w http.ResponseWriter, r *http.Request) {
	owner, err := strconv.ParseInt(r.URL.Query().Get("owner"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, ac.store.List(owner))
}
