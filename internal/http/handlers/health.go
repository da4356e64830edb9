package handlers

import (
	"context"
	"net/http"
	"time"
)

const (
	rootMessage       = "API is running"
	healthPingTimeout = 2 * time.Second
)

// Root answers without touching the store, so it stays green during outages.
func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rootMessage))
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Error  string `json:"error,omitempty"`
}

// Health pings the record store.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if a.Store == nil {
		a.json(w, http.StatusOK, healthResponse{Status: "ok", Store: "unknown"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := a.Store.Ping(ctx); err != nil {
		a.json(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Store: "down", Error: err.Error()})
		return
	}
	a.json(w, http.StatusOK, healthResponse{Status: "ok", Store: "up"})
}
