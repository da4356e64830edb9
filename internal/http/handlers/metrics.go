package handlers

import "net/http"

// MetricsExport serves the Prometheus registry.
func (a *App) MetricsExport(w http.ResponseWriter, r *http.Request) {
	a.Metrics.Handler().ServeHTTP(w, r)
}
