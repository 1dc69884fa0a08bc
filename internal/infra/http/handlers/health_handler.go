package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

type HealthHandler struct {
	DB          *sql.DB
	MailerState string
	StartTime   time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler reports db reachability plus the mailer activation
// state. The mailer string is fixed at startup, matching the notifier's
// no-reconfiguration lifecycle.
func NewHealthHandler(db *sql.DB, mailerState string) *HealthHandler {
	return &HealthHandler{
		DB:          db,
		MailerState: mailerState,
		StartTime:   time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	// Disabled/misconfigured mailers are an accepted degraded mode of the
	// notification path, never an unhealthy service.
	deps["mailer"] = h.MailerState

	status := "healthy"
	if v := deps["database"]; v != "healthy" && v != "not configured" {
		status = "degraded"
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	if status == "degraded" {
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
