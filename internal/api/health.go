package api

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

// HealthStatus reports service and database health.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

func HealthCheckHandler(db *sqlx.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := HealthStatus{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		httpStatus := http.StatusOK
		if db == nil || db.PingContext(r.Context()) != nil {
			status.Status = "degraded"
			status.Database = "unreachable"
			httpStatus = http.StatusServiceUnavailable
		}

		respondWithSuccess(w, httpStatus, &status)
	}
}
