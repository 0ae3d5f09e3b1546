package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
)

// HealthCheckHandler reports OK when the database answers a ping.
func HealthCheckHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				log.Error("Health check failed", "error", err)
				http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}
