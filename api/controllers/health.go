package controllers

import (
	"net/http"

	"github.com/saboresapp/sabores-backend/api/responses"
	"github.com/saboresapp/sabores-backend/pkg/config"
	"github.com/saboresapp/sabores-backend/pkg/db"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
	"github.com/saboresapp/sabores-backend/pkg/logger"
	"github.com/saboresapp/sabores-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Sabores-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the dependencies a quote actually needs. The redis
// client is optional; when absent it is reported as skipped, not failed.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Sabores-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["db"] = "down"
				healthy = false
			} else {
				checks["db"] = "ok"
			}
		} else {
			checks["db"] = "skipped"
		}

		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		} else {
			checks["redis"] = "skipped"
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
