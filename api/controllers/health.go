package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/victorrosario/videocatalog-backend/api/responses"
	"github.com/victorrosario/videocatalog-backend/pkg/config"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
	"github.com/victorrosario/videocatalog-backend/pkg/logger"
)

const envHeader = "X-Catalog-Env"

// Pinger is the health-check surface shared by the backing stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired dependency. Nil pingers are reported as
// skipped so a partially wired deployment still has a truthful probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP, storageP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		failed := false
		for name, pinger := range map[string]Pinger{
			"database": dbP,
			"redis":    redisP,
			"storage":  storageP,
		} {
			if pinger == nil {
				checks[name] = "skipped"
				continue
			}
			if err := pinger.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = true
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "health.check_failed", err)
				}
				continue
			}
			checks[name] = "up"
		}

		if failed {
			responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").
				WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
