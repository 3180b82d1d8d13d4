package controllers

import (
	"net/http"

	"github.com/keepstockhq/keepstock-backend/api/responses"
	"github.com/keepstockhq/keepstock-backend/pkg/config"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}
