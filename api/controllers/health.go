package controllers

import (
	"net/http"

	"github.com/simplishare/simplishare-server/api/responses"
	"github.com/simplishare/simplishare-server/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SimpliShare-Env", cfg.App.Env)
		responses.WriteSuccess(r.Context(), w, "ok", map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SimpliShare-Env", cfg.App.Env)
		responses.WriteSuccess(r.Context(), w, "ok", map[string]string{"status": "ready"})
	}
}
