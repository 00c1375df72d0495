package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/metrics"
	"server/internal/middleware"

	"github.com/rs/zerolog"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	SQL       infra.SQLExecutor
	Logger    zerolog.Logger
	JWTSecret string
	JWTTTL    time.Duration
	Metrics   *metrics.Broadcaster
	Geo       geoip.CountryResolver
}

func NewApp(sql infra.SQLExecutor, logger zerolog.Logger, jwtSecret string, jwtTTL time.Duration, broadcaster *metrics.Broadcaster, geo geoip.CountryResolver) *App {
	return &App{
		SQL:       sql,
		Logger:    logger,
		JWTSecret: jwtSecret,
		JWTTTL:    jwtTTL,
		Metrics:   broadcaster,
		Geo:       geo,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, map[string]any{"error": errCode, "message": msg})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
