package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"server/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func newTestApp(t *testing.T, sql *fakeSQL) *App {
	t.Helper()
	logger := zerolog.Nop()
	broadcaster := metrics.NewBroadcaster(metrics.NewRegistry(), metrics.NewCollector(sql), logger)
	return NewApp(sql, logger, "test-secret", time.Hour, broadcaster, nil)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
