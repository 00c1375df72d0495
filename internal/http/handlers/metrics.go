package handlers

import (
	"net/http"
	"time"

	"server/internal/metrics"
)

// MetricsStream serves the live-metrics event stream. The client receives a
// named "snapshot" event on connect, then an unnamed data event after every
// write that may have changed an aggregate.
func (a *App) MetricsStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// The server-wide write timeout would sever this long-lived connection.
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	obs := metrics.NewStreamObserver(w, flusher.Flush)

	snap, err := a.Metrics.Snapshot(r.Context())
	if err != nil {
		// The handshake snapshot is best effort; the stream still opens and
		// the client catches up on the next broadcast.
		a.Logger.Warn().Err(err).Msg("initial metrics snapshot failed")
	} else if err := obs.SendEvent("snapshot", snap); err != nil {
		return
	}

	registry := a.Metrics.Registry()
	registry.Register(obs)
	defer func() {
		registry.Unregister(obs)
		obs.Close()
	}()

	<-r.Context().Done()
}
