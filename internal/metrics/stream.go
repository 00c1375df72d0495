package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrObserverClosed is returned by Send once the stream has been closed.
// Broadcasting to a closed observer counts as a failed send, so the registry
// drops it on the next broadcast.
var ErrObserverClosed = errors.New("metrics observer closed")

// StreamObserver writes snapshots as server-sent events onto one long-lived
// HTTP response. The mutex serializes frames from concurrent broadcasts.
type StreamObserver struct {
	mu     sync.Mutex
	w      io.Writer
	flush  func()
	closed bool
}

// NewStreamObserver wraps a response writer. flush is called after every
// frame so events reach the client immediately; it may be nil in tests.
func NewStreamObserver(w io.Writer, flush func()) *StreamObserver {
	return &StreamObserver{w: w, flush: flush}
}

// SendEvent writes one frame. A non-empty event name produces a named event;
// the dashboard listens for the named `snapshot` handshake and for plain
// message events afterwards.
func (o *StreamObserver) SendEvent(event string, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return ErrObserverClosed
	}
	if event != "" {
		if _, err := fmt.Fprintf(o.w, "event: %s\n", event); err != nil {
			o.closed = true
			return err
		}
	}
	if _, err := fmt.Fprintf(o.w, "data: %s\n\n", payload); err != nil {
		o.closed = true
		return err
	}
	if o.flush != nil {
		o.flush()
	}
	return nil
}

// Send implements Observer with an unnamed message event.
func (o *StreamObserver) Send(snap Snapshot) error {
	return o.SendEvent("", snap)
}

// Close marks the stream terminal. Further sends fail with ErrObserverClosed.
// Safe to call multiple times.
func (o *StreamObserver) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
}
