package metrics

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestSendEventWritesNamedFrame(t *testing.T) {
	var buf bytes.Buffer
	flushed := 0
	obs := NewStreamObserver(&buf, func() { flushed++ })

	if err := obs.SendEvent("snapshot", Snapshot{Users: 3, TotalDonations: 150}); err != nil {
		t.Fatalf("SendEvent() error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "event: snapshot\n") {
		t.Fatalf("missing event name line: %q", out)
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Fatalf("frame not terminated by blank line: %q", out)
	}
	if flushed != 1 {
		t.Fatalf("flushed %d times, want 1", flushed)
	}

	payload := strings.TrimSuffix(strings.TrimPrefix(out, "event: snapshot\ndata: "), "\n\n")
	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		t.Fatalf("frame payload not JSON: %v", err)
	}
	if snap.Users != 3 || snap.TotalDonations != 150 {
		t.Fatalf("decoded snapshot = %+v", snap)
	}
}

func TestSendWritesUnnamedFrame(t *testing.T) {
	var buf bytes.Buffer
	obs := NewStreamObserver(&buf, nil)

	if err := obs.Send(Snapshot{}); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if strings.Contains(buf.String(), "event:") {
		t.Fatalf("plain message frame carries an event name: %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "data: ") {
		t.Fatalf("frame = %q", buf.String())
	}
}

func TestSnapshotJSONFieldNames(t *testing.T) {
	payload, err := json.Marshal(Snapshot{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{
		"timestamp", "users", "events", "upcomingEvents",
		"totalDonations", "monthlyDonations", "messagesSent", "newMessages",
	} {
		if !strings.Contains(string(payload), `"`+field+`"`) {
			t.Fatalf("field %q missing from payload %s", field, payload)
		}
	}
}

func TestSendAfterCloseFails(t *testing.T) {
	obs := NewStreamObserver(&bytes.Buffer{}, nil)
	obs.Close()
	obs.Close() // idempotent

	if err := obs.Send(Snapshot{}); !errors.Is(err, ErrObserverClosed) {
		t.Fatalf("Send() after close = %v, want ErrObserverClosed", err)
	}
}

func TestFailedWriteClosesStream(t *testing.T) {
	obs := NewStreamObserver(failingWriter{}, nil)

	if err := obs.Send(Snapshot{}); err == nil {
		t.Fatalf("Send() on broken writer succeeded")
	}
	if err := obs.Send(Snapshot{}); !errors.Is(err, ErrObserverClosed) {
		t.Fatalf("second Send() = %v, want ErrObserverClosed", err)
	}
}
