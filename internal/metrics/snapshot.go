package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"server/internal/infra"
	"server/internal/sqlinline"
)

// ErrStoreUnavailable marks a failed aggregate pass. Callers skip the current
// broadcast or handshake and wait for the next trigger; there is no retry loop.
var ErrStoreUnavailable = errors.New("metrics store unavailable")

// Snapshot is one immutable set of dashboard aggregates. Field names on the
// wire match what the dashboard consumes.
type Snapshot struct {
	Timestamp        int64   `json:"timestamp"`
	Users            int64   `json:"users"`
	Events           int64   `json:"events"`
	UpcomingEvents   int64   `json:"upcomingEvents"`
	TotalDonations   float64 `json:"totalDonations"`
	MonthlyDonations float64 `json:"monthlyDonations"`
	MessagesSent     int64   `json:"messagesSent"`
	NewMessages      int64   `json:"newMessages"`
}

// Collector assembles a Snapshot from a fixed set of independent aggregate
// queries. Each aggregate is a single read; no transaction spans them, so
// fields may reflect slightly different instants under concurrent writes.
// That skew is an accepted property of the dashboard, not a bug to fix here.
type Collector struct {
	sql infra.SQLExecutor
	now func() time.Time
}

func NewCollector(sql infra.SQLExecutor) *Collector {
	return &Collector{sql: sql, now: time.Now}
}

// Collect runs the aggregate pass and returns a fully populated Snapshot.
// Every counter defaults to zero when the underlying table is empty.
func (c *Collector) Collect(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Timestamp: c.now().UnixMilli()}

	aggregates := []struct {
		query string
		dest  any
	}{
		{sqlinline.QMetricsUserCount, &snap.Users},
		{sqlinline.QMetricsEventCount, &snap.Events},
		{sqlinline.QMetricsUpcomingEventCount, &snap.UpcomingEvents},
		{sqlinline.QMetricsTotalDonations, &snap.TotalDonations},
		{sqlinline.QMetricsMonthlyDonations, &snap.MonthlyDonations},
		{sqlinline.QMetricsMessageCount, &snap.MessagesSent},
		{sqlinline.QMetricsUnreadInboundCount, &snap.NewMessages},
	}
	for _, agg := range aggregates {
		if err := c.sql.QueryRow(ctx, agg.query).Scan(agg.dest); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return snap, nil
}
