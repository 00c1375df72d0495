package infra

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const markedQuery = `--sql 11111111-2222-3333-4444-555555555555
select count(*) from users;
`

type stubRow struct{}

func (stubRow) Scan(dest ...any) error { return nil }

type fakePool struct {
	lastQuery string
	calls     int
}

func (p *fakePool) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	p.lastQuery = query
	p.calls++
	return pgconn.NewCommandTag("OK 1"), nil
}

func (p *fakePool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	p.lastQuery = query
	p.calls++
	return stubRow{}
}

func (p *fakePool) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	p.lastQuery = query
	p.calls++
	return nil, nil
}

func TestExtractMarker(t *testing.T) {
	marker, trimmed, err := extractMarker(markedQuery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marker != "11111111-2222-3333-4444-555555555555" {
		t.Fatalf("unexpected marker %q", marker)
	}
	if strings.Contains(trimmed, "--sql") {
		t.Fatalf("marker line should be stripped, got %q", trimmed)
	}
}

func TestExtractMarkerRejectsUnmarkedQuery(t *testing.T) {
	for _, q := range []string{"", "select 1;", "-- plain comment\nselect 1;"} {
		if _, _, err := extractMarker(q); err == nil {
			t.Fatalf("expected error for query %q", q)
		}
	}
}

func TestSQLRunnerStripsMarkerBeforeExecuting(t *testing.T) {
	pool := &fakePool{}
	runner := NewSQLRunner(pool, zerolog.Nop())

	if _, err := runner.Exec(context.Background(), markedQuery); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(pool.lastQuery, "--sql") {
		t.Fatalf("pool received marker line: %q", pool.lastQuery)
	}
}

func TestSQLRunnerRefusesUnmarkedQueries(t *testing.T) {
	pool := &fakePool{}
	runner := NewSQLRunner(pool, zerolog.Nop())

	if _, err := runner.Exec(context.Background(), "select 1;"); err == nil {
		t.Fatal("expected error from Exec")
	}
	if err := runner.QueryRow(context.Background(), "select 1;").Scan(new(int)); err == nil {
		t.Fatal("expected error from QueryRow scan")
	}
	if _, err := runner.Query(context.Background(), "select 1;"); err == nil {
		t.Fatal("expected error from Query")
	}
	if pool.calls != 0 {
		t.Fatalf("unmarked queries must not reach the pool, got %d calls", pool.calls)
	}
}
