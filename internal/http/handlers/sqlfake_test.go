package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeSQL is an in-memory SQLExecutor. Row answers are queued per query
// constant so a handler that runs the same statement repeatedly gets one
// answer per call.
type fakeSQL struct {
	mu       sync.Mutex
	rowQueue map[string][][]any
	rowErr   map[string]error
	rows     map[string][][]any
	queryErr map[string]error
	execErr  map[string]error
	execs    []string
	queries  []string
}

func newFakeSQL() *fakeSQL {
	return &fakeSQL{
		rowQueue: map[string][][]any{},
		rowErr:   map[string]error{},
		rows:     map[string][][]any{},
		queryErr: map[string]error{},
		execErr:  map[string]error{},
	}
}

func (f *fakeSQL) queueRow(query string, values ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rowQueue[query] = append(f.rowQueue[query], values)
}

func (f *fakeSQL) setRows(query string, rows ...[]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[query] = rows
}

func (f *fakeSQL) execCount(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, q := range f.execs {
		if q == query {
			n++
		}
	}
	return n
}

func (f *fakeSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs = append(f.execs, query)
	if err := f.execErr[query]; err != nil {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("OK 1"), nil
}

func (f *fakeSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if err := f.rowErr[query]; err != nil {
		return fakeRow{err: err}
	}
	queue := f.rowQueue[query]
	if len(queue) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	values := queue[0]
	f.rowQueue[query] = queue[1:]
	return fakeRow{values: values}
}

func (f *fakeSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if err := f.queryErr[query]; err != nil {
		return nil, err
	}
	return &fakeRows{rows: f.rows[query], idx: -1}, nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan expects %d destinations, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		if err := assignValue(d, r.values[i]); err != nil {
			return err
		}
	}
	return nil
}

// fakeRows walks a fixed slice of rows and satisfies pgx.Rows.
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Values() ([]any, error) {
	if r.idx < 0 || r.idx >= len(r.rows) {
		return nil, fmt.Errorf("no current row")
	}
	return r.rows[r.idx], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	values, err := r.Values()
	if err != nil {
		return err
	}
	if len(dest) != len(values) {
		return fmt.Errorf("scan expects %d destinations, got %d", len(values), len(dest))
	}
	for i, d := range dest {
		if err := assignValue(d, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dest, val any) error {
	switch d := dest.(type) {
	case *string:
		v, ok := val.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into *string", val)
		}
		*d = v
	case *int:
		switch v := val.(type) {
		case int:
			*d = v
		case int64:
			*d = int(v)
		default:
			return fmt.Errorf("cannot scan %T into *int", val)
		}
	case *int64:
		switch v := val.(type) {
		case int:
			*d = int64(v)
		case int64:
			*d = v
		default:
			return fmt.Errorf("cannot scan %T into *int64", val)
		}
	case *float64:
		switch v := val.(type) {
		case int:
			*d = float64(v)
		case float64:
			*d = v
		default:
			return fmt.Errorf("cannot scan %T into *float64", val)
		}
	case *bool:
		v, ok := val.(bool)
		if !ok {
			return fmt.Errorf("cannot scan %T into *bool", val)
		}
		*d = v
	case *time.Time:
		v, ok := val.(time.Time)
		if !ok {
			return fmt.Errorf("cannot scan %T into *time.Time", val)
		}
		*d = v
	default:
		return fmt.Errorf("unsupported scan destination %T", dest)
	}
	return nil
}
