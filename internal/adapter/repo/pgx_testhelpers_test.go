package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"donation-api/internal/sqlinline"
)

type testRowsBase struct{}

func (testRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (testRowsBase) Conn() *pgx.Conn { return nil }

func (testRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (testRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (testRowsBase) RawValues() [][]byte { return nil }

// sliceRows replays rows of column values into Scan destinations.
type sliceRows struct {
	testRowsBase
	rows [][]any
	idx  int
	err  error
}

func (s *sliceRows) Next() bool {
	if s.idx >= len(s.rows) {
		return false
	}
	s.idx++
	return true
}

func (s *sliceRows) Scan(dest ...any) error {
	row := s.rows[s.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = row[i].(string)
		case **string:
			// nil models SQL NULL
			if row[i] == nil {
				*v = nil
			} else {
				s := row[i].(string)
				*v = &s
			}
		case *time.Time:
			*v = row[i].(time.Time)
		default:
			return fmt.Errorf("unsupported scan target %T", d)
		}
	}
	return nil
}

func (s *sliceRows) Err() error { return s.err }

func (s *sliceRows) Close() {}

type execCall struct {
	query string
	args  []any
}

// fakeSQL records statements and serves canned rows for list queries.
type fakeSQL struct {
	mu       sync.Mutex
	execs    []execCall
	rows     map[string][][]any
	execErr  error
	queryErr error
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs = append(f.execs, execCall{query: query, args: args})
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	switch query {
	case sqlinline.QListDonations, sqlinline.QListContacts:
		return &sliceRows{rows: f.rows[query]}, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

func (f *fakeSQL) Ping(context.Context) error { return nil }

func (f *fakeSQL) execsMatching(prefix string) []execCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []execCall
	for _, c := range f.execs {
		if strings.HasPrefix(c.query, prefix) {
			out = append(out, c)
		}
	}
	return out
}
