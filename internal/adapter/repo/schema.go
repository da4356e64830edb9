package repo

import (
	"context"
	"fmt"
	"sync"

	"donation-api/internal/infra"
)

// schemaGuard runs a bootstrap statement once it first succeeds. A database
// that was down at startup gets its tables on the first request after it
// comes back.
type schemaGuard struct {
	mu   sync.Mutex
	done bool
	sql  infra.SQLExecutor
	stmt string
}

func newSchemaGuard(sql infra.SQLExecutor, stmt string) *schemaGuard {
	return &schemaGuard{sql: sql, stmt: stmt}
}

func (g *schemaGuard) ensure(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done {
		return nil
	}
	if _, err := g.sql.Exec(ctx, g.stmt); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	g.done = true
	return nil
}
