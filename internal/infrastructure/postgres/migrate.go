package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/schema.sql
var schemaSQL string

// Migrate aplica el esquema. Todas las sentencias son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
