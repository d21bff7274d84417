package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go-matching-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate executes every *.sql file of migrations in lexical order. Each
// file must be idempotent (IF NOT EXISTS) since no version table is kept.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS) error {
	names, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if strings.TrimSpace(string(body)) == "" {
			continue
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		logger.Log.Infow("Migration applied", "file", name)
	}
	return nil
}
