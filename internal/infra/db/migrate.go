package db

import (
	"context"
	"io/fs"
	"log/slog"
	"sort"

	"room-slot-service/internal/pkg/errs"
	"room-slot-service/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies every embedded schema file in name order. The files are
// idempotent, so running it on each start is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return MigrateFS(ctx, pool, migrations.FS)
}

func MigrateFS(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) error {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return errs.Wrap(err, "list migrations")
	}
	sort.Strings(files)

	for _, file := range files {
		sqlContent, err := fs.ReadFile(fsys, file)
		if err != nil {
			return errs.Wrapf(err, "read migration %s", file)
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return errs.Wrapf(err, "apply migration %s", file)
		}
		slog.Debug("migration applied", "file", file)
	}
	return nil
}
