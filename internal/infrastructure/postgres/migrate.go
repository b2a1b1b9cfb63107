package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func migrationsFS() (fs.FS, error) {
	return fs.Sub(migrationFiles, "migrations")
}

// Migrate aplica las migraciones pendientes. goose guarda las versiones aplicadas en goose_db_version,
// así que cada script corre una sola vez. Devuelve los archivos aplicados en esta llamada.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	fsys, err := migrationsFS()
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	// el *sql.DB comparte las conexiones del pool; no se cierra aquí para no cerrar el pool
	db := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("preparar migraciones: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, dbErr("migración", err)
	}
	applied := make([]string, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Path)
	}
	return applied, nil
}
