package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"career-compass/internal/config"
)

// NewPool arma el pool con los limites de conexion del config.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	if poolCfg.MinConns > poolCfg.MaxConns {
		poolCfg.MinConns = poolCfg.MaxConns
	}
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// PendingMigrations devuelve los .sql de dir, en orden, que no figuran en applied.
func PendingMigrations(dir string, applied map[string]struct{}) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	pending := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := applied[filepath.Base(p)]; ok {
			continue
		}
		pending = append(pending, p)
	}
	return pending, nil
}

// Migrate aplica cada archivo pendiente en su propia transaccion y lo registra en schema_migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string) ([]string, error) {
	const createTable = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := pool.Exec(ctx, createTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan applied migrations: %w", err)
	}
	applied := make(map[string]struct{}, len(names))
	for _, n := range names {
		applied[n] = struct{}{}
	}

	pending, err := PendingMigrations(dir, applied)
	if err != nil {
		return nil, err
	}
	done := make([]string, 0, len(pending))
	for _, path := range pending {
		sql, err := os.ReadFile(path)
		if err != nil {
			return done, fmt.Errorf("read migration %s: %w", path, err)
		}
		name := filepath.Base(path)
		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if strings.TrimSpace(string(sql)) != "" {
				if _, err := tx.Exec(ctx, string(sql)); err != nil {
					return err
				}
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name)
			return err
		})
		if err != nil {
			return done, fmt.Errorf("apply migration %s: %w", name, err)
		}
		done = append(done, name)
	}
	return done, nil
}
