package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-compass/internal/config"
	"career-compass/internal/content"
	"career-compass/internal/db"
	"career-compass/internal/repository"
)

func withPool(ctx context.Context, cfg *config.Config, fn func(context.Context, *pgxpool.Pool) error) error {
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db pool: %w", err)
	}
	defer pool.Close()
	if err := db.Ping(ctx, pool); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	return fn(ctx, pool)
}

func migrate(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	applied, err := db.Migrate(ctx, pool, dir)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, name := range applied {
		fmt.Printf("applied migration %s\n", name)
	}
	if len(applied) == 0 {
		fmt.Println("schema up to date")
	}
	return nil
}

func loadCatalog(ctx context.Context, pool *pgxpool.Pool, store *content.Store) error {
	careerRepo := repository.NewPgCareerRepository(pool)
	now := time.Now().UTC()
	careers := store.Careers()
	for _, career := range careers {
		career.UpdatedAt = now
		if err := careerRepo.Upsert(ctx, career); err != nil {
			return fmt.Errorf("upsert career %s: %w", career.ID, err)
		}
	}
	version, err := careerRepo.CatalogVersion(ctx)
	if err != nil {
		return fmt.Errorf("catalog version: %w", err)
	}
	fmt.Printf("seeded %d careers, %d quizzes validated, catalog version %s\n", len(careers), len(store.Quizzes()), version)
	return nil
}

// printJoined lista cada error de un errors.Join en su propia linea.
func printJoined(err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			printJoined(e)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "  - %v\n", err)
}
