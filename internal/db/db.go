package db

import (
	"context"
	"database/sql"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

// MustOpen opens the database/sql handle used by the cart repository.
func MustOpen(dsn string) *sql.DB {
	if dsn == "" {
		log.Fatal("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	return db
}

// MustOpenPool opens the pgx pool used by the catalog repository.
func MustOpenPool(ctx context.Context, dsn string) *pgxpool.Pool {
	if dsn == "" {
		log.Fatal("database DSN not set")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("open pgx pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping pgx pool: %v", err)
	}

	return pool
}
