package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"local-ads/internal/config/configs"
)

// Open opens the embedded SQLite database described by cfg and verifies it
// with a short ping. SQLite allows a single writer, so the pool is capped
// at one connection; the store serializes transactions through it. The
// caller must close the returned handle.
func Open(ctx context.Context, cfg configs.SQLite) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctxPing); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
