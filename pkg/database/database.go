package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskboard/configs"

	_ "github.com/lib/pq"
)

func DSN(cfg configs.Config, dbName string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, dbName, cfg.DBSSLMode)
}

// ConnectDB opens the shared connection pool and checks it is reachable.
func ConnectDB(ctx context.Context, cfg configs.Config) (*sql.DB, error) {
	return Open(ctx, DSN(cfg, cfg.DBName), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
}

func Open(ctx context.Context, dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
