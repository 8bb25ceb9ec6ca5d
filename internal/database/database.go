package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"net/url"

	"archery-results/internal/config"
	"archery-results/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Per-connection settings for the cache file. The cache is rebuildable from
// upstream, so durability is traded for write speed, and freed pages are
// reclaimed incrementally as expired rows are purged.
var cacheParams = url.Values{
	"_journal_mode": {"WAL"},
	"_synchronous":  {"NORMAL"},
	"_busy_timeout": {"5000"},
	"_auto_vacuum":  {"incremental"},
}

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	return Open(cfg.DBPath, logger)
}

// Open connects to the cache database at path and brings its schema up to
// date.
func Open(path string, logger zerolog.Logger) (*sql.DB, error) {
	log := logger.With().Str("component", "cache_db").Str("path", path).Logger()

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		log.Error().Err(err).Msg("cache database unreachable")
		return nil, fmt.Errorf("failed to reach cache database: %w", err)
	}

	applied, err := migrate(ctx, db)
	if err != nil {
		db.Close()
		log.Error().Err(err).Msg("cache schema migration failed")
		return nil, err
	}

	log.Info().Int("migrations_applied", applied).Msg("cache database ready")
	return db, nil
}

func dsn(path string) string {
	return "file:" + path + "?" + cacheParams.Encode()
}

// migrate applies pending embedded migrations and reports how many ran.
func migrate(ctx context.Context, db *sql.DB) (int, error) {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to run migrations: %w", err)
	}
	return len(results), nil
}
