package database

import (
	"database/sql"
	"fmt"

	"vocabpool/internal/config"
	"vocabpool/internal/logging"

	_ "github.com/lib/pq"
)

var log = logging.Named("database")

// Connect establishes a connection to the PostgreSQL database
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("connected to postgres")
	return db, nil
}

// Close closes the database connection
func Close(db *sql.DB) {
	if db != nil {
		db.Close()
		log.Info().Msg("database connection closed")
	}
}
