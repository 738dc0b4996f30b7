package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Alias1177/FundFlow/internal/model"
)

// DB stores per-chat watchlist preferences. Analysis results themselves are
// never persisted.
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters.
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// WatchEntry is one symbol a chat is watching.
type WatchEntry struct {
	ChatID    int64
	Symbol    string
	Interval  model.Interval
	CreatedAt time.Time
}

// New creates a new database connection and ensures the schema exists.
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := createTables(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS watchlist (
			chat_id BIGINT NOT NULL,
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (chat_id, symbol)
		)
	`)
	return err
}

// AddWatch adds or updates a watched symbol for a chat.
func (db *DB) AddWatch(chatID int64, symbol string, interval model.Interval) error {
	_, err := db.Exec(`
		INSERT INTO watchlist (chat_id, symbol, interval, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id, symbol)
		DO UPDATE SET interval = EXCLUDED.interval
	`, chatID, symbol, string(interval), time.Now())
	return err
}

// RemoveWatch deletes a watched symbol for a chat.
func (db *DB) RemoveWatch(chatID int64, symbol string) error {
	_, err := db.Exec(`
		DELETE FROM watchlist WHERE chat_id = $1 AND symbol = $2
	`, chatID, symbol)
	return err
}

// ListWatches returns the symbols a chat is watching, oldest first.
func (db *DB) ListWatches(chatID int64) ([]WatchEntry, error) {
	rows, err := db.Query(`
		SELECT chat_id, symbol, interval, created_at
		FROM watchlist
		WHERE chat_id = $1
		ORDER BY created_at
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []WatchEntry
	for rows.Next() {
		var e WatchEntry
		var interval string
		if err := rows.Scan(&e.ChatID, &e.Symbol, &interval, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Interval = model.Interval(interval)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
