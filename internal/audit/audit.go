// Package audit provides command execution logging to SQLite.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Entry represents a single audit log record.
type Entry struct {
	Timestamp time.Time
	GuildID   string
	ChannelID string
	UserID    string
	Command   string
	Args      string
	// Outcome is "ok", "denied" or a command error kind.
	Outcome  string
	Duration time.Duration
}

// Logger persists command execution records.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
	Close() error
}

// row is the table layout of an Entry.
type row struct {
	ID         int64  `db:"id"`
	TimeMs     int64  `db:"ts_ms"`
	GuildID    string `db:"guild_id"`
	ChannelID  string `db:"channel_id"`
	UserID     string `db:"user_id"`
	Command    string `db:"command"`
	Args       string `db:"args"`
	Outcome    string `db:"outcome"`
	DurationMs int64  `db:"duration_ms"`
}

func (r row) entry() Entry {
	return Entry{
		Timestamp: time.UnixMilli(r.TimeMs).UTC(),
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		UserID:    r.UserID,
		Command:   r.Command,
		Args:      r.Args,
		Outcome:   r.Outcome,
		Duration:  time.Duration(r.DurationMs) * time.Millisecond,
	}
}

// SQLiteLogger implements Logger using SQLite.
type SQLiteLogger struct {
	db *sqlx.DB
}

// NewSQLiteLogger creates a logger backed by SQLite.
func NewSQLiteLogger(dbPath string) (*SQLiteLogger, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteLogger{db: db}, nil
}

// createSchema creates the audit_log table if it doesn't exist.
func createSchema(db *sqlx.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts_ms INTEGER NOT NULL,
			guild_id TEXT NOT NULL DEFAULT '',
			channel_id TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT '',
			command TEXT NOT NULL,
			args TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_audit_ts ON audit_log(ts_ms);
		CREATE INDEX IF NOT EXISTS idx_audit_user ON audit_log(user_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Log records a command execution.
func (l *SQLiteLogger) Log(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO audit_log (ts_ms, guild_id, channel_id, user_id, command, args, outcome, duration_ms)
		VALUES (:ts_ms, :guild_id, :channel_id, :user_id, :command, :args, :outcome, :duration_ms)
	`

	_, err := l.db.NamedExecContext(ctx, query, row{
		TimeMs:     entry.Timestamp.UnixMilli(),
		GuildID:    entry.GuildID,
		ChannelID:  entry.ChannelID,
		UserID:     entry.UserID,
		Command:    entry.Command,
		Args:       entry.Args,
		Outcome:    entry.Outcome,
		DurationMs: entry.Duration.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (l *SQLiteLogger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var rows []row
	err := l.db.SelectContext(ctx, &rows,
		`SELECT * FROM audit_log ORDER BY ts_ms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.entry()
	}
	return entries, nil
}

// Close releases database resources.
func (l *SQLiteLogger) Close() error {
	return l.db.Close()
}

// NopLogger is a no-op logger for testing or when audit is disabled.
type NopLogger struct{}

// Log does nothing.
func (NopLogger) Log(ctx context.Context, entry Entry) error {
	return nil
}

// Close does nothing.
func (NopLogger) Close() error {
	return nil
}
