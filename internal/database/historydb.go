package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mailscout/mailscout/internal/model"
)

// HistoryDB provides SQLite-based storage for extraction runs.
//
// Design decision: We use a single database file for all runs rather
// than one file per start URL. This keeps history queries across sites
// trivial and makes backup a single-file copy.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "mailscout.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses URI-style modifiers: mode=rw prevents
	// creating new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path to the SQLite database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs store one row per extraction attempt
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_url TEXT NOT NULL,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		duration_ms INTEGER DEFAULT 0,
		pages_fetched INTEGER DEFAULT 0,
		emails TEXT,
		locations TEXT,
		found INTEGER DEFAULT 0,
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_start_url ON runs(start_url);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	-- Findings store the per-location address groups of a run
	CREATE TABLE IF NOT EXISTS findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		emails TEXT NOT NULL,
		location TEXT NOT NULL,
		FOREIGN KEY(run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a completed run and its findings.
// It returns the database ID assigned to the run.
func (hdb *HistoryDB) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
	INSERT INTO runs (start_url, started_at, duration_ms, pages_fetched, emails, locations, found, error_message)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		run.StartURL,
		run.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		run.Duration.Milliseconds(),
		run.PagesFetched,
		run.Emails,
		run.Locations,
		boolToInt(run.Found),
		run.ErrorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, f := range run.Findings {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO findings (run_id, emails, location) VALUES (?, ?, ?)",
			runID, f.Emails, f.Location,
		); err != nil {
			return 0, fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = runID
	return runID, nil
}

// RecentRuns returns the most recent runs, newest first.
// A limit of zero or less returns all runs.
func (hdb *HistoryDB) RecentRuns(ctx context.Context, limit int) ([]model.Run, error) {
	query := `
	SELECT id, start_url, started_at, duration_ms, pages_fetched, emails, locations, found, error_message
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var startedAt string
		var durationMS int64
		var emails, locations, errMsg sql.NullString
		var found int

		if err := rows.Scan(
			&run.ID,
			&run.StartURL,
			&startedAt,
			&durationMS,
			&run.PagesFetched,
			&emails,
			&locations,
			&found,
			&errMsg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.StartedAt = parseTimestamp(startedAt)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		run.Emails = emails.String
		run.Locations = locations.String
		run.Found = found != 0
		run.ErrorMessage = errMsg.String
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FindingsForRun returns the findings stored for a run, in insertion order.
func (hdb *HistoryDB) FindingsForRun(ctx context.Context, runID int64) ([]model.Finding, error) {
	query := `
	SELECT emails, location FROM findings
	WHERE run_id = ?
	ORDER BY id
	`

	rows, err := hdb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var findings []model.Finding
	for rows.Next() {
		var f model.Finding
		if err := rows.Scan(&f.Emails, &f.Location); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}

	return findings, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
