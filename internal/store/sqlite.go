package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/prime399/packmate/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS verification_results (
	id                 TEXT PRIMARY KEY,
	app_id             TEXT NOT NULL,
	package_manager_id TEXT NOT NULL,
	package_name       TEXT NOT NULL,
	status             TEXT NOT NULL,
	timestamp          TEXT NOT NULL,
	error_message      TEXT NOT NULL DEFAULT '',
	manual_review_flag INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_results_pair_ts
	ON verification_results(app_id, package_manager_id, timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_results_flag_ts
	ON verification_results(manual_review_flag, timestamp DESC);
`

// SQLite is a Store backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path and
// bootstraps the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrapping schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Append(ctx context.Context, result *core.VerificationResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	result.Timestamp = core.NormalizeTimestamp(result.Timestamp)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verification_results
			(id, app_id, package_manager_id, package_name, status, timestamp, error_message, manual_review_flag)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.AppID, result.PackageManagerID, result.PackageName,
		string(result.Status), result.Timestamp, result.ErrorMessage, boolToInt(result.ManualReviewFlag))
	return err
}

func (s *SQLite) Latest(ctx context.Context, appID, packageManagerID string) (*core.VerificationResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, app_id, package_manager_id, package_name, status, timestamp, error_message, manual_review_flag
		 FROM verification_results
		 WHERE app_id = ? AND package_manager_id = ?
		 ORDER BY timestamp DESC
		 LIMIT 1`,
		appID, packageManagerID)

	rec, err := scanResult(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SQLite) Flagged(ctx context.Context, q FlaggedQuery) ([]core.VerificationResult, error) {
	query := `SELECT id, app_id, package_manager_id, package_name, status, timestamp, error_message, manual_review_flag
		FROM verification_results
		WHERE manual_review_flag = 1`
	var args []any
	if q.PackageManagerID != "" {
		query += ` AND package_manager_id = ?`
		args = append(args, q.PackageManagerID)
	}
	if q.SortBy == SortByApp {
		query += ` ORDER BY app_id ASC, timestamp DESC`
	} else {
		query += ` ORDER BY timestamp DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []core.VerificationResult
	for rows.Next() {
		rec, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *SQLite) ClearFlag(ctx context.Context, appID, packageManagerID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE verification_results SET manual_review_flag = 0
		 WHERE id = (
			SELECT id FROM verification_results
			WHERE app_id = ? AND package_manager_id = ? AND manual_review_flag = 1
			ORDER BY timestamp DESC
			LIMIT 1
		 )`,
		appID, packageManagerID)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func scanResult(scan func(dest ...any) error) (*core.VerificationResult, error) {
	var rec core.VerificationResult
	var status string
	var flag int
	if err := scan(&rec.ID, &rec.AppID, &rec.PackageManagerID, &rec.PackageName,
		&status, &rec.Timestamp, &rec.ErrorMessage, &flag); err != nil {
		return nil, err
	}
	rec.Status = core.Status(status)
	rec.ManualReviewFlag = flag != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
