// Package storage persists report artifacts: JSON files on disk and a
// SQLite history of generated reports.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ReportArchive keeps a history of generated reports in SQLite.
type ReportArchive struct {
	db *sql.DB
}

func NewReportArchive(dbPath string) (*ReportArchive, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &ReportArchive{db: db}, nil
}

func (a *ReportArchive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// ArchivedReport is one stored report row.
type ArchivedReport struct {
	ID        int64
	Kind      string
	Name      string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// Save records a generated report payload under its kind and artifact name.
func (a *ReportArchive) Save(ctx context.Context, kind, name string, payload any) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal report payload: %w", err)
	}

	res, err := a.db.ExecContext(ctx,
		`INSERT INTO reports (kind, name, payload, created_at) VALUES (?, ?, ?, ?)`,
		kind, name, string(body), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("report id: %w", err)
	}

	slog.InfoContext(ctx, "report archived", "id", id, "kind", kind, "name", name)
	return id, nil
}

// Recent returns the latest n archived reports of a kind, newest first.
func (a *ReportArchive) Recent(ctx context.Context, kind string, n int) ([]ArchivedReport, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, kind, name, payload, created_at FROM reports WHERE kind = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		kind, n)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []ArchivedReport
	for rows.Next() {
		var r ArchivedReport
		var payload, created string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Name, &payload, &created); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = ts
		}
		r.Payload = json.RawMessage(payload)
		out = append(out, r)
	}
	return out, rows.Err()
}
