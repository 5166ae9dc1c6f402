// Package storage keeps a local journal of completed verifications so history
// stays readable offline. Failures here never fail a verification.
package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	_ "modernc.org/sqlite"
)

type DB struct {
	sql *sql.DB
}

// Record is one journaled verification.
type Record struct {
	ID           int64
	Texto        string
	URL          string
	Resultado    string
	Razonamiento string
	ConsultaID   int
	CreatedAt    time.Time
}

// LocalStats summarizes the journal for the stats command.
type LocalStats struct {
	Total        int
	PorResultado map[string]int
}

// DefaultPath resolves the journal location under the user's config dir.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".covered", "covered.sqlite"), nil
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS verifications (
  id            INTEGER PRIMARY KEY,
  texto         TEXT NOT NULL,
  url           TEXT,
  resultado     TEXT NOT NULL,
  razonamiento  TEXT,
  consulta_id   INTEGER,
  created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_verifications_created ON verifications(created_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Append journals one completed verification.
func (d *DB) Append(ctx context.Context, rec Record) error {
	_, err := d.sql.ExecContext(ctx, `
INSERT INTO verifications (texto, url, resultado, razonamiento, consulta_id, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Texto, rec.URL, rec.Resultado, rec.Razonamiento, rec.ConsultaID, time.Now().UTC())
	return err
}

// Recent returns the n newest journal entries, newest first.
func (d *DB) Recent(ctx context.Context, n int) ([]Record, error) {
	rows, err := d.sql.QueryContext(ctx, `
SELECT id, texto, COALESCE(url, ''), resultado, COALESCE(razonamiento, ''), COALESCE(consulta_id, 0), created_at
FROM verifications
ORDER BY created_at DESC, id DESC
LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Texto, &rec.URL, &rec.Resultado, &rec.Razonamiento, &rec.ConsultaID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats counts journal entries grouped by verdict.
func (d *DB) Stats(ctx context.Context) (*LocalStats, error) {
	rows, err := d.sql.QueryContext(ctx, `
SELECT resultado, COUNT(*) FROM verifications GROUP BY resultado`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &LocalStats{PorResultado: make(map[string]int)}
	for rows.Next() {
		var resultado string
		var count int
		if err := rows.Scan(&resultado, &count); err != nil {
			return nil, err
		}
		stats.PorResultado[resultado] = count
		stats.Total += count
	}
	return stats, rows.Err()
}
