// Package catalog persists workspace scan results in a local SQLite
// database: one row per discovered project plus per-discriminator count
// rows, so the workspace can be queried without re-decoding anything.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Status values for a recorded project.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Record is one scanned project's row in the catalog.
type Record struct {
	Path          string // project.pbxproj path, the catalog key
	Status        string
	ObjectVersion string
	ObjectCount   int
	TargetCount   int
	Diagnostic    string // one-line decode failure, empty on success
	ScannedAt     time.Time
}

// KindTotal is the aggregate count of one discriminator across every
// recorded project.
type KindTotal struct {
	Isa   string
	Count int
}

// schema contains the DDL executed on first open. Using IF NOT EXISTS
// makes it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS projects (
    path           TEXT PRIMARY KEY,
    status         TEXT NOT NULL,
    object_version TEXT NOT NULL DEFAULT '',
    object_count   INTEGER NOT NULL DEFAULT 0,
    target_count   INTEGER NOT NULL DEFAULT 0,
    diagnostic     TEXT NOT NULL DEFAULT '',
    scanned_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS kind_counts (
    path  TEXT NOT NULL,
    isa   TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (path, isa)
);
`

// Store is the catalog database handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at dbPath, enables WAL
// mode and busy timeout, and creates the schema tables if they do not
// exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; using
	// one connection avoids SQLITE_BUSY contention between pooled
	// connections that each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: set busy timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Put upserts one project record together with its per-discriminator
// counts, replacing whatever the previous scan recorded for the path.
func (s *Store) Put(ctx context.Context, rec Record, kinds map[string]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: begin tx for %q: %w", rec.Path, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const upsert = `
		INSERT INTO projects (path, status, object_version, object_count, target_count, diagnostic, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			status         = excluded.status,
			object_version = excluded.object_version,
			object_count   = excluded.object_count,
			target_count   = excluded.target_count,
			diagnostic     = excluded.diagnostic,
			scanned_at     = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, upsert, rec.Path, rec.Status, rec.ObjectVersion,
		rec.ObjectCount, rec.TargetCount, rec.Diagnostic); err != nil {
		return fmt.Errorf("catalog: upsert project %q: %w", rec.Path, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM kind_counts WHERE path = ?", rec.Path); err != nil {
		return fmt.Errorf("catalog: clear kind counts %q: %w", rec.Path, err)
	}

	isas := make([]string, 0, len(kinds))
	for isa := range kinds {
		isas = append(isas, isa)
	}
	sort.Strings(isas)
	for _, isa := range isas {
		const q = "INSERT INTO kind_counts (path, isa, count) VALUES (?, ?, ?)"
		if _, err := tx.ExecContext(ctx, q, rec.Path, isa, kinds[isa]); err != nil {
			return fmt.Errorf("catalog: insert kind count %q/%q: %w", rec.Path, isa, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: commit %q: %w", rec.Path, err)
	}
	return nil
}

// Projects returns every recorded project, ordered by path.
func (s *Store) Projects(ctx context.Context) ([]Record, error) {
	const q = `SELECT path, status, object_version, object_count, target_count, diagnostic, scanned_at
		FROM projects ORDER BY path`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("catalog: query projects: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var rec Record
		var ts string
		if err := rows.Scan(&rec.Path, &rec.Status, &rec.ObjectVersion,
			&rec.ObjectCount, &rec.TargetCount, &rec.Diagnostic, &ts); err != nil {
			return nil, fmt.Errorf("catalog: scan project: %w", err)
		}
		scannedAt, parseErr := parseTimestamp(ts)
		if parseErr != nil {
			return nil, fmt.Errorf("catalog: parse scan timestamp: %w", parseErr)
		}
		rec.ScannedAt = scannedAt
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate projects: %w", err)
	}
	return result, nil
}

// KindTotals returns the per-discriminator counts summed across every
// recorded project, ordered by discriminator.
func (s *Store) KindTotals(ctx context.Context) ([]KindTotal, error) {
	const q = "SELECT isa, SUM(count) FROM kind_counts GROUP BY isa ORDER BY isa"
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("catalog: query kind totals: %w", err)
	}
	defer rows.Close()

	var result []KindTotal
	for rows.Next() {
		var kt KindTotal
		if err := rows.Scan(&kt.Isa, &kt.Count); err != nil {
			return nil, fmt.Errorf("catalog: scan kind total: %w", err)
		}
		result = append(result, kt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate kind totals: %w", err)
	}
	return result, nil
}

// timestampFormats lists the formats SQLite drivers may produce for
// CURRENT_TIMESTAMP. modernc.org/sqlite typically returns RFC 3339,
// while canonical SQLite returns the space-separated DateTime format.
var timestampFormats = []string{
	time.RFC3339,
	time.DateTime,
}

// parseTimestamp attempts to parse a SQLite timestamp string using known
// formats.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
