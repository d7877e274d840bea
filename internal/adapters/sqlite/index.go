// Package sqlite implements ports.FingerprintIndex over an in-memory
// SQLite database. Nothing is written to disk: the index lives and dies
// with the process, matching the session's memory-only state model.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"desksweep/internal/domain"
	"desksweep/internal/ports"
)

// Index holds (size, fingerprint) rows for whole-set duplicate grouping
type Index struct {
	db *sql.DB
}

// Ensure Index implements FingerprintIndex
var _ ports.FingerprintIndex = (*Index)(nil)

// NewIndex creates an unopened index
func NewIndex() *Index { return &Index{} }

// Open creates the in-memory database and its schema
func (idx *Index) Open() error {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open index database: %w", err)
	}
	// The in-memory database exists per connection; keep exactly one.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS files (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			size INTEGER NOT NULL,
			fingerprint TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_files_dupe ON files(size, fingerprint);
		CREATE INDEX IF NOT EXISTS idx_files_size ON files(size);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup index schema: %w", err)
	}
	idx.db = db
	return nil
}

// Close releases the database
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Add inserts records, preserving insertion order via the sequence column
func (idx *Index) Add(recs ...domain.FileRecord) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO files (id, name, size, fingerprint) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range recs {
		if _, err := stmt.Exec(string(r.ID), r.Name, r.Size, r.Fingerprint); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// DuplicateGroups returns the ids of files sharing a size and a non-empty
// fingerprint with at least one other file, grouped, each group in
// insertion order
func (idx *Index) DuplicateGroups() ([][]domain.FileID, error) {
	rows, err := idx.db.Query(`
		SELECT f.id, f.size, f.fingerprint
		FROM files f
		JOIN (
			SELECT size, fingerprint FROM files
			WHERE fingerprint != ''
			GROUP BY size, fingerprint
			HAVING COUNT(*) > 1
		) d ON f.size = d.size AND f.fingerprint = d.fingerprint
		ORDER BY f.size, f.fingerprint, f.seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		groups  [][]domain.FileID
		current []domain.FileID
		lastKey string
	)
	for rows.Next() {
		var id, fingerprint string
		var size int64
		if err := rows.Scan(&id, &size, &fingerprint); err != nil {
			return nil, err
		}
		key := fmt.Sprintf("%d:%s", size, fingerprint)
		if key != lastKey && len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
		lastKey = key
		current = append(current, domain.FileID(id))
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups, rows.Err()
}

// LargestFiles returns up to n ids ordered by size descending
func (idx *Index) LargestFiles(n int) ([]domain.FileID, error) {
	rows, err := idx.db.Query(`SELECT id FROM files ORDER BY size DESC, seq LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FileID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, domain.FileID(id))
	}
	return out, rows.Err()
}

// Clear drops all rows
func (idx *Index) Clear() error {
	_, err := idx.db.Exec(`DELETE FROM files`)
	return err
}
