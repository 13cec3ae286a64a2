// Package history records exports in a local sqlite database so an earlier
// slider position can be listed and restored.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/radius"
)

// ErrNotFound is returned by Get for an unknown entry.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded export.
type Entry struct {
	ID        int64
	CreatedAt time.Time
	Selection model.Selection
	Config    radius.Config
	Levels    radius.Levels
	Paths     []string
}

// DB handles export history persistence
type DB struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path
func Open(dbPath string) (*DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	hdb := &DB{db: db}
	if err := hdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return hdb, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		radius_index INTEGER NOT NULL,
		padding_index INTEGER NOT NULL,
		child_padding_index INTEGER NOT NULL,
		outer_padding_index INTEGER NOT NULL,
		size INTEGER NOT NULL,
		zoom INTEGER NOT NULL,
		tab TEXT NOT NULL DEFAULT 'primitives',
		radius REAL NOT NULL,
		padding REAL NOT NULL,
		child_padding REAL NOT NULL,
		outer_padding REAL NOT NULL,
		level4 REAL NOT NULL,
		level3 REAL NOT NULL,
		level2 REAL NOT NULL,
		level1 REAL NOT NULL,
		paths TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_exports_created ON exports(created_at);
	`
	_, err := d.db.Exec(schema)
	return err
}

// Record inserts an export of s that produced the given files
func (d *DB) Record(ctx context.Context, s model.Snapshot, paths []string) (int64, error) {
	sel, cfg, lv := s.Selection, s.Config, s.Levels
	result, err := d.db.ExecContext(ctx, `
		INSERT INTO exports (created_at, radius_index, padding_index, child_padding_index, outer_padding_index,
			size, zoom, tab, radius, padding, child_padding, outer_padding, level4, level3, level2, level1, paths)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.Taken.UTC(), sel.Radius, sel.Padding, sel.ChildPadding, sel.OuterPadding,
		sel.Size, sel.Zoom, string(sel.Tab), cfg.Radius, cfg.Padding, cfg.ChildPadding, cfg.OuterPadding,
		lv.Level4, lv.Level3, lv.Level2, lv.Level1, strings.Join(paths, "\n"))
	if err != nil {
		return 0, fmt.Errorf("record export: %w", err)
	}
	return result.LastInsertId()
}

const selectEntry = `
	SELECT id, created_at, radius_index, padding_index, child_padding_index, outer_padding_index,
		size, zoom, tab, radius, padding, child_padding, outer_padding, level4, level3, level2, level1, paths
	FROM exports`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e     Entry
		tab   string
		paths string
	)
	err := row.Scan(&e.ID, &e.CreatedAt,
		&e.Selection.Radius, &e.Selection.Padding, &e.Selection.ChildPadding, &e.Selection.OuterPadding,
		&e.Selection.Size, &e.Selection.Zoom, &tab,
		&e.Config.Radius, &e.Config.Padding, &e.Config.ChildPadding, &e.Config.OuterPadding,
		&e.Levels.Level4, &e.Levels.Level3, &e.Levels.Level2, &e.Levels.Level1, &paths)
	if err != nil {
		return Entry{}, err
	}
	e.Selection.Tab = model.Tab(tab)
	e.Config.Size = float64(e.Selection.Size)
	if paths != "" {
		e.Paths = strings.Split(paths, "\n")
	}
	return e, nil
}

// List returns the most recent entries, newest first. limit <= 0 means all.
func (d *DB) List(ctx context.Context, limit int) ([]Entry, error) {
	query := selectEntry + ` ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get retrieves an entry by ID. Stored rows are validated before they are
// handed back, since the file may have been edited by hand.
func (d *DB) Get(ctx context.Context, id int64) (Entry, error) {
	e, err := scanEntry(d.db.QueryRowContext(ctx, selectEntry+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, err
	}
	if err := e.Config.Validate(); err != nil {
		return Entry{}, fmt.Errorf("history entry %d: %w", id, err)
	}
	if err := e.Selection.Validate(); err != nil {
		return Entry{}, fmt.Errorf("history entry %d: %w", id, err)
	}
	return e, nil
}

// Prune deletes all but the newest keep entries and returns how many were
// removed.
func (d *DB) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		DELETE FROM exports WHERE id NOT IN (
			SELECT id FROM exports ORDER BY created_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
