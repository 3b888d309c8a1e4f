// Package store persists document snapshots in a SQLite database. Every save
// appends a revision; loads return the latest revision unless one is named.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/yacobolo/cascade/internal/cascade"
)

//go:embed schema.sql
var schemaSQL string

// Errors returned by the store.
var (
	ErrNotOpen      = errors.New("database not opened")
	ErrNotFound     = errors.New("document not found")
	ErrInvalidTitle = errors.New("document title produces an empty name")
)

// DocumentInfo describes the latest revision of a stored document.
type DocumentInfo struct {
	Name         string
	Title        string
	Revision     int
	Sources      int
	Declarations int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Revision describes one saved snapshot.
type Revision struct {
	Document     string
	Number       int
	Sources      int
	Declarations int
	SavedAt      time.Time
}

// SQLiteStore stores snapshots in SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  *zap.Logger
	now  func() time.Time
}

// Open opens (creating if needed) the database at path and initializes the
// schema. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection keeps ":memory:" databases and PRAGMAs consistent.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path, log: log.Named("store"), now: time.Now}
	if err := s.init(ctx); err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	s.log.Debug("Store opened", zap.String("path", path))
	return s, nil
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// DocumentName turns a human title into the key documents are stored under.
func DocumentName(title string) (string, error) {
	name := slug.Make(title)
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}
	return name, nil
}

// Save appends snap as the next revision of the document titled title.
func (s *SQLiteStore) Save(ctx context.Context, title string, snap *cascade.Snapshot) (rev Revision, err error) {
	if s.db == nil {
		return Revision{}, ErrNotOpen
	}
	name, err := DocumentName(title)
	if err != nil {
		return Revision{}, err
	}
	var body strings.Builder
	if err := cascade.EncodeSnapshot(&body, snap, cascade.FormatJSON); err != nil {
		return Revision{}, err
	}
	now := s.now().UTC()
	stamp := now.Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO documents (name, title, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at
	`, name, title, stamp, stamp); err != nil {
		return Revision{}, fmt.Errorf("upsert document %s: %w", name, err)
	}

	var next int
	if err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(revision), 0) + 1 FROM revisions WHERE document = ?`, name,
	).Scan(&next); err != nil {
		return Revision{}, fmt.Errorf("next revision of %s: %w", name, err)
	}

	rev = Revision{
		Document:     name,
		Number:       next,
		Sources:      len(snap.Sources),
		Declarations: len(snap.Styles),
		SavedAt:      now,
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO revisions (document, revision, sources, declarations, body, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, name, rev.Number, rev.Sources, rev.Declarations, body.String(), stamp); err != nil {
		return Revision{}, fmt.Errorf("insert revision %d of %s: %w", next, name, err)
	}

	if err = tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("commit transaction: %w", err)
	}
	s.log.Debug("Snapshot saved",
		zap.String("document", name),
		zap.Int("revision", rev.Number),
		zap.Int("declarations", rev.Declarations))
	return rev, nil
}

// Load returns the latest snapshot of a document.
func (s *SQLiteStore) Load(ctx context.Context, title string) (*cascade.Snapshot, Revision, error) {
	return s.LoadRevision(ctx, title, 0)
}

// LoadRevision returns one revision of a document; 0 means the latest.
func (s *SQLiteStore) LoadRevision(ctx context.Context, title string, number int) (*cascade.Snapshot, Revision, error) {
	if s.db == nil {
		return nil, Revision{}, ErrNotOpen
	}
	name, err := DocumentName(title)
	if err != nil {
		return nil, Revision{}, err
	}

	query := `SELECT revision, sources, declarations, body, saved_at FROM revisions
		WHERE document = ? ORDER BY revision DESC LIMIT 1`
	args := []any{name}
	if number > 0 {
		query = `SELECT revision, sources, declarations, body, saved_at FROM revisions
			WHERE document = ? AND revision = ?`
		args = append(args, number)
	}

	rev := Revision{Document: name}
	var body, savedAt string
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&rev.Number, &rev.Sources, &rev.Declarations, &body, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		if number > 0 {
			return nil, Revision{}, fmt.Errorf("%s revision %d: %w", name, number, ErrNotFound)
		}
		return nil, Revision{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, Revision{}, fmt.Errorf("load %s: %w", name, err)
	}
	if rev.SavedAt, err = parseTime(savedAt); err != nil {
		return nil, Revision{}, err
	}

	snap, err := cascade.DecodeSnapshot(strings.NewReader(body), cascade.FormatJSON)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("load %s revision %d: %w", name, rev.Number, err)
	}
	return snap, rev, nil
}

// Revisions lists every revision of a document, newest first.
func (s *SQLiteStore) Revisions(ctx context.Context, title string) (revs []Revision, err error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	name, err := DocumentName(title)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT revision, sources, declarations, saved_at FROM revisions
		WHERE document = ? ORDER BY revision DESC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer func() { err = multierr.Append(err, rows.Close()) }()

	for rows.Next() {
		rev := Revision{Document: name}
		var savedAt string
		if err := rows.Scan(&rev.Number, &rev.Sources, &rev.Declarations, &savedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		if rev.SavedAt, err = parseTime(savedAt); err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	if len(revs) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return revs, nil
}

// List describes every stored document in natural name order.
func (s *SQLiteStore) List(ctx context.Context) (docs []DocumentInfo, err error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.name, d.title, d.created_at, d.updated_at, r.revision, r.sources, r.declarations
		FROM documents d
		JOIN revisions r ON r.document = d.name
		WHERE r.revision = (SELECT MAX(revision) FROM revisions WHERE document = d.name)
	`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer func() { err = multierr.Append(err, rows.Close()) }()

	for rows.Next() {
		var info DocumentInfo
		var created, updated string
		if err := rows.Scan(&info.Name, &info.Title, &created, &updated,
			&info.Revision, &info.Sources, &info.Declarations); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if info.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if info.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		docs = append(docs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	sort.Slice(docs, func(i, j int) bool { return natural.Less(docs[i].Name, docs[j].Name) })
	return docs, nil
}

// Delete removes a document and all of its revisions.
func (s *SQLiteStore) Delete(ctx context.Context, title string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	name, err := DocumentName(title)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	s.log.Debug("Document deleted", zap.String("document", name))
	return nil
}

// Prune keeps the newest keep revisions of a document and returns how many
// were removed.
func (s *SQLiteStore) Prune(ctx context.Context, title string, keep int) (int, error) {
	if s.db == nil {
		return 0, ErrNotOpen
	}
	if keep < 1 {
		return 0, fmt.Errorf("prune must keep at least one revision, got %d", keep)
	}
	name, err := DocumentName(title)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM revisions WHERE document = ? AND revision <= (
			SELECT MAX(revision) FROM revisions WHERE document = ?
		) - ?
	`, name, name, keep)
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", name, err)
	}
	return int(n), nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
