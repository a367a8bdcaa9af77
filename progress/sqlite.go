package progress

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS progress (
	book_id TEXT PRIMARY KEY,
	version TEXT NOT NULL,
	chapter INTEGER NOT NULL,
	page    INTEGER NOT NULL,
	updated INTEGER NOT NULL,
	title   TEXT NOT NULL DEFAULT ''
);
`

// SQLiteStore keeps progress records in a single-file SQLite database.
type SQLiteStore struct {
	conn            *sqlite.Conn
	pagesPerChapter int
	log             *zap.Logger
}

// OpenSQLite opens (creating when necessary) the progress database at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string, pagesPerChapter int, log *zap.Logger) (*SQLiteStore, error) {
	flags := []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL}
	if path == ":memory:" {
		flags = []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenMemory}
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("unable to create progress store directory: %w", err)
		}
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("unable to open progress store: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, sqliteSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare progress schema: %w", err)
	}
	return &SQLiteStore{conn: conn, pagesPerChapter: pagesPerChapter, log: log}, nil
}

func (s *SQLiteStore) Load(bookID string) (*Record, error) {
	var rec *Record
	err := sqlitex.Execute(s.conn,
		`SELECT version, chapter, page, updated, title FROM progress WHERE book_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{bookID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rec = &Record{
					Version:   stmt.ColumnText(0),
					BookID:    bookID,
					Chapter:   stmt.ColumnInt(1),
					Page:      stmt.ColumnInt(2),
					Timestamp: stmt.ColumnInt64(3),
					Title:     stmt.ColumnText(4),
				}
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to load progress for %q: %w", bookID, err)
	}
	if rec != nil && rec.Version != RecordVersion {
		// rows written by older versions stored a raw global page number in
		// the page column
		old := legacyRecord{BookID: bookID, Page: rec.Page, Timestamp: rec.Timestamp, Title: rec.Title}
		rec = old.convert(s.pagesPerChapter)
		s.log.Debug("Converted legacy progress record", zap.String("book", bookID))
	}
	return rec, nil
}

func (s *SQLiteStore) Save(rec *Record) error {
	if !rec.Valid() {
		return fmt.Errorf("refusing to save malformed progress record: %+v", rec)
	}
	err := sqlitex.Execute(s.conn,
		`INSERT INTO progress (book_id, version, chapter, page, updated, title)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(book_id) DO UPDATE SET
		   version = excluded.version,
		   chapter = excluded.chapter,
		   page    = excluded.page,
		   updated = excluded.updated,
		   title   = excluded.title`,
		&sqlitex.ExecOptions{
			Args: []any{rec.BookID, RecordVersion, rec.Chapter, rec.Page, rec.Timestamp, rec.Title},
		})
	if err != nil {
		return fmt.Errorf("unable to save progress for %q: %w", rec.BookID, err)
	}
	return nil
}

func (s *SQLiteStore) List() ([]*Record, error) {
	var recs []*Record
	err := sqlitex.Execute(s.conn,
		`SELECT book_id, version, chapter, page, updated, title FROM progress`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				recs = append(recs, &Record{
					BookID:    stmt.ColumnText(0),
					Version:   stmt.ColumnText(1),
					Chapter:   stmt.ColumnInt(2),
					Page:      stmt.ColumnInt(3),
					Timestamp: stmt.ColumnInt64(4),
					Title:     stmt.ColumnText(5),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to list progress records: %w", err)
	}
	sortByTitle(recs)
	return recs, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
