package sqlite

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"vartree/internal/application"
	"vartree/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a key/value table of JSON documents, the on-disk form of a
// global storage.
type Store struct {
	db       *sql.DB
	dbPath   string
	table    string
	readOnly bool
}

// Open opens an existing database read-only. A missing file is an error,
// so opening never creates or modifies a foreign database.
func Open(dbPath, table string) (*Store, error) {
	return open(dbPath, table, true)
}

// Create opens the database at dbPath for writing, creating the file when
// it does not exist yet. The table is not created until the first Seed.
func Create(dbPath, table string) (*Store, error) {
	return open(dbPath, table, false)
}

func open(dbPath, table string, readOnly bool) (*Store, error) {
	if table == "" {
		table = config.DefaultTable
	}
	if err := application.ValidateIdentifier("table", table); err != nil {
		return nil, err
	}

	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if readOnly {
		info, err := os.Stat(dbPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", application.ErrInvalidSource, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", application.ErrInvalidSource, dbPath)
		}
	}

	dsn, err := dataSourceName(dbPath, readOnly)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, table: table, readOnly: readOnly}, nil
}

// dataSourceName builds a file: URI so that any character in the path,
// '?' and '#' included, reaches sqlite escaped.
func dataSourceName(dbPath string, readOnly bool) (string, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dbPath, err)
	}

	params := url.Values{}
	params.Set("_busy_timeout", "5000")
	if readOnly {
		params.Set("mode", "ro")
	} else {
		params.Set("mode", "rwc")
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: params.Encode()}
	return u.String(), nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Table returns the name of the key/value table
func (s *Store) Table() string {
	return s.table
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Describe implements ports.DocumentSource
func (s *Store) Describe() string {
	return "sqlite://" + s.dbPath + "?table=" + url.QueryEscape(s.table)
}

func (s *Store) ensureTable() error {
	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value TEXT
		)
	`, s.table))
	if err != nil {
		return fmt.Errorf("failed to setup table %s: %w", s.table, err)
	}
	return nil
}
