package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/ddeep01/storefront"
)

// DefaultTableName is the table used when none is given.
const DefaultTableName = "documents"

var validTableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open opens the SQLite database at dbPath with the pragmas the store expects.
func Open(dbPath string) (*sql.DB, error) {
	// Note: the busy_timeout pragma must be first because
	// the connection needs to be set to block on busy before WAL mode
	// is set in case it hasn't been already set by another connection.
	pragmas := "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=journal_size_limit(200000000)&_pragma=synchronous(NORMAL)&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dbPath+pragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// SQLiteStore is a storefront.DocumentStore kept in one SQLite table.
type SQLiteStore struct {
	db        *sql.DB
	tableName string
}

// NewSQLiteStore creates a store over db. The table name must be a plain SQL identifier.
func NewSQLiteStore(db *sql.DB, tableName string) (*SQLiteStore, error) {
	if tableName == "" {
		tableName = DefaultTableName
	}
	if !validTableName.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}
	return &SQLiteStore{db: db, tableName: tableName}, nil
}

// Init creates the documents table if it does not exist.
func (s *SQLiteStore) Init() error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + s.tableName + ` (
			key TEXT PRIMARY KEY,
			body BLOB NOT NULL,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := s.db.Exec(query)
	return err
}

// Put creates or replaces a document.
func (s *SQLiteStore) Put(ctx context.Context, key string, doc []byte) error {
	query := `
		INSERT INTO ` + s.tableName + ` (key, body) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, key, doc); err != nil {
		return fmt.Errorf("failed to store document %s: %w", key, err)
	}
	return nil
}

// Get returns the document stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM `+s.tableName+` WHERE key = ?`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storefront.ErrDocumentNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("error getting document %s: %w", key, err)
	}
	return doc, nil
}

// Delete removes the document stored under key.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM `+s.tableName+` WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storefront.ErrDocumentNotFound, key)
	}
	return nil
}

// Keys returns the stored keys in ascending order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM `+s.tableName+` ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
