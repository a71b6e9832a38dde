package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLStore is a DurableStore backed by a single key-value table in a
// relational database. The dialect handles placeholder and DDL
// differences between sqlite, postgres and mysql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore opens a connection for the named backend and ensures the
// cache table exists
func NewSQLStore(backend string, cfg DialectConfig) (*SQLStore, error) {
	var dialect Dialect
	switch strings.ToLower(backend) {
	case "postgres", "postgresql":
		dialect = NewPostgresDialect()
	case "mysql":
		dialect = NewMySQLDialect()
	case "sqlite", "sqlite3", "":
		dialect = NewSQLiteDialect()
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	if _, err := db.Exec(dialect.CreateTableQuery()); err != nil {
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &SQLStore{db: db, dialect: dialect}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := s.dialect.RewriteQuery("SELECT payload FROM cache_entries WHERE cache_key = ?")

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sql get %q: %w", key, err)
	}
	return payload, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, payload []byte) error {
	query := s.dialect.RewriteQuery(s.dialect.UpsertQuery())

	if _, err := s.db.ExecContext(ctx, query, key, payload); err != nil {
		return fmt.Errorf("sql set %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := s.dialect.RewriteQuery("DELETE FROM cache_entries WHERE cache_key = ?")

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("sql delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return fmt.Errorf("sql clear: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
