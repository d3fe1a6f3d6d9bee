package blob

import (
	"context"
	"database/sql"
	"time"

	// Registers the "stoolap" database/sql driver.
	_ "github.com/stoolap/stoolap/pkg/driver"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// SQLStore keeps documents in an embedded stoolap database, one row per key.
// DSNs are stoolap connection strings: "memory://" or "file:///some/dir/db".
type SQLStore struct {
	db *sql.DB
}

func OpenSQLStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("stoolap", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			doc TEXT
		)
	`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc string

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT doc FROM documents WHERE key = ?
		`, key).Scan(&doc)
	})

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc), true, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, doc []byte) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (key, doc) VALUES (?, ?)
		`, key, string(doc)); err != nil {
			_ = tx.Rollback()
			return err
		}

		return tx.Commit()
	})
}

func withTimeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}
