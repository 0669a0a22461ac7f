package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"vartree/internal/adapters/codec"
	"vartree/internal/domain"
)

// storeTx batches writes to the key/value table
type storeTx struct {
	tx    *sql.Tx
	table string
}

func (s *Store) begin(ctx context.Context) (*storeTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx, table: s.table}, nil
}

// Put inserts or replaces a key, storing the value as JSON
func (t *storeTx) Put(key string, value domain.Value) error {
	data, err := codec.EncodeJSON(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = t.tx.Exec(fmt.Sprintf(`INSERT OR REPLACE INTO %s (key, value) VALUES (?, ?)`, t.table),
		key, string(data))
	return err
}

// Clear removes every row
func (t *storeTx) Clear() (int64, error) {
	res, err := t.tx.Exec(fmt.Sprintf(`DELETE FROM %s`, t.table))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
