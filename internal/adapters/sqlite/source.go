package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vartree/internal/adapters/codec"
	"vartree/internal/application"
	"vartree/internal/domain"
	"vartree/internal/logger"
	"vartree/internal/ports"
)

// Ensure Store implements DocumentSource
var _ ports.DocumentSource = (*Store)(nil)

// Load reads every row of the table into a map keyed by the key column.
// Values holding JSON become structured; anything else stays plain text.
func (s *Store) Load(ctx context.Context) (domain.Value, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT key, value FROM %s`, s.table))
	if err != nil {
		return domain.Value{}, &application.SourceError{Source: s.Describe(), Op: "read", Err: err}
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var key string
		var raw sql.NullString
		if err := rows.Scan(&key, &raw); err != nil {
			return domain.Value{}, &application.SourceError{Source: s.Describe(), Op: "read", Err: err}
		}
		entries = append(entries, domain.Entry{Key: key, Value: decodeCell(raw)})
	}
	if err := rows.Err(); err != nil {
		return domain.Value{}, &application.SourceError{Source: s.Describe(), Op: "read", Err: err}
	}

	logger.Debug("loaded global storage", "db", s.dbPath, "table", s.table, "keys", len(entries))
	return domain.Map(entries...), nil
}

func decodeCell(raw sql.NullString) domain.Value {
	if !raw.Valid {
		return domain.Scalar(nil)
	}
	if strings.TrimSpace(raw.String) == "" {
		return domain.Scalar(raw.String)
	}
	v, err := codec.Decode([]byte(raw.String), codec.FormatJSON)
	if err != nil {
		return domain.Scalar(raw.String)
	}
	return v
}
