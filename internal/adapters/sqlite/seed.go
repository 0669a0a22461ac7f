package sqlite

import (
	"context"
	"fmt"
	"time"

	"vartree/internal/application"
	"vartree/internal/domain"
	"vartree/internal/logger"
)

// SeedStats reports what a Seed changed
type SeedStats struct {
	Removed  int64
	Written  int
	Duration time.Duration
}

// Seed replaces the table contents with the top-level entries of doc,
// which must be a map. Every value is stored as JSON.
func (s *Store) Seed(ctx context.Context, doc domain.Value) (*SeedStats, error) {
	if !doc.IsMap() {
		return nil, &application.ValidationError{
			Field:   "document",
			Message: "only a map document can be stored as key/value rows, got " + doc.Kind().String(),
		}
	}

	if s.readOnly {
		return nil, fmt.Errorf("%w: %s was opened read-only", application.ErrInvalidSource, s.Describe())
	}

	start := time.Now()
	stats := &SeedStats{}

	if err := s.ensureTable(); err != nil {
		return nil, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if stats.Removed, err = tx.Clear(); err != nil {
		return nil, err
	}

	for i, key := range doc.Keys() {
		if err := tx.Put(key, doc.At(i)); err != nil {
			return nil, err
		}
		stats.Written++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	logger.Info("seeded global storage", "db", s.dbPath, "table", s.table,
		"written", stats.Written, "removed", stats.Removed)
	return stats, nil
}
