package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Store is the shared repository for content entities. Every table it serves
// carries the same backbone columns: id, slug, priority, updated_at. The
// entity-specific list queries stay in each feature's db layer; everything
// that used to be copy-pasted per entity lives here once.
type Store[T any] struct {
	Bun *bun.DB
}

func NewStore[T any](db *bun.DB) *Store[T] {
	return &Store[T]{Bun: db}
}

func (s *Store[T]) ByID(ctx context.Context, id string) (*T, error) {
	row := new(T)
	err := s.Bun.NewSelect().
		Model(row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Store[T]) Insert(ctx context.Context, row *T) error {
	_, err := s.Bun.NewInsert().Model(row).Exec(ctx)
	return err
}

// UpdateColumns persists only the named columns of row, keyed by id.
func (s *Store[T]) UpdateColumns(ctx context.Context, id string, row *T, columns ...string) error {
	res, err := s.Bun.NewUpdate().
		Model(row).
		Column(columns...).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-removes the row. A repeat call reports ErrNotFound.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	res, err := s.Bun.NewDelete().
		Model((*T)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SlugTaken reports whether a slug is already used by any row of the table.
func (s *Store[T]) SlugTaken(ctx context.Context, slug string) (bool, error) {
	return s.Bun.NewSelect().
		Model((*T)(nil)).
		Where("slug = ?", slug).
		Exists(ctx)
}

// Reorder persists a full drag-and-drop result in one transaction: the first
// id gets the highest priority (len), the last gets 1. Ids that no longer
// exist are skipped. When featured is non-nil the flag is flipped for every
// listed row in the same transaction, so a cross-group drag cannot be torn
// apart by a failure between two requests.
func (s *Store[T]) Reorder(ctx context.Context, orderedIDs []string, featured *bool) error {
	return s.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		for i, id := range orderedIDs {
			q := tx.NewUpdate().
				Model((*T)(nil)).
				Set("priority = ?", int64(len(orderedIDs)-i)).
				Set("updated_at = ?", now).
				Where("id = ?", id)
			if featured != nil {
				q = q.Set("is_featured = ?", *featured)
			}
			if _, err := q.Exec(ctx); err != nil {
				return fmt.Errorf("reorder position %d (id %s): %w", i, id, err)
			}
		}
		return nil
	})
}

// BulkSetBool flips a boolean column for each id independently. Rows that are
// missing or already carry the target value are reported as skipped; the
// batch never aborts on them.
func (s *Store[T]) BulkSetBool(ctx context.Context, ids []string, column string, value bool) (succeeded, skipped []string, err error) {
	now := time.Now()
	for _, id := range ids {
		res, execErr := s.Bun.NewUpdate().
			Model((*T)(nil)).
			Set("? = ?", bun.Ident(column), value).
			Set("updated_at = ?", now).
			Where("id = ?", id).
			Where("? <> ?", bun.Ident(column), value).
			Exec(ctx)
		if execErr != nil {
			return nil, nil, execErr
		}
		if n, _ := res.RowsAffected(); n == 0 {
			skipped = append(skipped, id)
			continue
		}
		succeeded = append(succeeded, id)
	}
	return succeeded, skipped, nil
}

// BulkSetStatus moves each id from fromValue to value on a string status
// column, with the same partial-success contract as BulkSetBool.
func (s *Store[T]) BulkSetStatus(ctx context.Context, ids []string, column, value, fromValue string) (succeeded, skipped []string, err error) {
	now := time.Now()
	for _, id := range ids {
		res, execErr := s.Bun.NewUpdate().
			Model((*T)(nil)).
			Set("? = ?", bun.Ident(column), value).
			Set("updated_at = ?", now).
			Where("id = ?", id).
			Where("? = ?", bun.Ident(column), fromValue).
			Exec(ctx)
		if execErr != nil {
			return nil, nil, execErr
		}
		if n, _ := res.RowsAffected(); n == 0 {
			skipped = append(skipped, id)
			continue
		}
		succeeded = append(succeeded, id)
	}
	return succeeded, skipped, nil
}
