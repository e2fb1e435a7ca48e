package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/inteldash/pkg/domain"
)

// RecordRepository handles archive operations on intelligence records
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a record repository with the given connection
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// AddRecords stores records in the archive. Duplicates (same headline) are
// silently ignored, matching the dataset's headline-keyed semantics.
// Returns the number of records actually inserted.
func (r *RecordRepository) AddRecords(ctx context.Context, records []domain.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	inserted := 0
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		inserted = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin tx: %w", err)}
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		query := `
			INSERT OR IGNORE INTO records (headline, type, category, country, date, body)
			VALUES (:headline, :type, :category, :country, :date, :body)
		`
		for _, rec := range records {
			res, err := tx.NamedExecContext(ctx, query, rec)
			if err != nil {
				if isLockError(err) {
					return err // retry
				}
				return &criticalError{err: fmt.Errorf("insert record %q: %w", rec.Headline, err)}
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("commit records: %w", err)}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// List returns archived records ordered by date, newest first
func (r *RecordRepository) List(ctx context.Context, limit, offset int) ([]domain.Record, error) {
	query := `
		SELECT headline, type, category, country, date, body FROM records
		ORDER BY date DESC, headline ASC
		LIMIT ? OFFSET ?
	`
	records := []domain.Record{}
	if err := r.db.SelectContext(ctx, &records, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Search returns archived records matching the query in headline or body
func (r *RecordRepository) Search(ctx context.Context, q string, limit, offset int) ([]domain.Record, error) {
	query := `
		SELECT headline, type, category, country, date, body FROM records
		WHERE headline LIKE '%' || ? || '%' OR body LIKE '%' || ? || '%'
		ORDER BY date DESC, headline ASC
		LIMIT ? OFFSET ?
	`
	records := []domain.Record{}
	if err := r.db.SelectContext(ctx, &records, query, q, q, limit, offset); err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	return records, nil
}

// Count returns the total number of archived records
func (r *RecordRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM records"); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}
