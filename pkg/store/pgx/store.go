package pgx

import (
	"context"

	"github.com/grapevine-ai/grapevine/pkg/common"
	"github.com/grapevine-ai/grapevine/pkg/logger"
	"github.com/grapevine-ai/grapevine/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS processed_reviews (
	id BIGSERIAL PRIMARY KEY,
	cleaned_review_content TEXT NOT NULL,
	user_id TEXT NOT NULL,
	entity1 TEXT NOT NULL,
	entity2 TEXT NOT NULL,
	type TEXT NOT NULL,
	relation TEXT NOT NULL,
	rating INTEGER,
	sentiment TEXT NOT NULL,
	brand TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	sub_category TEXT NOT NULL DEFAULT ''
)`

const insertRecordSQL = `
INSERT INTO processed_reviews (
	cleaned_review_content, user_id, entity1, entity2, type,
	relation, rating, sentiment, brand, category, sub_category
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

const listRecordsSQL = `
SELECT id, cleaned_review_content, user_id, entity1, entity2, type,
	relation, rating, sentiment, brand, category, sub_category
FROM processed_reviews
ORDER BY id`

// ReviewDBStore implements the ReviewStore interface using PostgreSQL.
type ReviewDBStore struct {
	conn pgxIConn
}

// NewReviewDBStoreWithConnection creates a ReviewDBStore using an existing
// database connection or pool.
func NewReviewDBStoreWithConnection(conn pgxIConn) *ReviewDBStore {
	return &ReviewDBStore{conn: conn}
}

// EnsureSchema creates the processed_reviews table when it does not exist yet.
func (s *ReviewDBStore) EnsureSchema(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, createTableSQL)
	return err
}

// SaveRecords persists a batch of review records and returns their assigned
// row IDs in input order. Inserts run in chunked transactions so a large batch
// does not hold one transaction open across the whole set.
func (s *ReviewDBStore) SaveRecords(ctx context.Context, records []common.ReviewRecord) ([]int64, error) {
	if len(records) == 0 {
		return nil, nil
	}

	logger.Debug("[Store][SaveRecords] Bulk inserting review records", "records", len(records))

	ids := make([]int64, 0, len(records))
	err := store.ChunkRange(len(records), 1000, func(start, end int) error {
		tx, err := s.conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		batch := &pgxv5.Batch{}
		for _, r := range records[start:end] {
			batch.Queue(insertRecordSQL,
				r.CleanedText, r.UserID, r.Entity1, r.Entity2, r.Type,
				r.Relation, r.Rating, r.Sentiment, r.Brand, r.Category, r.SubCategory,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for i := start; i < end; i++ {
			var id int64
			if err := results.QueryRow().Scan(&id); err != nil {
				results.Close()
				return err
			}
			ids = append(ids, id)
		}
		if err := results.Close(); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// ListRecords returns every stored review record ordered by row ID. The graph
// projector replays this full set on each run.
func (s *ReviewDBStore) ListRecords(ctx context.Context) ([]common.ReviewRecord, error) {
	rows, err := s.conn.Query(ctx, listRecordsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []common.ReviewRecord
	for rows.Next() {
		var r common.ReviewRecord
		if err := rows.Scan(
			&r.ID, &r.CleanedText, &r.UserID, &r.Entity1, &r.Entity2, &r.Type,
			&r.Relation, &r.Rating, &r.Sentiment, &r.Brand, &r.Category, &r.SubCategory,
		); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountRecords returns the number of stored review records.
func (s *ReviewDBStore) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	err := s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM processed_reviews`).Scan(&count)
	return count, err
}
