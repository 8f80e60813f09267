package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"spyglass/internal/analytics"
	"spyglass/pkg/logging"
)

// Activity document tables. Each row is one loosely-typed document in a
// jsonb column, scoped by creator.
const (
	postsTable    = "content_posts"
	messagesTable = "inbox_messages"
)

// ActivityStore reads raw activity documents for the aggregation pipeline.
type ActivityStore struct {
	db     *sql.DB
	logger logging.Logger
}

func NewActivityStore(db *sql.DB, logger logging.Logger) *ActivityStore {
	return &ActivityStore{db: db, logger: logger}
}

// FetchPosts returns every content post document for the creator. Documents
// that fail to decode are skipped, not fatal.
func (s *ActivityStore) FetchPosts(ctx context.Context, creatorID string) ([]analytics.Record, error) {
	return s.fetchDocs(ctx, postsTable, creatorID)
}

// FetchMessages returns every inbox message document for the creator.
func (s *ActivityStore) FetchMessages(ctx context.Context, creatorID string) ([]analytics.Record, error) {
	return s.fetchDocs(ctx, messagesTable, creatorID)
}

func (s *ActivityStore) fetchDocs(ctx context.Context, table, creatorID string) ([]analytics.Record, error) {
	query := fmt.Sprintf("SELECT doc FROM %s WHERE creator_id = $1", table)
	rows, err := s.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var records []analytics.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		var rec analytics.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.logger.WithFields(logging.Fields{
				"table":      table,
				"creator_id": creatorID,
				"error":      err.Error(),
			}).Warn("Skipping undecodable activity document")
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}
	return records, nil
}
