package db

import (
	"context"
	"fmt"
	"time"
)

// UsageStore appends and aggregates API usage log entries.
type UsageStore struct {
	client *Client
}

func NewUsageStore(client *Client) *UsageStore {
	return &UsageStore{client: client}
}

// Insert appends one usage entry.
func (s *UsageStore) Insert(ctx context.Context, endpoint string, at time.Time) error {
	_, err := s.client.db.ExecContext(ctx,
		`INSERT INTO api_usage (timestamp, endpoint) VALUES (?, ?)`,
		formatTime(at), endpoint)
	if err != nil {
		return fmt.Errorf("failed to insert usage entry: %w", err)
	}

	return nil
}

// TimestampsSince returns the timestamps of entries at or after the given
// time, oldest first. Aggregation into buckets happens in the service.
func (s *UsageStore) TimestampsSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	rows, err := s.client.db.QueryContext(ctx,
		`SELECT timestamp FROM api_usage WHERE timestamp >= ? ORDER BY timestamp ASC`,
		formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query usage timestamps: %w", err)
	}
	defer rows.Close()

	var timestamps []time.Time

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan usage timestamp: %w", err)
		}

		t, err := parseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse usage timestamp %q: %w", raw, err)
		}

		timestamps = append(timestamps, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate usage timestamps: %w", err)
	}

	return timestamps, nil
}

// Purge deletes entries older than the given time and reports how many rows
// went away.
func (s *UsageStore) Purge(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.client.db.ExecContext(ctx,
		`DELETE FROM api_usage WHERE timestamp < ?`, formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("failed to purge usage entries: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}

	return affected, nil
}
