package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"gyb.studio/pulse/internal/platforms"
)

// MetricSnapshot is one stored fetch result. Snapshots accumulate per
// (content, platform) so trend queries can diff current against previous
// counts, e.g. follower growth between two fetches.
type MetricSnapshot struct {
	ID              pgtype.UUID
	ContentID       pgtype.UUID
	Platform        string
	Views           int64
	Likes           int64
	Shares          int64
	Comments        int64
	Duration        string
	SubscriberCount int64
	Followers       int64
	TrackCount      int64
	FetchedAt       pgtype.Timestamptz
}

// InsertMetricSnapshot stores a successful normalized fetch. Failure records
// are the caller's problem; only real metrics belong in history.
func (db *DatabaseConnection) InsertMetricSnapshot(ctx context.Context, contentID uuid.UUID, data platforms.PlatformViewData) error {
	if data.Error != "" {
		return fmt.Errorf("refusing to store a failed fetch for %s", data.Platform)
	}

	pgContentID := pgtype.UUID{Bytes: contentID, Valid: true}

	_, err := db.Exec(ctx, `
		INSERT INTO metric_snapshots (
			id, content_id, platform, views, likes, shares, comments,
			duration, subscriber_count, followers, track_count, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`,
		pgtype.UUID{Bytes: uuid.New(), Valid: true},
		pgContentID,
		data.Platform,
		data.Views,
		data.Likes,
		data.Shares,
		data.Comments,
		data.Duration,
		data.SubscriberCount,
		data.Followers,
		data.TrackCount,
	)
	if err != nil {
		return fmt.Errorf("insert metric snapshot: %w", err)
	}
	return nil
}

// ListMetricSnapshots returns up to limit snapshots for one piece of content
// on one platform, newest first.
func (db *DatabaseConnection) ListMetricSnapshots(ctx context.Context, contentID uuid.UUID, platform string, limit int) ([]*MetricSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(ctx, `
		SELECT id, content_id, platform, views, likes, shares, comments,
		       duration, subscriber_count, followers, track_count, fetched_at
		FROM metric_snapshots
		WHERE content_id = $1 AND platform = $2
		ORDER BY fetched_at DESC
		LIMIT $3`,
		pgtype.UUID{Bytes: contentID, Valid: true},
		platform,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list metric snapshots: %w", err)
	}
	defer rows.Close()

	var out []*MetricSnapshot
	for rows.Next() {
		var s MetricSnapshot
		if err := rows.Scan(
			&s.ID, &s.ContentID, &s.Platform, &s.Views, &s.Likes, &s.Shares,
			&s.Comments, &s.Duration, &s.SubscriberCount, &s.Followers,
			&s.TrackCount, &s.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scan metric snapshot: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// LatestMetricSnapshot returns the most recent snapshot, or pgx.ErrNoRows.
func (db *DatabaseConnection) LatestMetricSnapshot(ctx context.Context, contentID uuid.UUID, platform string) (*MetricSnapshot, error) {
	snapshots, err := db.ListMetricSnapshots(ctx, contentID, platform, 1)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, pgx.ErrNoRows
	}
	return snapshots[0], nil
}

// NilTimePtr converts a nullable timestamptz to *time.Time.
func NilTimePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
