package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cleantube/cleantube-go/internal/model"
)

// AuditRepo persists dispatched moderation actions. Schema:
//
//	CREATE TABLE moderation_actions (
//	    id            UUID PRIMARY KEY,
//	    video_id      VARCHAR(16) NOT NULL,
//	    action        VARCHAR(20) NOT NULL,
//	    comment_ids   TEXT[] NOT NULL DEFAULT '{}',
//	    success       BOOLEAN NOT NULL,
//	    message       TEXT NOT NULL DEFAULT '',
//	    deleted_count INT NOT NULL DEFAULT 0,
//	    failed_count  INT NOT NULL DEFAULT 0,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Record inserts one moderation action.
func (r *AuditRepo) Record(ctx context.Context, rec model.AuditRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO moderation_actions
			(id, video_id, action, comment_ids, success, message, deleted_count, failed_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.VideoID, rec.Action, rec.CommentIDs,
		rec.Success, rec.Message, rec.DeletedCount, rec.FailedCount, rec.CreatedAt)
	return err
}

// Stats aggregates moderation activity for the dashboard.
func (r *AuditRepo) Stats(ctx context.Context) (*model.ModerationStats, error) {
	stats := &model.ModerationStats{ActionsByVideo: make(map[string]int)}

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE NOT success),
		       COALESCE(SUM(deleted_count), 0)
		FROM moderation_actions`).
		Scan(&stats.TotalActions, &stats.FailedActions, &stats.CommentsDeleted)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT video_id, COUNT(*)
		FROM moderation_actions
		WHERE video_id <> ''
		GROUP BY video_id
		ORDER BY COUNT(*) DESC
		LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var videoID string
		var count int
		if err := rows.Scan(&videoID, &count); err != nil {
			return nil, err
		}
		stats.ActionsByVideo[videoID] = count
	}
	return stats, rows.Err()
}

// List returns the most recent moderation actions, newest first.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]model.AuditRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, video_id, action, comment_ids, success, message,
		       deleted_count, failed_count, created_at
		FROM moderation_actions
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AuditRecord
	for rows.Next() {
		var rec model.AuditRecord
		err := rows.Scan(
			&rec.ID, &rec.VideoID, &rec.Action, &rec.CommentIDs,
			&rec.Success, &rec.Message, &rec.DeletedCount, &rec.FailedCount, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
