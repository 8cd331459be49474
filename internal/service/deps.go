package service

import (
	"context"

	"github.com/cleantube/cleantube-go/internal/model"
)

// AnalyzerAPI is the slice of the external analyzer the services need.
// Satisfied by *analyzer.Client; faked in tests.
type AnalyzerAPI interface {
	VideoAnalysis(ctx context.Context, token, videoID string) (*model.VideoAnalysis, error)
	SpamDetection(ctx context.Context, token, videoID string) ([]model.SpamEvidence, int, error)
	DeleteComments(ctx context.Context, token string, commentIDs []string) (*model.DeleteOutcome, error)
	SpamCleanup(ctx context.Context, token, videoID string) (*model.DeleteOutcome, error)
	DeleteComment(ctx context.Context, token, commentID string) (*model.DeleteOutcome, error)
}

// AuditStore persists dispatched moderation actions.
type AuditStore interface {
	Record(ctx context.Context, rec model.AuditRecord) error
	Stats(ctx context.Context) (*model.ModerationStats, error)
	List(ctx context.Context, limit int) ([]model.AuditRecord, error)
}

// Notifier receives operator-facing outcome notifications. The
// coordinator keeps reconciling even when the requesting client is
// gone; the notifier is how the outcome still reaches somewhere.
type Notifier interface {
	Notify(videoID string, success bool, message string)
}
