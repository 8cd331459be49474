package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cleantube/cleantube-go/internal/model"
)

var (
	// ErrEmptySelection rejects deletion with nothing selected before
	// any network call is made.
	ErrEmptySelection = errors.New("no comments selected")

	// ErrDeleteInFlight rejects a second deletion for the same video
	// while one is pending. Rejected, not queued.
	ErrDeleteInFlight = errors.New("a deletion for this video is already in progress")
)

// ModerationService turns a selection into exactly one dispatched
// deletion and reconciles the aftermath. Deletion is irreversible and
// operates on a third party's data, so the confirmation gate and the
// single-request batching are contract, not UX sugar.
type ModerationService struct {
	api        AnalyzerAPI
	selections *SelectionManager
	analysis   *AnalysisService
	audit      AuditStore
	refresh    *RefreshWorker
	notifier   Notifier
	log        zerolog.Logger

	mu       sync.Mutex
	inflight map[string]bool
	phases   map[string]model.Phase
}

func NewModerationService(
	api AnalyzerAPI,
	selections *SelectionManager,
	analysis *AnalysisService,
	audit AuditStore,
	refresh *RefreshWorker,
	notifier Notifier,
	log zerolog.Logger,
) *ModerationService {
	return &ModerationService{
		api:        api,
		selections: selections,
		analysis:   analysis,
		audit:      audit,
		refresh:    refresh,
		notifier:   notifier,
		log:        log,
		inflight:   make(map[string]bool),
		phases:     make(map[string]model.Phase),
	}
}

// Phase reports the moderation session state for a video.
func (s *ModerationService) Phase(videoID string) model.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.phases[videoID]; ok {
		return p
	}
	return model.PhaseIdle
}

// BeginLoading marks an analysis fetch in progress for the video. The
// returned func restores idle; a session already past idle (confirming,
// deleting) is left alone so a background fetch never masks the
// deletion state.
func (s *ModerationService) BeginLoading(videoID string) func() {
	s.mu.Lock()
	if _, busy := s.phases[videoID]; busy {
		s.mu.Unlock()
		return func() {}
	}
	s.phases[videoID] = model.PhaseLoading
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if s.phases[videoID] == model.PhaseLoading {
			delete(s.phases, videoID)
		}
		s.mu.Unlock()
	}
}

// RequestDelete is the confirmation gate: it refuses an empty
// selection and otherwise echoes the selection count back for the
// operator's explicit yes.
func (s *ModerationService) RequestDelete(videoID string) (*model.Confirmation, error) {
	sel := s.selections.Get(videoID)
	if sel.Len() == 0 {
		return nil, ErrEmptySelection
	}

	s.setPhase(videoID, model.PhaseConfirming)
	return &model.Confirmation{
		VideoID:              videoID,
		Count:                sel.Len(),
		ConfirmationRequired: true,
	}, nil
}

// ConfirmDelete dispatches one batched deletion for the confirmed
// selection. On success the selection is cleared, the snapshot
// invalidated and a re-fetch queued. On any failure the selection is
// preserved so the operator does not reselect; no automatic retry.
func (s *ModerationService) ConfirmDelete(ctx context.Context, token, videoID string) (*model.DeleteOutcome, error) {
	sel := s.selections.Get(videoID)
	if sel.Len() == 0 {
		return nil, ErrEmptySelection
	}

	if !s.acquire(videoID) {
		return nil, ErrDeleteInFlight
	}
	defer s.release(videoID)

	s.setPhase(videoID, model.PhaseDeleting)
	ids := sel.IDs()

	// The requester may navigate away mid-flight; the deletion has
	// already been sent, so reconciliation must run to completion
	// regardless of the inbound request's lifetime.
	dctx := context.WithoutCancel(ctx)

	outcome, err := s.api.DeleteComments(dctx, token, ids)
	if err != nil {
		s.setPhase(videoID, model.PhaseError)
		s.recordAudit(dctx, videoID, model.ActionBulkDelete, ids, false, err.Error(), 0, len(ids))
		s.notifier.Notify(videoID, false, err.Error())
		return nil, err
	}

	s.selections.Clear(videoID)
	s.analysis.Invalidate(dctx, videoID)
	s.refresh.Enqueue(videoID, token)
	s.setPhase(videoID, model.PhaseIdle)

	s.recordAudit(dctx, videoID, model.ActionBulkDelete, ids, true, outcome.Message, outcome.SuccessCount, outcome.FailCount)
	s.notifier.Notify(videoID, true, outcome.Message)

	s.log.Info().
		Str("video_id", videoID).
		Int("requested", len(ids)).
		Int("deleted", outcome.SuccessCount).
		Int("failed", outcome.FailCount).
		Msg("bulk delete reconciled")

	return outcome, nil
}

// Cleanup asks the upstream to delete all currently-known spam for a
// video server-side, then invalidates and re-fetches like a bulk
// delete.
func (s *ModerationService) Cleanup(ctx context.Context, token, videoID string) (*model.DeleteOutcome, error) {
	if !s.acquire(videoID) {
		return nil, ErrDeleteInFlight
	}
	defer s.release(videoID)

	s.setPhase(videoID, model.PhaseDeleting)
	dctx := context.WithoutCancel(ctx)

	outcome, err := s.api.SpamCleanup(dctx, token, videoID)
	if err != nil {
		s.setPhase(videoID, model.PhaseError)
		s.recordAudit(dctx, videoID, model.ActionSpamCleanup, nil, false, err.Error(), 0, 0)
		s.notifier.Notify(videoID, false, err.Error())
		return nil, err
	}

	s.selections.Clear(videoID)
	s.analysis.Invalidate(dctx, videoID)
	s.refresh.Enqueue(videoID, token)
	s.setPhase(videoID, model.PhaseIdle)

	s.recordAudit(dctx, videoID, model.ActionSpamCleanup, nil, true, outcome.Message, outcome.SuccessCount, outcome.FailCount)
	s.notifier.Notify(videoID, true, outcome.Message)
	return outcome, nil
}

// DeleteOne deletes a single comment. The id is also dropped from the
// video's selection when present so the intent set never references a
// deleted comment.
func (s *ModerationService) DeleteOne(ctx context.Context, token, videoID, commentID string) (*model.DeleteOutcome, error) {
	dctx := context.WithoutCancel(ctx)

	outcome, err := s.api.DeleteComment(dctx, token, commentID)
	if err != nil {
		s.recordAudit(dctx, videoID, model.ActionSingleDelete, []string{commentID}, false, err.Error(), 0, 1)
		return nil, err
	}

	if videoID != "" {
		s.selections.Remove(videoID, []string{commentID})
		s.analysis.Invalidate(dctx, videoID)
		s.refresh.Enqueue(videoID, token)
	}

	s.recordAudit(dctx, videoID, model.ActionSingleDelete, []string{commentID}, true, outcome.Message, 1, 0)
	return outcome, nil
}

func (s *ModerationService) recordAudit(ctx context.Context, videoID string, action model.AuditAction, ids []string, success bool, message string, deleted, failed int) {
	if s.audit == nil {
		return
	}
	if ids == nil {
		ids = []string{}
	}
	rec := model.AuditRecord{
		ID:           uuid.NewString(),
		VideoID:      videoID,
		Action:       action,
		CommentIDs:   ids,
		Success:      success,
		Message:      message,
		DeletedCount: deleted,
		FailedCount:  failed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("video_id", videoID).Msg("audit write failed")
	}
}

func (s *ModerationService) acquire(videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[videoID] {
		return false
	}
	s.inflight[videoID] = true
	return true
}

func (s *ModerationService) release(videoID string) {
	s.mu.Lock()
	delete(s.inflight, videoID)
	s.mu.Unlock()
}

func (s *ModerationService) setPhase(videoID string, p model.Phase) {
	s.mu.Lock()
	if p == model.PhaseIdle {
		delete(s.phases, videoID)
	} else {
		s.phases[videoID] = p
	}
	s.mu.Unlock()
}

// LogNotifier is the default Notifier: outcomes land in the log even
// when no client is listening anymore.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n *LogNotifier) Notify(videoID string, success bool, message string) {
	evt := n.Log.Info()
	if !success {
		evt = n.Log.Warn()
	}
	evt.Str("video_id", videoID).Bool("success", success).Str("message", message).Msg("moderation outcome")
}
