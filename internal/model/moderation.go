package model

import "time"

// Phase is the moderation session state for one video.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseConfirming Phase = "confirming"
	PhaseDeleting   Phase = "deleting"
	PhaseError      Phase = "error"
)

// SelectionUpdateRequest is the API request body for adding/removing
// comment ids from the current selection.
type SelectionUpdateRequest struct {
	Add    []string `json:"add,omitempty"`
	Remove []string `json:"remove,omitempty"`
}

// GroupToggleRequest is the API request body for toggling a whole
// duplicate group in or out of the selection.
type GroupToggleRequest struct {
	GroupID string `json:"groupId"`
}

// GroupSelectionState is the per-group tri-state checkbox contract:
// exactly one of FullySelected / PartiallySelected / unselected holds.
type GroupSelectionState struct {
	GroupID            string    `json:"groupId"`
	Kind               GroupKind `json:"kind"`
	RepresentativeText string    `json:"representativeText"`
	MemberCount        int       `json:"memberCount"`
	AuthorCount        int       `json:"authorCount"`
	SelectedCount      int       `json:"selectedCount"`
	FullySelected      bool      `json:"fullySelected"`
	PartiallySelected  bool      `json:"partiallySelected"`
}

// GroupMembership points a selected comment at the groups containing
// it, one per kind, for per-row checkbox state.
type GroupMembership struct {
	ExactGroupID   string `json:"exactGroupId,omitempty"`
	SimilarGroupID string `json:"similarGroupId,omitempty"`
}

// SelectionResponse is the API response describing the operator's
// current deletion intent for a video.
type SelectionResponse struct {
	VideoID     string                     `json:"videoId"`
	SelectedIDs []string                   `json:"selectedIds"`
	Count       int                        `json:"count"`
	Phase       Phase                      `json:"phase"`
	Groups      []GroupSelectionState      `json:"groups,omitempty"`
	Memberships map[string]GroupMembership `json:"memberships,omitempty"`
}

// DeleteRequest is the API request body for bulk deletion. Without
// Confirm set, the coordinator answers with the confirmation gate
// instead of dispatching.
type DeleteRequest struct {
	Confirm bool `json:"confirm"`
}

// Confirmation echoes the selection back to the operator before an
// irreversible deletion is dispatched.
type Confirmation struct {
	VideoID              string `json:"videoId"`
	Count                int    `json:"count"`
	ConfirmationRequired bool   `json:"confirmationRequired"`
}

// DeleteOutcome is the reconciled result of one dispatched deletion.
// Success is the authoritative aggregate flag; the per-direction counts
// are informational extras the upstream may or may not report.
type DeleteOutcome struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Requested    int    `json:"requested"`
	SuccessCount int    `json:"successCount,omitempty"`
	FailCount    int    `json:"failCount,omitempty"`
}

// AuditAction identifies what kind of moderation action was dispatched.
type AuditAction string

const (
	ActionBulkDelete   AuditAction = "bulk_delete"
	ActionSpamCleanup  AuditAction = "spam_cleanup"
	ActionSingleDelete AuditAction = "single_delete"
)

// AuditRecord is one persisted moderation action.
type AuditRecord struct {
	ID           string      `json:"id"`
	VideoID      string      `json:"videoId"`
	Action       AuditAction `json:"action"`
	CommentIDs   []string    `json:"commentIds"`
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	DeletedCount int         `json:"deletedCount"`
	FailedCount  int         `json:"failedCount"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ModerationStats is the API response for aggregate moderation numbers.
type ModerationStats struct {
	TotalActions    int            `json:"totalActions"`
	FailedActions   int            `json:"failedActions"`
	CommentsDeleted int            `json:"commentsDeleted"`
	ActionsByVideo  map[string]int `json:"actionsByVideo"`
}
