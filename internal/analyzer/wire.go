package analyzer

import "encoding/json"

// Wire shapes of the upstream analyzer. Every collection field is
// tolerated as absent or null; normalization defaults them so one
// malformed group never blocks the rest of the result.

// envelope is the uniform response wrapper. The bulk-delete endpoint
// reports success/fail counts at the top level, outside data.
type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	SuccessCount int             `json:"success_count"`
	FailCount    int             `json:"fail_count"`
}

type rawComment struct {
	ID          string `json:"id"`
	CommentID   string `json:"comment_id"`
	Author      string `json:"author"`
	Text        string `json:"text"`
	LikeCount   int    `json:"like_count"`
	ReplyCount  int    `json:"reply_count"`
	PublishedAt string `json:"published_at"`
	IsReply     bool   `json:"is_reply"`
	ParentID    string `json:"parent_id"`
}

// identifier tolerates both id spellings the upstream uses.
func (c *rawComment) identifier() string {
	if c.ID != "" {
		return c.ID
	}
	return c.CommentID
}

type rawGroup struct {
	TextSample         string   `json:"text_sample"`
	RepresentativeText string   `json:"representative_text"`
	DuplicateCount     int      `json:"duplicate_count"`
	SimilarCount       int      `json:"similar_count"`
	CommentIDs         []string `json:"comment_ids"`
	Authors            []string `json:"authors"`
}

func (g *rawGroup) representative() string {
	if g.RepresentativeText != "" {
		return g.RepresentativeText
	}
	return g.TextSample
}

type rawGroupSet struct {
	Count  int        `json:"count"`
	Groups []rawGroup `json:"groups"`
}

type rawDuplicateGroups struct {
	ExactDuplicates rawGroupSet `json:"exact_duplicates"`
	SimilarGroups   rawGroupSet `json:"similar_groups"`
}

type rawAnalysis struct {
	TotalComments        int                        `json:"total_comments"`
	SuspiciousCount      int                        `json:"suspicious_count"`
	DuplicateGroups      rawDuplicateGroups         `json:"duplicate_groups"`
	SpamPatterns         map[string]json.RawMessage `json:"spam_patterns"`
	SuspiciousCommentIDs []string                   `json:"suspicious_comment_ids"`
}

type rawVideoPayload struct {
	Comments []rawComment `json:"comments"`
	Analysis rawAnalysis  `json:"analysis"`
}

type rawSpamComment struct {
	CommentID        string   `json:"comment_id"`
	Author           string   `json:"author"`
	Text             string   `json:"text"`
	SpamScore        int      `json:"spam_score"`
	DetectedKeywords []string `json:"detected_keywords"`
	SpamIndicators   []string `json:"spam_indicators"`
	LikeCount        int      `json:"like_count"`
	PublishedAt      string   `json:"published_at"`
	IsReply          bool     `json:"is_reply"`
	ParentID         string   `json:"parent_id"`
}

type rawSpamDetection struct {
	SpamCount    int              `json:"spam_count"`
	SpamComments []rawSpamComment `json:"spam_comments"`
}

type deleteMultipleRequest struct {
	CommentIDs []string `json:"comment_ids"`
}
