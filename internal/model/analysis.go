package model

import "time"

// GroupKind distinguishes clusters of byte-identical comments from
// clusters the analyzer judged similar above its threshold.
type GroupKind string

const (
	GroupExact   GroupKind = "exact"
	GroupSimilar GroupKind = "similar"
)

// DuplicateGroup is a cluster of comments sharing identical or similar
// text. A group always has at least 2 members; CommentIDs are disjoint
// across groups of the same kind (enforced at normalization).
type DuplicateGroup struct {
	ID                 string    `json:"groupId"`
	Kind               GroupKind `json:"kind"`
	RepresentativeText string    `json:"representativeText"`
	CommentIDs         []string  `json:"commentIds"`
	Authors            []string  `json:"authors"`
	MemberCount        int       `json:"memberCount"`
}

// AuthorCount returns the number of distinct authors. Malformed input
// with no authors renders as 0, never panics.
func (g *DuplicateGroup) AuthorCount() int {
	return len(g.Authors)
}

// AnalysisResult is the normalized spam analysis for one video batch.
// It is immutable once built; a deletion invalidates it wholesale and
// triggers a fresh fetch, so displayed counts never drift from server
// state.
type AnalysisResult struct {
	VideoID              string           `json:"videoId"`
	TotalComments        int              `json:"totalComments"`
	SuspiciousCount      int              `json:"suspiciousCount"`
	ExactDuplicates      []DuplicateGroup `json:"exactDuplicates"`
	SimilarGroups        []DuplicateGroup `json:"similarGroups"`
	SuspiciousCommentIDs []string         `json:"suspiciousCommentIds"`
	SpamPatternCounts    map[string]int   `json:"spamPatternCounts"`
	Fingerprint          string           `json:"fingerprint"`
	FetchedAt            time.Time        `json:"fetchedAt"`
}

// VideoAnalysis bundles the analysis with the raw comments it covers.
type VideoAnalysis struct {
	Analysis AnalysisResult `json:"analysis"`
	Comments []Comment      `json:"comments"`
}

// CommentIDs returns all comment ids in the batch, the universe for
// select-all.
func (v *VideoAnalysis) CommentIDs() []string {
	ids := make([]string, 0, len(v.Comments))
	for _, c := range v.Comments {
		ids = append(ids, c.ID)
	}
	return ids
}

// RiskLevel is a coarse label derived from the suspicious-to-total
// ratio, for dashboard display only.
type RiskLevel string

const (
	RiskUnknown RiskLevel = "unknown"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// Rank orders risk levels by severity. unknown ranks below low so
// monotonicity checks treat it as the least severe.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}
