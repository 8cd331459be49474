package analyzer

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleantube/cleantube-go/internal/model"
	"github.com/cleantube/cleantube-go/pkg/hash"
)

// normalizeVideoAnalysis converts the wire payload into the immutable
// AnalysisResult the rest of the service operates on. Defensive rules:
// nil collections become empty, groups below 2 unique members are
// dropped, ids already claimed by an earlier group of the same kind are
// removed from later ones so commentIds stay disjoint per kind, and
// suspiciousCommentIds is rebuilt as the de-duplicated union of group
// members and individually flagged ids (the authoritative count).
func normalizeVideoAnalysis(videoID string, raw *rawVideoPayload, log zerolog.Logger) *model.VideoAnalysis {
	comments := make([]model.Comment, 0, len(raw.Comments))
	topLevel := make(map[string]bool, len(raw.Comments))
	for _, rc := range raw.Comments {
		id := rc.identifier()
		if id == "" {
			continue
		}
		c := model.Comment{
			ID:          id,
			Author:      rc.Author,
			Text:        rc.Text,
			LikeCount:   rc.LikeCount,
			ReplyCount:  rc.ReplyCount,
			PublishedAt: parseTimestamp(rc.PublishedAt),
			IsReply:     rc.IsReply,
			ParentID:    rc.ParentID,
		}
		if !c.IsReply {
			topLevel[c.ID] = true
		}
		comments = append(comments, c)
	}

	// Orphan replies are tolerated but flagged, not fatal.
	orphans := 0
	for _, c := range comments {
		if c.IsReply && c.ParentID != "" && !topLevel[c.ParentID] {
			orphans++
		}
	}
	if orphans > 0 {
		log.Warn().Str("video_id", videoID).Int("orphan_replies", orphans).
			Msg("replies reference missing parent comments")
	}

	suspicious := make(map[string]bool)
	exact := normalizeGroups(model.GroupExact, raw.Analysis.DuplicateGroups.ExactDuplicates.Groups, suspicious)
	similar := normalizeGroups(model.GroupSimilar, raw.Analysis.DuplicateGroups.SimilarGroups.Groups, suspicious)
	for _, id := range raw.Analysis.SuspiciousCommentIDs {
		if id != "" {
			suspicious[id] = true
		}
	}

	suspiciousIDs := make([]string, 0, len(suspicious))
	for id := range suspicious {
		suspiciousIDs = append(suspiciousIDs, id)
	}
	sort.Strings(suspiciousIDs)

	// An absent or understated total would push the suspicious ratio
	// above 1; the count can never be below what we can see.
	total := raw.Analysis.TotalComments
	if total < len(comments) {
		total = len(comments)
	}
	if total < len(suspiciousIDs) {
		total = len(suspiciousIDs)
	}

	analysis := model.AnalysisResult{
		VideoID:              videoID,
		TotalComments:        total,
		SuspiciousCount:      len(suspiciousIDs),
		ExactDuplicates:      exact,
		SimilarGroups:        similar,
		SuspiciousCommentIDs: suspiciousIDs,
		SpamPatternCounts:    numericPatterns(raw.Analysis.SpamPatterns),
		FetchedAt:            time.Now().UTC(),
	}
	analysis.Fingerprint = hash.Fingerprint(
		videoID,
		strconv.Itoa(total),
		strings.Join(suspiciousIDs, ","),
	)

	return &model.VideoAnalysis{Analysis: analysis, Comments: comments}
}

// normalizeGroups drops malformed and sub-minimum groups and keeps
// member ids disjoint within the kind. Every surviving member id is
// added to the suspicious set.
func normalizeGroups(kind model.GroupKind, groups []rawGroup, suspicious map[string]bool) []model.DuplicateGroup {
	out := make([]model.DuplicateGroup, 0, len(groups))
	claimed := make(map[string]bool)

	for _, rg := range groups {
		seen := make(map[string]bool, len(rg.CommentIDs))
		ids := make([]string, 0, len(rg.CommentIDs))
		for _, id := range rg.CommentIDs {
			if id == "" || seen[id] || claimed[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		// A group of size 1 is not a group.
		if len(ids) < 2 {
			continue
		}
		for _, id := range ids {
			claimed[id] = true
			suspicious[id] = true
		}

		authors := rg.Authors
		if authors == nil {
			authors = []string{}
		}

		out = append(out, model.DuplicateGroup{
			ID:                 hash.GroupID(string(kind), ids),
			Kind:               kind,
			RepresentativeText: rg.representative(),
			CommentIDs:         ids,
			Authors:            authors,
			MemberCount:        len(ids),
		})
	}
	return out
}

// numericPatterns keeps only the integer-valued entries of the mixed
// spam_patterns map (the upstream also stuffs detail lists in there).
func numericPatterns(patterns map[string]json.RawMessage) map[string]int {
	counts := make(map[string]int, len(patterns))
	for key, raw := range patterns {
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			counts[key] = n
		}
	}
	return counts
}

func normalizeEvidence(raw *rawSpamDetection) []model.SpamEvidence {
	evidence := make([]model.SpamEvidence, 0, len(raw.SpamComments))
	for _, sc := range raw.SpamComments {
		if sc.CommentID == "" {
			continue
		}
		indicators := make([]model.SpamIndicator, 0, len(sc.SpamIndicators))
		for _, tag := range sc.SpamIndicators {
			if ind := model.SpamIndicator(tag); model.KnownIndicators[ind] {
				indicators = append(indicators, ind)
			}
		}
		ev := model.NewSpamEvidence(model.Comment{
			ID:          sc.CommentID,
			Author:      sc.Author,
			Text:        sc.Text,
			LikeCount:   sc.LikeCount,
			PublishedAt: parseTimestamp(sc.PublishedAt),
			IsReply:     sc.IsReply,
			ParentID:    sc.ParentID,
		}, indicators, nil)
		ev.SpamScore = sc.SpamScore
		if sc.DetectedKeywords != nil {
			ev.DetectedKeywords = sc.DetectedKeywords
		}
		// Keyword-detected comments are suspicious by definition.
		ev.IsSuspicious = true
		evidence = append(evidence, ev)
	}
	return evidence
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
