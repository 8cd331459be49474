package model

import "time"

// SpamIndicator is a tag attached to a comment explaining why the
// analyzer considers it suspicious.
type SpamIndicator string

const (
	IndicatorVeryShort       SpamIndicator = "very_short"
	IndicatorMultipleReplies SpamIndicator = "multiple_replies"
	IndicatorURLSpam         SpamIndicator = "url_spam"
	IndicatorSimilarToMain   SpamIndicator = "similar_to_main_comment"
	IndicatorEmojiSpam       SpamIndicator = "emoji_spam"
	IndicatorLinkSpam        SpamIndicator = "link_spam"
)

// KnownIndicators are the indicator kinds the analyzer emits. Unknown
// kinds are kept as-is in pattern counts but never invented client-side.
var KnownIndicators = map[SpamIndicator]bool{
	IndicatorVeryShort:       true,
	IndicatorMultipleReplies: true,
	IndicatorURLSpam:         true,
	IndicatorSimilarToMain:   true,
	IndicatorEmojiSpam:       true,
	IndicatorLinkSpam:        true,
}

// Comment is one platform comment as returned by the analyzer.
type Comment struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	LikeCount   int       `json:"likeCount"`
	ReplyCount  int       `json:"replyCount"`
	PublishedAt time.Time `json:"publishedAt"`
	IsReply     bool      `json:"isReply"`
	ParentID    string    `json:"parentId,omitempty"`
}

// SpamEvidence is one comment plus the reasons it was flagged. The
// analyzer's verdict is authoritative; IsSuspicious is derived at
// normalization time, never re-scored here.
type SpamEvidence struct {
	Comment
	Indicators       []SpamIndicator `json:"indicators"`
	SpamScore        int             `json:"spamScore,omitempty"`
	DetectedKeywords []string        `json:"detectedKeywords,omitempty"`
	IsSuspicious     bool            `json:"isSuspicious"`
}

// NewSpamEvidence builds an evidence record from a raw comment and its
// indicator tags. A record is suspicious if it carries any indicator or
// appears in the analysis suspicious-id set.
func NewSpamEvidence(c Comment, indicators []SpamIndicator, suspiciousIDs map[string]bool) SpamEvidence {
	if indicators == nil {
		indicators = []SpamIndicator{}
	}
	return SpamEvidence{
		Comment:      c,
		Indicators:   indicators,
		IsSuspicious: len(indicators) > 0 || suspiciousIDs[c.ID],
	}
}
