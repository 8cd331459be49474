package middleware

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits. Comment ids follow the YouTube Data API shape: replies
// carry a dotted parent.child id, so '.' is allowed there.
const (
	MaxVideoIDLen   = 16
	MaxCommentIDLen = 64
	MaxBatchSize    = 100
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// commentIDRe additionally allows '.' for reply ids.
	commentIDRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is well-formed.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateCommentID checks that a comment ID is well-formed.
func ValidateCommentID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "commentId is required"
	}
	if len(id) > MaxCommentIDLen {
		return "", "commentId must be at most 64 characters"
	}
	if !commentIDRe.MatchString(id) {
		return "", "commentId contains invalid characters"
	}
	return id, ""
}

// ValidateCommentIDs validates a batch of comment ids. Batches are
// capped so one request cannot fan out into an unbounded upstream
// deletion.
func ValidateCommentIDs(ids []string) ([]string, string) {
	if len(ids) > MaxBatchSize {
		return nil, fmt.Sprintf("at most %d comment ids per request", MaxBatchSize)
	}
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, errMsg := ValidateCommentID(raw)
		if errMsg != "" {
			return nil, errMsg
		}
		out = append(out, id)
	}
	return out, ""
}
