package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleantube/cleantube-go/internal/model"
)

// maxResponseBytes caps how much of an upstream response we read.
const maxResponseBytes = 8 << 20

// Client talks to the external comment analyzer and to its YouTube
// deletion passthrough. The bearer token is supplied per call by the
// caller (no ambient auth state).
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// VideoAnalysis fetches comments plus spam analysis for a video and
// returns the normalized immutable snapshot.
func (c *Client) VideoAnalysis(ctx context.Context, token, videoID string) (*model.VideoAnalysis, error) {
	env, err := c.do(ctx, http.MethodGet, "/comments/video/"+videoID, token, nil)
	if err != nil {
		return nil, err
	}

	var raw rawVideoPayload
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &raw); err != nil {
			return nil, transportErr(fmt.Errorf("decode analysis payload: %w", err))
		}
	}
	return normalizeVideoAnalysis(videoID, &raw, c.log), nil
}

// SpamDetection fetches keyword-based spam evidence for a video.
func (c *Client) SpamDetection(ctx context.Context, token, videoID string) ([]model.SpamEvidence, int, error) {
	env, err := c.do(ctx, http.MethodGet, "/comments/spam-detection/"+videoID, token, nil)
	if err != nil {
		return nil, 0, err
	}

	var raw rawSpamDetection
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &raw); err != nil {
			return nil, 0, transportErr(fmt.Errorf("decode spam detection payload: %w", err))
		}
	}
	evidence := normalizeEvidence(&raw)
	count := raw.SpamCount
	if count == 0 {
		count = len(evidence)
	}
	return evidence, count, nil
}

// DeleteComments dispatches one batched deletion for the full id list.
// One request regardless of list size; per-id requests would burn the
// upstream YouTube API quota.
func (c *Client) DeleteComments(ctx context.Context, token string, commentIDs []string) (*model.DeleteOutcome, error) {
	env, err := c.do(ctx, http.MethodPost, "/comments/delete-multiple", token,
		deleteMultipleRequest{CommentIDs: commentIDs})
	if err != nil {
		return nil, err
	}
	return outcomeFromEnvelope(env, len(commentIDs)), nil
}

// SpamCleanup asks the upstream to delete all currently-known spam for
// a video server-side.
func (c *Client) SpamCleanup(ctx context.Context, token, videoID string) (*model.DeleteOutcome, error) {
	env, err := c.do(ctx, http.MethodPost, "/comments/spam-cleanup/"+videoID, token, nil)
	if err != nil {
		return nil, err
	}
	return outcomeFromEnvelope(env, 0), nil
}

// DeleteComment deletes a single comment.
func (c *Client) DeleteComment(ctx context.Context, token, commentID string) (*model.DeleteOutcome, error) {
	env, err := c.do(ctx, http.MethodDelete, "/comments/"+commentID, token, nil)
	if err != nil {
		return nil, err
	}
	return outcomeFromEnvelope(env, 1), nil
}

func outcomeFromEnvelope(env *envelope, requested int) *model.DeleteOutcome {
	return &model.DeleteOutcome{
		Success:      env.Success,
		Message:      env.Message,
		Requested:    requested,
		SuccessCount: env.SuccessCount,
		FailCount:    env.FailCount,
	}
}

// do performs one request and decodes the uniform envelope. Transport
// failures wrap ErrTransport; non-2xx statuses and success:false
// envelopes become ServerError carrying the upstream message.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportErr(err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, transportErr(fmt.Errorf("decode envelope: %w", err))
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "analyzer reported failure"
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &env, nil
}
