package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// RefreshWorker batches post-deletion re-fetches. If several deletions
// hit the same video inside one window, the analysis is fetched once.
type RefreshWorker struct {
	analysis *AnalysisService
	window   time.Duration

	mu      sync.Mutex
	pending map[string]string // video id -> bearer token of the triggering request
}

func NewRefreshWorker(analysis *AnalysisService) *RefreshWorker {
	return &RefreshWorker{
		analysis: analysis,
		window:   5 * time.Second,
		pending:  make(map[string]string),
	}
}

// Enqueue schedules a forced re-fetch for a video. The latest token
// wins; tokens are short-lived so the most recent one is the most
// likely to still be valid at flush time.
func (w *RefreshWorker) Enqueue(videoID, token string) {
	w.mu.Lock()
	w.pending[videoID] = token
	w.mu.Unlock()
}

// Start runs the flush loop until the context is cancelled.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Printf("refresh-worker: starting (batch window=%s)", w.window)

	ticker := time.NewTicker(w.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("refresh-worker: stopping (context cancelled)")
			return
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *RefreshWorker) flush(ctx context.Context) {
	w.mu.Lock()
	batch := w.pending
	w.pending = make(map[string]string)
	w.mu.Unlock()

	for videoID, token := range batch {
		if _, err := w.analysis.Get(ctx, token, videoID, true); err != nil {
			// Token may have expired since the deletion; the next
			// operator request fetches fresh anyway.
			log.Printf("refresh-worker: re-fetch failed for %s: %v", videoID, err)
		}
	}
}
