package service

import (
	"context"
	"log"
	"sync"

	"github.com/cleantube/cleantube-go/internal/model"
)

// Snapshot bundles one immutable analysis result with everything
// derived from it: the group index and the risk label. Rendering
// components share the same snapshot; replacement is wholesale, never
// in-place, so readers need no locking.
type Snapshot struct {
	Analysis *model.AnalysisResult
	Comments []model.Comment
	Index    *GroupIndex
	Risk     model.RiskLevel
}

// CommentIDs returns the select-all universe for this snapshot.
func (s *Snapshot) CommentIDs() []string {
	ids := make([]string, 0, len(s.Comments))
	for _, c := range s.Comments {
		ids = append(ids, c.ID)
	}
	return ids
}

// AnalysisService owns the fetch-then-replace snapshot lifecycle. At
// most one fetch is in flight per video; a newer result replaces the
// older one and is never merged with it.
type AnalysisService struct {
	api   AnalyzerAPI
	cache *CacheService

	mu       sync.Mutex
	fetching map[string]*sync.Mutex
	current  map[string]*Snapshot
}

func NewAnalysisService(api AnalyzerAPI, cache *CacheService) *AnalysisService {
	return &AnalysisService{
		api:      api,
		cache:    cache,
		fetching: make(map[string]*sync.Mutex),
		current:  make(map[string]*Snapshot),
	}
}

// Get returns the snapshot for a video, fetching it when absent. With
// force set, the cache is bypassed and the fresh result replaces
// whatever was held.
func (s *AnalysisService) Get(ctx context.Context, token, videoID string, force bool) (*Snapshot, error) {
	if !force {
		if snap := s.held(videoID); snap != nil {
			return snap, nil
		}
	}

	// Per-video fetch lock: concurrent callers wait for the one fetch
	// instead of stacking requests on the analyzer.
	lock := s.fetchLock(videoID)
	lock.Lock()
	defer lock.Unlock()

	if !force {
		if snap := s.held(videoID); snap != nil {
			return snap, nil
		}
		if cached, err := s.cache.GetAnalysis(ctx, videoID); err == nil && cached != nil {
			snap := buildSnapshot(cached)
			s.replace(videoID, snap)
			return snap, nil
		} else if err != nil {
			log.Printf("cache: analysis read error for %s: %v", videoID, err)
		}
	}

	va, err := s.api.VideoAnalysis(ctx, token, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetAnalysis(ctx, videoID, va); err != nil {
		log.Printf("cache: analysis write error for %s: %v", videoID, err)
	}

	snap := buildSnapshot(va)
	s.replace(videoID, snap)
	return snap, nil
}

// Peek returns the held snapshot without fetching. Nil when none.
func (s *AnalysisService) Peek(videoID string) *Snapshot {
	return s.held(videoID)
}

// Evidence fetches keyword-detection evidence for a video. Every
// record the detector returns is suspicious by definition; the verdict
// is upstream's and is never re-scored here.
func (s *AnalysisService) Evidence(ctx context.Context, token, videoID string) ([]model.SpamEvidence, int, error) {
	return s.api.SpamDetection(ctx, token, videoID)
}

// Invalidate drops the held snapshot and the cache entry. The next Get
// fetches fresh.
func (s *AnalysisService) Invalidate(ctx context.Context, videoID string) {
	s.mu.Lock()
	delete(s.current, videoID)
	s.mu.Unlock()

	if err := s.cache.InvalidateAnalysis(ctx, videoID); err != nil {
		log.Printf("cache: analysis invalidate error for %s: %v", videoID, err)
	}
}

func buildSnapshot(va *model.VideoAnalysis) *Snapshot {
	analysis := va.Analysis
	return &Snapshot{
		Analysis: &analysis,
		Comments: va.Comments,
		Index:    NewGroupIndex(&analysis),
		Risk:     ClassifyRisk(analysis.SuspiciousCount, analysis.TotalComments),
	}
}

func (s *AnalysisService) held(videoID string) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current[videoID]
}

func (s *AnalysisService) replace(videoID string, snap *Snapshot) {
	s.mu.Lock()
	s.current[videoID] = snap
	s.mu.Unlock()
}

func (s *AnalysisService) fetchLock(videoID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.fetching[videoID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.fetching[videoID] = l
	return l
}
