package service

import (
	"context"
	"testing"

	"github.com/cleantube/cleantube-go/internal/model"
)

func spammyAnalysis(videoID string) *model.VideoAnalysis {
	return &model.VideoAnalysis{
		Analysis: model.AnalysisResult{
			VideoID:              videoID,
			TotalComments:        10,
			SuspiciousCount:      4,
			SuspiciousCommentIDs: []string{"c1", "c2", "c3", "c4"},
			ExactDuplicates: []model.DuplicateGroup{
				{ID: "g1", Kind: model.GroupExact, CommentIDs: []string{"c1", "c2"}, MemberCount: 2},
			},
		},
		Comments: []model.Comment{
			{ID: "c1"}, {ID: "c2"}, {ID: "c3"}, {ID: "c4"}, {ID: "c5"},
		},
	}
}

func TestAnalysisService_GetBuildsSnapshot(t *testing.T) {
	api := &fakeAnalyzer{analysis: spammyAnalysis("v1")}
	svc := NewAnalysisService(api, NewCacheService(""))

	snap, err := svc.Get(context.Background(), "tok", "v1", false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// 4/10 suspicious is high risk
	if snap.Risk != model.RiskHigh {
		t.Errorf("risk = %q, want %q", snap.Risk, model.RiskHigh)
	}
	if _, ok := snap.Index.Group("g1"); !ok {
		t.Error("group index missing g1")
	}
	if len(snap.CommentIDs()) != 5 {
		t.Errorf("select-all universe = %d ids, want 5", len(snap.CommentIDs()))
	}
}

func TestAnalysisService_PeekWithoutFetch(t *testing.T) {
	api := &fakeAnalyzer{analysis: spammyAnalysis("v1")}
	svc := NewAnalysisService(api, NewCacheService(""))

	if snap := svc.Peek("v1"); snap != nil {
		t.Error("Peek before any fetch should return nil")
	}

	if _, err := svc.Get(context.Background(), "tok", "v1", false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap := svc.Peek("v1"); snap == nil {
		t.Error("Peek after fetch should return the held snapshot")
	}
}

func TestAnalysisService_InvalidateDropsSnapshot(t *testing.T) {
	api := &fakeAnalyzer{analysis: spammyAnalysis("v1")}
	svc := NewAnalysisService(api, NewCacheService(""))

	if _, err := svc.Get(context.Background(), "tok", "v1", false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	svc.Invalidate(context.Background(), "v1")

	if snap := svc.Peek("v1"); snap != nil {
		t.Error("snapshot survived invalidation")
	}
}

func TestAnalysisService_ReplaceIsWholesale(t *testing.T) {
	api := &fakeAnalyzer{analysis: spammyAnalysis("v1")}
	svc := NewAnalysisService(api, NewCacheService(""))

	first, err := svc.Get(context.Background(), "tok", "v1", false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// A fresh analyzer result with nothing suspicious replaces the old
	// snapshot entirely, never merges into it.
	api.analysis = &model.VideoAnalysis{
		Analysis: model.AnalysisResult{VideoID: "v1", TotalComments: 3},
		Comments: []model.Comment{{ID: "c9"}},
	}
	second, err := svc.Get(context.Background(), "tok", "v1", true)
	if err != nil {
		t.Fatalf("forced Get: %v", err)
	}

	if second == first {
		t.Fatal("forced fetch returned the stale snapshot")
	}
	if len(second.Analysis.SuspiciousCommentIDs) != 0 {
		t.Errorf("stale suspicious ids leaked into the new snapshot: %v",
			second.Analysis.SuspiciousCommentIDs)
	}
	if got := svc.Peek("v1"); got != second {
		t.Error("held snapshot was not replaced")
	}
}
