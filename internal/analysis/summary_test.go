package analysis

import (
	"context"
	"testing"

	"github.com/hitoshi/emolens/internal/model"
)

func TestSummarize_EmptyCollection(t *testing.T) {
	s := newTestService(&mockResultRepo{}, &fixedClassifier{})

	summary, err := s.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 0 {
		t.Errorf("Total = %d, want 0", summary.Total)
	}
	if len(summary.Users) != 0 {
		t.Errorf("Users = %d, want 0", len(summary.Users))
	}
	// 全カテゴリが0件で存在すること
	for _, emotion := range model.Emotions {
		stat, ok := summary.Emotions[emotion]
		if !ok {
			t.Errorf("missing stat for %q", emotion)
			continue
		}
		if stat.Count != 0 || stat.Percentage != 0 {
			t.Errorf("%q stat = %+v, want zero", emotion, stat)
		}
	}
}

func TestSummarize_CountsAndPercentages(t *testing.T) {
	repo := &mockResultRepo{
		prepended: []*model.AnalysisResult{
			{ID: "r4", OwnerID: "1", Emotion: model.EmotionHappy},
			{ID: "r3", OwnerID: "2", Emotion: model.EmotionHappy},
			{ID: "r2", OwnerID: "1", Emotion: model.EmotionSad},
			{ID: "r1", OwnerID: "1", Emotion: model.EmotionHappy},
		},
	}
	s := newTestService(repo, &fixedClassifier{})

	summary, err := s.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 4 {
		t.Errorf("Total = %d, want 4", summary.Total)
	}
	if got := summary.Emotions[model.EmotionHappy]; got.Count != 3 || got.Percentage != 75 {
		t.Errorf("happy stat = %+v, want {3 75}", got)
	}
	if got := summary.Emotions[model.EmotionSad]; got.Count != 1 || got.Percentage != 25 {
		t.Errorf("sad stat = %+v, want {1 25}", got)
	}
	if got := summary.Emotions[model.EmotionNeutral]; got.Count != 0 || got.Percentage != 0 {
		t.Errorf("neutral stat = %+v, want {0 0}", got)
	}
}

func TestSummarize_PercentageRounding(t *testing.T) {
	// 3件中1件 = 33.33% → 33に丸める
	repo := &mockResultRepo{
		prepended: []*model.AnalysisResult{
			{ID: "r3", OwnerID: "1", Emotion: model.EmotionHappy},
			{ID: "r2", OwnerID: "1", Emotion: model.EmotionHappy},
			{ID: "r1", OwnerID: "1", Emotion: model.EmotionSad},
		},
	}
	s := newTestService(repo, &fixedClassifier{})

	summary, err := s.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := summary.Emotions[model.EmotionSad].Percentage; got != 33 {
		t.Errorf("sad percentage = %d, want 33", got)
	}
	if got := summary.Emotions[model.EmotionHappy].Percentage; got != 67 {
		t.Errorf("happy percentage = %d, want 67", got)
	}
}

func TestSummarize_GroupsUsersByFirstAppearance(t *testing.T) {
	repo := &mockResultRepo{
		prepended: []*model.AnalysisResult{
			{ID: "r4", OwnerID: "2", OwnerEmail: "admin@example.com", Emotion: model.EmotionHappy},
			{ID: "r3", OwnerID: "1", OwnerEmail: "user@example.com", Emotion: model.EmotionSad},
			{ID: "r2", OwnerID: "2", OwnerEmail: "admin@example.com", Emotion: model.EmotionSmile},
			{ID: "r1", OwnerID: "1", OwnerEmail: "user@example.com", Emotion: model.EmotionHappy},
		},
	}
	s := newTestService(repo, &fixedClassifier{})

	summary, err := s.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Users) != 2 {
		t.Fatalf("Users = %d, want 2", len(summary.Users))
	}

	// 最初に出現した順（新しい順のリスト先頭から）
	if summary.Users[0].OwnerID != "2" {
		t.Errorf("first group owner = %q, want 2", summary.Users[0].OwnerID)
	}
	if summary.Users[1].OwnerID != "1" {
		t.Errorf("second group owner = %q, want 1", summary.Users[1].OwnerID)
	}

	// 各グループの件数と並び
	if len(summary.Users[0].Results) != 2 || summary.Users[0].Results[0].ID != "r4" {
		t.Errorf("group 2 results = %+v, want [r4 r2]", summary.Users[0].Results)
	}
	if len(summary.Users[1].Results) != 2 || summary.Users[1].Results[0].ID != "r3" {
		t.Errorf("group 1 results = %+v, want [r3 r1]", summary.Users[1].Results)
	}
}
