package model

import "testing"

func TestEmotion_IsValid(t *testing.T) {
	tests := []struct {
		emotion Emotion
		want    bool
	}{
		{EmotionHappy, true},
		{EmotionSad, true},
		{EmotionNeutral, true},
		{EmotionSmile, true},
		{Emotion("angry"), false},
		{Emotion(""), false},
		{Emotion("Happy"), false}, // 大文字小文字を区別する
	}

	for _, tt := range tests {
		if got := tt.emotion.IsValid(); got != tt.want {
			t.Errorf("Emotion(%q).IsValid() = %v, want %v", tt.emotion, got, tt.want)
		}
	}
}

func TestEmotions_ContainsFourCategories(t *testing.T) {
	if len(Emotions) != 4 {
		t.Errorf("len(Emotions) = %d, want 4", len(Emotions))
	}
}
