package emotion

import (
	"math"
	"testing"
	"time"

	"github.com/mindloop/therasim/internal/types"
)

func TestProjectClosedForms(t *testing.T) {
	vector := types.EmotionVector{
		types.EmotionJoy:          0.8,
		types.EmotionSadness:      0.1,
		types.EmotionAnger:        0.2,
		types.EmotionFear:         0,
		types.EmotionSurprise:     0.3,
		types.EmotionDisgust:      0,
		types.EmotionTrust:        0.5,
		types.EmotionAnticipation: 0.4,
	}
	now := time.Now()

	result := Project(vector, 0.9, now)

	wantValence := math.Tanh(((0.8 + 0.5 + 0.5*0.3) - (0.1 + 0.2 + 0 + 0)) / 2)
	wantArousal := clamp01(((0.2 + 0 + 0.3 + 0.7*0.8) - 0.3*(0.1+0.5+0.5*0)) / 2)
	wantDominance := math.Tanh(((0.2 + 0.5 + 0.4) - (0 + 0.1 + 0.5*0.3)) / 2)
	wantIntensity := clamp01((0.8 + 0.1 + 0.2 + 0 + 0.3 + 0 + 0.5 + 0.4) / 4)

	if math.Abs(result.Dimensions.Valence-wantValence) > 1e-9 {
		t.Errorf("valence: expected %f, got %f", wantValence, result.Dimensions.Valence)
	}
	if math.Abs(result.Dimensions.Arousal-wantArousal) > 1e-9 {
		t.Errorf("arousal: expected %f, got %f", wantArousal, result.Dimensions.Arousal)
	}
	if math.Abs(result.Dimensions.Dominance-wantDominance) > 1e-9 {
		t.Errorf("dominance: expected %f, got %f", wantDominance, result.Dimensions.Dominance)
	}
	if math.Abs(result.Intensity-wantIntensity) > 1e-9 {
		t.Errorf("intensity: expected %f, got %f", wantIntensity, result.Intensity)
	}
	if result.PrimaryEmotion != types.EmotionJoy {
		t.Errorf("expected primary joy, got %s", result.PrimaryEmotion)
	}
	if result.Confidence != 0.9 {
		t.Errorf("confidence must pass through unchanged, got %f", result.Confidence)
	}
	if !result.Timestamp.Equal(now) {
		t.Errorf("timestamp must pass through unchanged")
	}
}

func TestProjectMissingKeysCountAsZero(t *testing.T) {
	full := Project(types.EmotionVector{
		types.EmotionJoy:   0.6,
		types.EmotionAnger: 0,
	}, 1, time.Time{})
	sparse := Project(types.EmotionVector{types.EmotionJoy: 0.6}, 1, time.Time{})

	if full.Dimensions != sparse.Dimensions {
		t.Fatalf("present-at-zero and absent keys must project identically: %#v vs %#v",
			full.Dimensions, sparse.Dimensions)
	}
}

func TestPrimaryEmotionTieBreak(t *testing.T) {
	vector := types.EmotionVector{
		types.EmotionTrust:   0.5,
		types.EmotionSadness: 0.5,
	}
	// Sadness comes first in canonical order.
	if got := PrimaryEmotion(vector); got != types.EmotionSadness {
		t.Fatalf("expected sadness on a tie, got %s", got)
	}
}

func TestPrimaryEmotionEmptyVector(t *testing.T) {
	if got := PrimaryEmotion(types.EmotionVector{}); got != types.EmotionJoy {
		t.Fatalf("expected joy fallback, got %s", got)
	}
	if got := PrimaryEmotion(nil); got != types.EmotionJoy {
		t.Fatalf("expected joy fallback for nil, got %s", got)
	}
	// A vector carrying only the neutral pseudo-key behaves like an empty one.
	if got := PrimaryEmotion(types.EmotionVector{types.EmotionNeutral: 1}); got != types.EmotionJoy {
		t.Fatalf("expected joy fallback for neutral-only, got %s", got)
	}
}
