package emotion

import (
	"math"
	"time"

	"github.com/mindloop/therasim/internal/types"
)

// Project maps an emotion vector into valence/arousal/dominance space.
// Missing keys count as zero. The function is pure: confidence passes
// through unchanged and no state is read or written.
func Project(vector types.EmotionVector, confidence float64, timestamp time.Time) types.DimensionalMap {
	joy := vector[types.EmotionJoy]
	sadness := vector[types.EmotionSadness]
	anger := vector[types.EmotionAnger]
	fear := vector[types.EmotionFear]
	surprise := vector[types.EmotionSurprise]
	disgust := vector[types.EmotionDisgust]
	trust := vector[types.EmotionTrust]
	anticipation := vector[types.EmotionAnticipation]

	positive := joy + trust + 0.5*surprise
	negative := sadness + anger + fear + disgust
	valence := math.Tanh((positive - negative) / 2)

	highArousal := anger + fear + surprise + 0.7*joy
	lowArousal := sadness + trust + 0.5*disgust
	arousal := clamp01((highArousal - 0.3*lowArousal) / 2)

	dominant := anger + trust + anticipation
	submissive := fear + sadness + 0.5*surprise
	dominance := math.Tanh((dominant - submissive) / 2)

	intensity := clamp01((joy + sadness + anger + fear + surprise + disgust + trust + anticipation) / 4)

	return types.DimensionalMap{
		Timestamp: timestamp,
		Dimensions: types.DimensionalPoint{
			Valence:   valence,
			Arousal:   arousal,
			Dominance: dominance,
		},
		PrimaryEmotion: PrimaryEmotion(vector),
		Intensity:      intensity,
		Confidence:     confidence,
	}
}

// PrimaryEmotion returns the strongest canonical emotion in the vector.
// Ties resolve to the earlier canonical key; a vector with no canonical keys
// falls back to the first one rather than failing.
func PrimaryEmotion(vector types.EmotionVector) string {
	best := types.CanonicalEmotions[0]
	bestValue := 0.0
	found := false
	for _, key := range types.CanonicalEmotions {
		value, ok := vector[key]
		if !ok {
			continue
		}
		if !found || value > bestValue {
			best = key
			bestValue = value
			found = true
		}
	}
	return best
}
