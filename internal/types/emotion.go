package types

import "time"

// Canonical emotion keys, in enumeration order. Tie-breaks and deterministic
// iteration always follow this order.
const (
	EmotionJoy          = "joy"
	EmotionSadness      = "sadness"
	EmotionAnger        = "anger"
	EmotionFear         = "fear"
	EmotionSurprise     = "surprise"
	EmotionDisgust      = "disgust"
	EmotionTrust        = "trust"
	EmotionAnticipation = "anticipation"

	// EmotionNeutral is a pseudo-key that may only appear while no canonical
	// emotion exceeds the significance threshold.
	EmotionNeutral = "neutral"
)

// CanonicalEmotions lists the 8-emotion basis in canonical order.
var CanonicalEmotions = []string{
	EmotionJoy,
	EmotionSadness,
	EmotionAnger,
	EmotionFear,
	EmotionSurprise,
	EmotionDisgust,
	EmotionTrust,
	EmotionAnticipation,
}

// SignificanceThreshold is the intensity above which an emotion counts as
// present for neutral-suppression purposes.
const SignificanceThreshold = 0.05

// EmotionVector maps emotion keys to intensities in [0,1]. Absence of a key
// means the emotion was never observed, which is distinct from a present
// value of zero.
type EmotionVector map[string]float64

// Clone returns an independent copy of the vector.
func (v EmotionVector) Clone() EmotionVector {
	out := make(EmotionVector, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// NeutralVector returns the canonical starting vector: neutral at full
// intensity, every canonical emotion present at zero.
func NeutralVector() EmotionVector {
	v := make(EmotionVector, len(CanonicalEmotions)+1)
	v[EmotionNeutral] = 1.0
	for _, key := range CanonicalEmotions {
		v[key] = 0
	}
	return v
}

// EmotionProfile is one synthesized snapshot of a patient's emotional state.
type EmotionProfile struct {
	ID         string        `json:"id"`
	Emotions   EmotionVector `json:"emotions"`
	Timestamp  time.Time     `json:"timestamp"`
	Confidence float64       `json:"confidence"`
}

// DetectedEmotion is the shape an upstream detector produces. The engine
// depends only on this contract, not on where the scores came from.
type DetectedEmotion struct {
	ID         string        `json:"id"`
	SessionID  string        `json:"session_id"`
	Emotions   EmotionVector `json:"emotions"`
	Timestamp  time.Time     `json:"timestamp"`
	Confidence float64       `json:"confidence"`
}

// Dominant returns the strongest detected emotion and its score, preferring
// earlier canonical keys on ties. It returns the first canonical key with a
// zero score when nothing was detected.
func (d DetectedEmotion) Dominant() (string, float64) {
	best := CanonicalEmotions[0]
	bestScore := -1.0
	for _, key := range CanonicalEmotions {
		score, ok := d.Emotions[key]
		if !ok {
			continue
		}
		if score > bestScore {
			best = key
			bestScore = score
		}
	}
	if bestScore < 0 {
		return CanonicalEmotions[0], 0
	}
	return best, bestScore
}
