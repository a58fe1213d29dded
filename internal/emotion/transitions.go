package emotion

import "github.com/mindloop/therasim/internal/types"

// DefaultTransitionThreshold is the minimum VAD distance that counts as an
// emotional shift.
const DefaultTransitionThreshold = 0.3

// DetectTransitions scans consecutive pairs of a trajectory and reports every
// pair whose VAD distance strictly exceeds the threshold. The transition's
// intensity is that exact distance; pairs at or below the threshold are
// ignored. Sequences shorter than two elements yield nothing.
func DetectTransitions(sequence []types.DimensionalMap, threshold float64) []types.Transition {
	if len(sequence) < 2 {
		return nil
	}
	var transitions []types.Transition
	for i := 1; i < len(sequence); i++ {
		prev := sequence[i-1]
		curr := sequence[i]
		distance := pointDistance(prev.Dimensions, curr.Dimensions)
		if distance <= threshold {
			continue
		}
		transitions = append(transitions, types.Transition{
			From:      prev.Dimensions,
			To:        curr.Dimensions,
			Duration:  curr.Timestamp.Sub(prev.Timestamp),
			Intensity: distance,
			Timestamp: curr.Timestamp,
		})
	}
	return transitions
}
