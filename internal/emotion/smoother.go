package emotion

import "github.com/mindloop/therasim/internal/types"

// DefaultSmoothingAlpha weights the previously smoothed point in the EMA.
const DefaultSmoothingAlpha = 0.3

// Smooth applies a recursive exponential moving average over a trajectory:
// each smoothed point blends the previously smoothed point (weight alpha)
// with the raw point at the same index. Sequences shorter than two elements
// come back unchanged; non-dimensional fields are copied from the raw input.
func Smooth(sequence []types.DimensionalMap, alpha float64) []types.DimensionalMap {
	if len(sequence) < 2 {
		return sequence
	}
	smoothed := make([]types.DimensionalMap, len(sequence))
	smoothed[0] = sequence[0]
	for i := 1; i < len(sequence); i++ {
		entry := sequence[i]
		prev := smoothed[i-1].Dimensions
		raw := sequence[i].Dimensions
		entry.Dimensions = types.DimensionalPoint{
			Valence:   alpha*prev.Valence + (1-alpha)*raw.Valence,
			Arousal:   alpha*prev.Arousal + (1-alpha)*raw.Arousal,
			Dominance: alpha*prev.Dominance + (1-alpha)*raw.Dominance,
		}
		smoothed[i] = entry
	}
	return smoothed
}
