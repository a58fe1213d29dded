package emotion

import (
	"math"
	"testing"
	"time"

	"github.com/mindloop/therasim/internal/types"
)

func TestSmoothShortSequences(t *testing.T) {
	if got := Smooth(nil, DefaultSmoothingAlpha); len(got) != 0 {
		t.Fatalf("empty sequence must come back empty, got %d", len(got))
	}

	single := []types.DimensionalMap{vadMap(0.5, 0.5, 0.5)}
	got := Smooth(single, DefaultSmoothingAlpha)
	if len(got) != 1 || got[0] != single[0] {
		t.Fatalf("single-element sequence must come back unchanged, got %#v", got)
	}
}

func TestSmoothRecursiveEMA(t *testing.T) {
	alpha := 0.3
	base := time.Now()
	sequence := []types.DimensionalMap{
		vadMap(0.0, 0.0, 0.0),
		vadMap(1.0, 1.0, 1.0),
		vadMap(0.5, 0.2, -0.4),
	}
	for i := range sequence {
		sequence[i].Timestamp = base.Add(time.Duration(i) * time.Minute)
		sequence[i].Intensity = float64(i) * 0.1
	}

	smoothed := Smooth(sequence, alpha)

	if smoothed[0] != sequence[0] {
		t.Fatalf("first element must be copied unchanged")
	}

	// Element 1 blends against the raw first element; element 2 blends
	// against the previously *smoothed* element, not the raw one.
	want1 := alpha*0.0 + (1-alpha)*1.0
	if math.Abs(smoothed[1].Dimensions.Valence-want1) > 1e-9 {
		t.Fatalf("element 1 valence: expected %f, got %f", want1, smoothed[1].Dimensions.Valence)
	}
	want2 := alpha*want1 + (1-alpha)*0.5
	if math.Abs(smoothed[2].Dimensions.Valence-want2) > 1e-9 {
		t.Fatalf("element 2 valence: expected %f, got %f", want2, smoothed[2].Dimensions.Valence)
	}
	want2Dominance := alpha*(alpha*0.0+(1-alpha)*1.0) + (1-alpha)*-0.4
	if math.Abs(smoothed[2].Dimensions.Dominance-want2Dominance) > 1e-9 {
		t.Fatalf("element 2 dominance: expected %f, got %f", want2Dominance, smoothed[2].Dimensions.Dominance)
	}

	// Non-dimensional fields come from the raw element at the same index.
	for i := range sequence {
		if !smoothed[i].Timestamp.Equal(sequence[i].Timestamp) {
			t.Fatalf("element %d timestamp changed", i)
		}
		if smoothed[i].Intensity != sequence[i].Intensity {
			t.Fatalf("element %d intensity changed", i)
		}
		if smoothed[i].PrimaryEmotion != sequence[i].PrimaryEmotion {
			t.Fatalf("element %d primary emotion changed", i)
		}
		if smoothed[i].Confidence != sequence[i].Confidence {
			t.Fatalf("element %d confidence changed", i)
		}
	}

	// The input must stay untouched.
	if sequence[1].Dimensions.Valence != 1.0 {
		t.Fatal("smoothing mutated the raw sequence")
	}
}
