package emotion

import (
	"math"
	"testing"
	"time"

	"github.com/mindloop/therasim/internal/types"
)

func TestDetectTransitionsShortSequences(t *testing.T) {
	if got := DetectTransitions(nil, DefaultTransitionThreshold); len(got) != 0 {
		t.Fatalf("empty sequence must yield no transitions, got %d", len(got))
	}
	single := []types.DimensionalMap{vadMap(1, 1, 1)}
	if got := DetectTransitions(single, DefaultTransitionThreshold); len(got) != 0 {
		t.Fatalf("single element must yield no transitions, got %d", len(got))
	}
}

func TestDetectTransitionsThreshold(t *testing.T) {
	base := time.Now()
	sequence := []types.DimensionalMap{
		vadMap(0, 0, 0),
		vadMap(0.1, 0, 0),  // distance 0.1, below threshold
		vadMap(0.8, 0.5, 0), // large jump
		vadMap(0.8, 0.5, 0), // identical, no movement
	}
	for i := range sequence {
		sequence[i].Timestamp = base.Add(time.Duration(i) * 30 * time.Second)
	}

	transitions := DetectTransitions(sequence, 0.3)
	if len(transitions) != 1 {
		t.Fatalf("expected exactly one transition, got %d", len(transitions))
	}

	tr := transitions[0]
	wantDistance := pointDistance(sequence[1].Dimensions, sequence[2].Dimensions)
	if math.Abs(tr.Intensity-wantDistance) > 1e-12 {
		t.Fatalf("intensity must equal the pair distance: expected %f, got %f", wantDistance, tr.Intensity)
	}
	if tr.From != sequence[1].Dimensions || tr.To != sequence[2].Dimensions {
		t.Fatalf("unexpected endpoints: %#v", tr)
	}
	if tr.Duration != 30*time.Second {
		t.Fatalf("expected duration 30s, got %s", tr.Duration)
	}
	if !tr.Timestamp.Equal(sequence[2].Timestamp) {
		t.Fatal("transition timestamp must be the later point's timestamp")
	}
}

func TestDetectTransitionsExactThresholdIgnored(t *testing.T) {
	base := time.Now()
	sequence := []types.DimensionalMap{
		vadMap(0, 0, 0),
		vadMap(0.3, 0, 0), // distance exactly at the threshold
	}
	sequence[1].Timestamp = base.Add(time.Minute)

	if got := DetectTransitions(sequence, 0.3); len(got) != 0 {
		t.Fatalf("a pair at the threshold must not emit a transition, got %d", len(got))
	}
}
