package emotion

import (
	"math"
	"testing"
	"time"

	"github.com/mindloop/therasim/internal/types"
)

func vadMap(valence, arousal, dominance float64) types.DimensionalMap {
	return types.DimensionalMap{
		Timestamp:      time.Now(),
		Dimensions:     types.DimensionalPoint{Valence: valence, Arousal: arousal, Dominance: dominance},
		PrimaryEmotion: types.EmotionJoy,
		Intensity:      0.5,
		Confidence:     0.8,
	}
}

func TestClusterEdgeCases(t *testing.T) {
	engine := NewClusterEngine(ZeroSource{})
	points := []types.DimensionalMap{vadMap(0, 0, 0), vadMap(1, 1, 1)}

	if got := engine.Cluster(points, 0); len(got) != 0 {
		t.Fatalf("k=0 must yield no clusters, got %d", len(got))
	}
	if got := engine.Cluster(points, -1); len(got) != 0 {
		t.Fatalf("k=-1 must yield no clusters, got %d", len(got))
	}
	if got := engine.Cluster(nil, 3); len(got) != 0 {
		t.Fatalf("empty input must yield no clusters, got %d", len(got))
	}
}

func TestClusterSeparatesGroups(t *testing.T) {
	// Seed one centroid inside each group so convergence is immediate and
	// fully deterministic.
	source := NewSequenceSource(
		0.05, 0.1, 0.05, // centroid 1: (-0.9, 0.1, -0.9)
		0.95, 0.9, 0.95, // centroid 2: (0.9, 0.9, 0.9)
	)
	engine := NewClusterEngine(source)

	points := []types.DimensionalMap{
		vadMap(-0.8, 0.1, -0.8),
		vadMap(-0.7, 0.2, -0.75),
		vadMap(-0.75, 0.15, -0.7),
		vadMap(0.8, 0.85, 0.8),
		vadMap(0.85, 0.8, 0.85),
	}

	clusters := engine.Cluster(points, 2)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}

	var low, high *types.Cluster
	for i := range clusters {
		if clusters[i].Centroid.Valence < 0 {
			low = &clusters[i]
		} else {
			high = &clusters[i]
		}
	}
	if low == nil || high == nil {
		t.Fatalf("expected one cluster per group, got %#v", clusters)
	}
	if len(low.Members) != 3 || len(high.Members) != 2 {
		t.Fatalf("expected member split 3/2, got %d/%d", len(low.Members), len(high.Members))
	}
	if math.Abs(low.Significance-0.6) > 1e-9 || math.Abs(high.Significance-0.4) > 1e-9 {
		t.Fatalf("expected significances 0.6/0.4, got %f/%f", low.Significance, high.Significance)
	}

	// Centroid is the member mean.
	wantValence := (-0.8 - 0.7 - 0.75) / 3
	if math.Abs(low.Centroid.Valence-wantValence) > 1e-9 {
		t.Fatalf("expected low centroid valence %f, got %f", wantValence, low.Centroid.Valence)
	}

	// Radius covers the farthest member.
	for _, cluster := range clusters {
		for _, member := range cluster.Members {
			if d := pointDistance(member.Dimensions, cluster.Centroid); d > cluster.Radius+1e-9 {
				t.Fatalf("member outside radius: %f > %f", d, cluster.Radius)
			}
		}
	}
}

func TestClusterDropsEmptyClusters(t *testing.T) {
	// A zero source stacks every centroid on (-1, 0, -1); ties assign all
	// points to the first centroid, so the rest end empty and are dropped.
	engine := NewClusterEngine(ZeroSource{})
	points := []types.DimensionalMap{vadMap(0.2, 0.3, 0.1), vadMap(0.25, 0.35, 0.1)}

	clusters := engine.Cluster(points, 5)
	if len(clusters) != 1 {
		t.Fatalf("expected a single surviving cluster, got %d", len(clusters))
	}
	if len(clusters[0].Members) != len(points) {
		t.Fatalf("expected all points in one cluster, got %d", len(clusters[0].Members))
	}
	if clusters[0].Significance != 1 {
		t.Fatalf("expected significance 1, got %f", clusters[0].Significance)
	}
}

func TestClusterResultBounds(t *testing.T) {
	engine := NewClusterEngine(NewSeededSource(7))
	points := []types.DimensionalMap{
		vadMap(0.1, 0.2, 0.3),
		vadMap(-0.4, 0.6, 0.1),
		vadMap(0.9, 0.9, -0.2),
	}

	clusters := engine.Cluster(points, 10)
	if len(clusters) > len(points) {
		t.Fatalf("result length %d exceeds point count %d", len(clusters), len(points))
	}
	total := 0
	for _, cluster := range clusters {
		if cluster.Radius < 0 {
			t.Fatalf("negative radius: %f", cluster.Radius)
		}
		if cluster.Significance <= 0 || cluster.Significance > 1 {
			t.Fatalf("significance out of (0,1]: %f", cluster.Significance)
		}
		total += len(cluster.Members)
	}
	if total != len(points) {
		t.Fatalf("every point must land in exactly one cluster, got %d of %d", total, len(points))
	}
}
