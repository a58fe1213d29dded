package emotion

import (
	"fmt"
	"math"

	"github.com/mindloop/therasim/internal/types"
)

// clusterIterations is the fixed number of assign/update rounds.
const clusterIterations = 10

// ClusterEngine groups dimensional maps by k-means over VAD space.
type ClusterEngine struct {
	rng Source
}

// NewClusterEngine returns a ClusterEngine. A nil rng uses a time-seeded
// source; tests inject a deterministic one to pin centroid seeding.
func NewClusterEngine(rng Source) *ClusterEngine {
	if rng == nil {
		rng = NewTimeSource()
	}
	return &ClusterEngine{rng: rng}
}

// Cluster partitions points into at most k labeled clusters. Non-positive k
// or empty input yields no clusters; the result never exceeds
// min(k, len(points)) entries because empty clusters are dropped.
func (e *ClusterEngine) Cluster(points []types.DimensionalMap, k int) []types.Cluster {
	if k <= 0 || len(points) == 0 {
		return nil
	}

	centroids := make([]types.DimensionalPoint, k)
	for i := range centroids {
		centroids[i] = types.DimensionalPoint{
			Valence:   e.rng.Float64()*2 - 1,
			Arousal:   e.rng.Float64(),
			Dominance: e.rng.Float64()*2 - 1,
		}
	}

	assignments := make([]int, len(points))
	for round := 0; round < clusterIterations; round++ {
		for i, point := range points {
			assignments[i] = nearestCentroid(point.Dimensions, centroids)
		}
		for c := range centroids {
			var sumV, sumA, sumD float64
			count := 0
			for i, point := range points {
				if assignments[i] != c {
					continue
				}
				sumV += point.Dimensions.Valence
				sumA += point.Dimensions.Arousal
				sumD += point.Dimensions.Dominance
				count++
			}
			if count == 0 {
				// An empty cluster keeps its previous centroid; no reseeding.
				continue
			}
			n := float64(count)
			centroids[c] = types.DimensionalPoint{
				Valence:   sumV / n,
				Arousal:   sumA / n,
				Dominance: sumD / n,
			}
		}
	}

	clusters := make([]types.Cluster, 0, k)
	for c, centroid := range centroids {
		var members []types.DimensionalMap
		for i, point := range points {
			if assignments[i] == c {
				members = append(members, point)
			}
		}
		if len(members) == 0 {
			continue
		}
		radius := 0.0
		for _, member := range members {
			if d := pointDistance(member.Dimensions, centroid); d > radius {
				radius = d
			}
		}
		clusters = append(clusters, types.Cluster{
			ID:           fmt.Sprintf("cluster-%d", c+1),
			Centroid:     centroid,
			Members:      members,
			Radius:       radius,
			Significance: float64(len(members)) / float64(len(points)),
		})
	}
	return clusters
}

func nearestCentroid(p types.DimensionalPoint, centroids []types.DimensionalPoint) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := pointDistance(p, c); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// pointDistance is the euclidean distance between two VAD points.
func pointDistance(a, b types.DimensionalPoint) float64 {
	dv := a.Valence - b.Valence
	da := a.Arousal - b.Arousal
	dd := a.Dominance - b.Dominance
	return math.Sqrt(dv*dv + da*da + dd*dd)
}
