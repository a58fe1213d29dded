package types

import "time"

// DimensionalPoint is a position in valence/arousal/dominance space.
// Valence and dominance range over [-1,1], arousal over [0,1]. Points are
// always derived from an EmotionVector, never constructed by callers.
type DimensionalPoint struct {
	Valence   float64 `json:"valence"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

// DimensionalMap is a projected emotional state at one moment. It is the
// unit consumed by clustering, smoothing, and transition detection and is
// immutable once produced.
type DimensionalMap struct {
	Timestamp      time.Time        `json:"timestamp"`
	Dimensions     DimensionalPoint `json:"dimensions"`
	PrimaryEmotion string           `json:"primary_emotion"`
	Intensity      float64          `json:"intensity"`
	Confidence     float64          `json:"confidence"`
}

// Cluster is a group of dimensional maps around a centroid.
type Cluster struct {
	ID        string           `json:"id"`
	Centroid  DimensionalPoint `json:"centroid"`
	Members   []DimensionalMap `json:"members"`
	Radius    float64          `json:"radius"`
	// Significance is the member share of the clustered input, in (0,1].
	Significance float64 `json:"significance"`
}

// Transition is a jump between consecutive dimensional points whose distance
// exceeded the detection threshold.
type Transition struct {
	From      DimensionalPoint `json:"from"`
	To        DimensionalPoint `json:"to"`
	Duration  time.Duration    `json:"duration"`
	Intensity float64          `json:"intensity"`
	Timestamp time.Time        `json:"timestamp"`
}

// AnalysisReport bundles the pattern analysis of one session's trajectory.
type AnalysisReport struct {
	SessionID   string           `json:"session_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Smoothed    []DimensionalMap `json:"smoothed"`
	Clusters    []Cluster        `json:"clusters"`
	Transitions []Transition     `json:"transitions"`
}
