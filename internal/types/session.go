package types

import "time"

// Session is one therapy-training conversation.
type Session struct {
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	CreatedAt time.Time `json:"created_at"`
}

// SimilarMoment is a stored emotional moment retrieved by VAD proximity.
type SimilarMoment struct {
	ProfileID      string    `json:"profile_id"`
	PrimaryEmotion string    `json:"primary_emotion"`
	Intensity      float64   `json:"intensity"`
	Confidence     float64   `json:"confidence"`
	Distance       float64   `json:"distance"`
	Timestamp      time.Time `json:"timestamp"`
}
