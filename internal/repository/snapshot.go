package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/mindloop/therasim/internal/types"
)

// snapshotModel maps to the emotion_snapshots table.
type snapshotModel struct {
	ID        int
	SessionID string
	ProfileID string
	// Emotions keeps the full named vector as JSONB for inspection.
	Emotions json.RawMessage `gorm:"type:jsonb"`
	// VAD stores the projected point for similarity search.
	VAD            pgvector.Vector `gorm:"column:vad;type:vector(3)"`
	PrimaryEmotion string
	Intensity      float64
	Confidence     float64
	CreatedAt      time.Time
}

func (snapshotModel) TableName() string {
	return "emotion_snapshots"
}

// SnapshotRepo accesses the per-utterance emotion snapshots of a session.
type SnapshotRepo struct {
	db *gorm.DB
}

// NewSnapshotRepo returns a SnapshotRepo.
func NewSnapshotRepo(db *gorm.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Add persists one synthesized profile together with its projection.
func (r *SnapshotRepo) Add(ctx context.Context, sessionID string, profile types.EmotionProfile, projected types.DimensionalMap) error {
	emotions, err := json.Marshal(profile.Emotions)
	if err != nil {
		return fmt.Errorf("failed to encode emotion vector: %w", err)
	}
	record := snapshotModel{
		SessionID: sessionID,
		ProfileID: profile.ID,
		Emotions:  emotions,
		VAD: pgvector.NewVector([]float32{
			float32(projected.Dimensions.Valence),
			float32(projected.Dimensions.Arousal),
			float32(projected.Dimensions.Dominance),
		}),
		PrimaryEmotion: projected.PrimaryEmotion,
		Intensity:      projected.Intensity,
		Confidence:     projected.Confidence,
		CreatedAt:      projected.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert emotion snapshot: %w", err)
	}
	return nil
}

// ListMaps returns a session's dimensional maps ordered oldest to newest.
func (r *SnapshotRepo) ListMaps(ctx context.Context, sessionID string) ([]types.DimensionalMap, error) {
	var records []snapshotModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query emotion snapshots: %w", err)
	}

	maps := make([]types.DimensionalMap, 0, len(records))
	for _, record := range records {
		maps = append(maps, mapFromModel(record))
	}
	return maps, nil
}

// Nearest returns the stored moments closest to the given VAD point,
// ordered by euclidean distance.
func (r *SnapshotRepo) Nearest(ctx context.Context, sessionID string, point types.DimensionalPoint, limit int) ([]types.SimilarMoment, error) {
	if limit <= 0 {
		return nil, nil
	}
	target := pgvector.NewVector([]float32{
		float32(point.Valence),
		float32(point.Arousal),
		float32(point.Dominance),
	})

	query := `
		SELECT profile_id, primary_emotion, intensity, confidence,
		       created_at AS timestamp, vad <-> $1 AS distance
		FROM emotion_snapshots
		WHERE session_id = $2
		ORDER BY vad <-> $1
		LIMIT $3`

	var results []types.SimilarMoment
	if err := r.db.WithContext(ctx).
		Raw(query, target, sessionID, limit).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to search similar moments: %w", err)
	}
	return results, nil
}

// mapFromModel converts a database record to the analysis unit.
func mapFromModel(record snapshotModel) types.DimensionalMap {
	var point types.DimensionalPoint
	if components := record.VAD.Slice(); len(components) == 3 {
		point = types.DimensionalPoint{
			Valence:   float64(components[0]),
			Arousal:   float64(components[1]),
			Dominance: float64(components[2]),
		}
	}
	return types.DimensionalMap{
		Timestamp:      record.CreatedAt,
		Dimensions:     point,
		PrimaryEmotion: record.PrimaryEmotion,
		Intensity:      record.Intensity,
		Confidence:     record.Confidence,
	}
}
