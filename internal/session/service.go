// Package session orchestrates detection, synthesis, projection, and
// pattern analysis for one therapy-training conversation.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindloop/therasim/internal/emotion"
	"github.com/mindloop/therasim/internal/types"
)

// Detector yields an emotion vector for utterance text.
type Detector interface {
	Detect(ctx context.Context, sessionID, text string) (types.DetectedEmotion, error)
}

// SessionRepo defines session creation and lookup behavior.
type SessionRepo interface {
	Create(ctx context.Context, scenario string) (types.Session, error)
	GetByID(ctx context.Context, id string) (*types.Session, error)
}

// SnapshotRepo defines snapshot persistence and retrieval behavior.
type SnapshotRepo interface {
	Add(ctx context.Context, sessionID string, profile types.EmotionProfile, projected types.DimensionalMap) error
	ListMaps(ctx context.Context, sessionID string) ([]types.DimensionalMap, error)
	Nearest(ctx context.Context, sessionID string, point types.DimensionalPoint, limit int) ([]types.SimilarMoment, error)
}

// ReportCache stores analysis reports between runs.
type ReportCache interface {
	GetReport(ctx context.Context, sessionID string) (*types.AnalysisReport, error)
	SetReport(ctx context.Context, report *types.AnalysisReport) error
}

// Service drives the emotion pipeline for a session.
type Service struct {
	detector    Detector
	synthesizer *emotion.Synthesizer
	clusters    *emotion.ClusterEngine
	sessions    SessionRepo
	snapshots   SnapshotRepo
	reports     ReportCache
	alpha       float64
	threshold   float64
}

// NewService returns a session service. The cache may be nil; analysis then
// simply skips caching.
func NewService(
	detector Detector,
	synthesizer *emotion.Synthesizer,
	clusters *emotion.ClusterEngine,
	sessions SessionRepo,
	snapshots SnapshotRepo,
	reports ReportCache,
) *Service {
	return &Service{
		detector:    detector,
		synthesizer: synthesizer,
		clusters:    clusters,
		sessions:    sessions,
		snapshots:   snapshots,
		reports:     reports,
		alpha:       emotion.DefaultSmoothingAlpha,
		threshold:   emotion.DefaultTransitionThreshold,
	}
}

// SetAnalysisParams overrides the smoothing alpha and transition threshold.
func (s *Service) SetAnalysisParams(alpha, threshold float64) {
	s.alpha = alpha
	s.threshold = threshold
}

// Start creates a new session for the given scenario.
func (s *Service) Start(ctx context.Context, scenario string) (types.Session, error) {
	if s == nil || s.sessions == nil {
		return types.Session{}, fmt.Errorf("session repo is nil")
	}
	session, err := s.sessions.Create(ctx, scenario)
	if err != nil {
		return types.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	s.synthesizer.Reset()
	return session, nil
}

// ProcessUtterance runs one turn of the pipeline: detect the utterance's
// emotions, evolve the patient profile with the dominant one, project to
// VAD space, and persist the snapshot.
func (s *Service) ProcessUtterance(ctx context.Context, sessionID, contextTag, text string) (types.EmotionProfile, types.DimensionalMap, error) {
	if s == nil || s.synthesizer == nil {
		return types.EmotionProfile{}, types.DimensionalMap{}, fmt.Errorf("session service not configured")
	}
	if s.detector == nil {
		return types.EmotionProfile{}, types.DimensionalMap{}, fmt.Errorf("detector is nil")
	}

	detected, err := s.detector.Detect(ctx, sessionID, text)
	if err != nil {
		return types.EmotionProfile{}, types.DimensionalMap{}, fmt.Errorf("failed to detect emotions: %w", err)
	}

	opts := emotion.SynthesisOptions{Context: contextTag}
	if current := s.synthesizer.CurrentProfile(); current != nil {
		opts.CurrentEmotions = current.Emotions
	}
	if len(detected.Emotions) > 0 {
		base, intensity := detected.Dominant()
		opts.BaseEmotion = base
		opts.BaseIntensity = &intensity
	}

	result := s.synthesizer.Synthesize(opts)
	if !result.Success {
		return types.EmotionProfile{}, types.DimensionalMap{}, fmt.Errorf("synthesis failed: %s", result.Message)
	}

	projected := emotion.Project(result.Profile.Emotions, result.Profile.Confidence, result.Profile.Timestamp)

	if s.snapshots != nil {
		if err := s.snapshots.Add(ctx, sessionID, result.Profile, projected); err != nil {
			return types.EmotionProfile{}, types.DimensionalMap{}, fmt.Errorf("failed to persist snapshot: %w", err)
		}
	}

	slog.Info("processed utterance",
		"session", sessionID,
		"context", contextTag,
		"primary", projected.PrimaryEmotion,
		"valence", projected.Dimensions.Valence,
		"arousal", projected.Dimensions.Arousal,
		"dominance", projected.Dimensions.Dominance)

	return result.Profile, projected, nil
}

// Analyze loads a session's trajectory and runs the pattern analysis:
// smoothing for the report's trend view, clustering and transition
// detection over the raw trajectory. The report is cached when a cache is
// configured.
func (s *Service) Analyze(ctx context.Context, sessionID string, k int) (types.AnalysisReport, error) {
	if s == nil || s.snapshots == nil {
		return types.AnalysisReport{}, fmt.Errorf("snapshot repo is nil")
	}

	maps, err := s.snapshots.ListMaps(ctx, sessionID)
	if err != nil {
		return types.AnalysisReport{}, fmt.Errorf("failed to load session trajectory: %w", err)
	}

	report := types.AnalysisReport{
		SessionID:   sessionID,
		GeneratedAt: time.Now(),
		Smoothed:    emotion.Smooth(maps, s.alpha),
		Transitions: emotion.DetectTransitions(maps, s.threshold),
	}
	if s.clusters != nil {
		report.Clusters = s.clusters.Cluster(maps, k)
	}

	if s.reports != nil {
		if err := s.reports.SetReport(ctx, &report); err != nil {
			slog.Warn("failed to cache analysis report", "session", sessionID, "error", err.Error())
		}
	}
	return report, nil
}

// CachedReport returns the last cached analysis for a session, or nil when
// none exists.
func (s *Service) CachedReport(ctx context.Context, sessionID string) (*types.AnalysisReport, error) {
	if s == nil || s.reports == nil {
		return nil, nil
	}
	return s.reports.GetReport(ctx, sessionID)
}

// SimilarMoments finds stored moments near the given VAD point.
func (s *Service) SimilarMoments(ctx context.Context, sessionID string, point types.DimensionalPoint, limit int) ([]types.SimilarMoment, error) {
	if s == nil || s.snapshots == nil {
		return nil, fmt.Errorf("snapshot repo is nil")
	}
	return s.snapshots.Nearest(ctx, sessionID, point, limit)
}

// CurrentProfile exposes the engine's current profile for display.
func (s *Service) CurrentProfile() *types.EmotionProfile {
	if s == nil || s.synthesizer == nil {
		return nil
	}
	return s.synthesizer.CurrentProfile()
}
