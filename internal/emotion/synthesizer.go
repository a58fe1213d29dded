package emotion

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindloop/therasim/internal/types"
)

// Default synthesis parameters.
const (
	DefaultBaseIntensity     = 0.7
	DefaultDecayFactor       = 0.85
	DefaultContextInfluence  = 0.1
	DefaultRandomFluctuation = 0.02
	DefaultContext           = ContextGeneralConversation
)

// SynthesisOptions configures one synthesis step. Nil pointer fields fall
// back to the documented defaults, so an explicit zero stays distinguishable
// from "not set".
type SynthesisOptions struct {
	// CurrentEmotions is the starting vector; nil means the neutral vector.
	CurrentEmotions types.EmotionVector
	// BaseEmotion, when set, is injected at max(current, BaseIntensity).
	BaseEmotion   string
	BaseIntensity *float64
	// Context selects the rule-table entry to apply.
	Context           string
	DecayFactor       *float64
	ContextInfluence  *float64
	RandomFluctuation *float64
}

// SynthesisResult is the outcome of one synthesis step.
type SynthesisResult struct {
	Profile types.EmotionProfile
	Success bool
	Message string
}

// Synthesizer owns a single mutable current-profile slot and evolves it
// through decay, noise, base-emotion injection, and contextual rules. Calls
// are serialized; each Synthesize is an atomic read-modify-write of the slot.
type Synthesizer struct {
	mu      sync.Mutex
	current *types.EmotionProfile
	rng     Source
	rules   RuleTable
}

// NewSynthesizer returns a Synthesizer. A nil rng uses a time-seeded source;
// a nil rules table uses the built-in contexts.
func NewSynthesizer(rng Source, rules RuleTable) *Synthesizer {
	if rng == nil {
		rng = NewTimeSource()
	}
	if rules == nil {
		rules = DefaultRules()
	}
	return &Synthesizer{rng: rng, rules: rules}
}

// Synthesize produces the next emotion profile and stores it as current.
// Internal failures never propagate: the result carries the default neutral
// profile with Success false, and the stored profile is left untouched.
func (s *Synthesizer) Synthesize(opts SynthesisOptions) (result SynthesisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			result = SynthesisResult{
				Profile: DefaultProfile(),
				Message: fmt.Sprintf("synthesis failed: %v", r),
			}
		}
	}()

	decay := valueOr(opts.DecayFactor, DefaultDecayFactor)
	influence := valueOr(opts.ContextInfluence, DefaultContextInfluence)
	fluctuation := valueOr(opts.RandomFluctuation, DefaultRandomFluctuation)
	contextTag := opts.Context
	if contextTag == "" {
		contextTag = DefaultContext
	}

	start := opts.CurrentEmotions
	if start == nil {
		start = types.NeutralVector()
	}
	next := start.Clone()

	// Decay and noise, one key at a time. Each key is clamped before the
	// next is touched, and keys are visited in a deterministic order so a
	// fixed random source reproduces the exact same stream.
	for _, key := range iterationOrder(next) {
		value := next[key] * decay
		if fluctuation != 0 {
			value += (s.rng.Float64()*2 - 1) * fluctuation
		}
		next[key] = clamp01(value)
	}

	if opts.BaseEmotion != "" {
		intensity := clamp01(valueOr(opts.BaseIntensity, DefaultBaseIntensity))
		if current, ok := next[opts.BaseEmotion]; !ok || intensity > current {
			next[opts.BaseEmotion] = intensity
		}
	}

	for _, rule := range s.rules[contextTag] {
		current, ok := next[rule.Emotion]
		if !ok {
			// Negative deltas never introduce a key.
			if rule.Delta <= 0 {
				continue
			}
			current = 0
		}
		next[rule.Emotion] = clamp01(current + rule.Delta*influence)
	}

	for key, value := range next {
		next[key] = clamp01(value)
	}

	suppressNeutral(next)

	profile := types.EmotionProfile{
		ID:         uuid.NewString(),
		Emotions:   next,
		Timestamp:  time.Now(),
		Confidence: 0.75 + s.rng.Float64()*0.2,
	}
	s.current = &profile
	return SynthesisResult{Profile: profile, Success: true}
}

// CurrentProfile returns a copy of the stored profile, or nil before the
// first successful synthesis.
func (s *Synthesizer) CurrentProfile() *types.EmotionProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	profile := *s.current
	profile.Emotions = s.current.Emotions.Clone()
	return &profile
}

// Reset clears the current-profile slot.
func (s *Synthesizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// DefaultProfile returns the canonical neutral profile: neutral at full
// intensity, every canonical emotion present at zero, confidence 1.
func DefaultProfile() types.EmotionProfile {
	return types.EmotionProfile{
		ID:         uuid.NewString(),
		Emotions:   types.NeutralVector(),
		Timestamp:  time.Now(),
		Confidence: 1.0,
	}
}

// iterationOrder lists the vector's keys deterministically: canonical
// emotions first, then neutral, then anything else sorted.
func iterationOrder(v types.EmotionVector) []string {
	order := make([]string, 0, len(v))
	seen := make(map[string]bool, len(v))
	for _, key := range types.CanonicalEmotions {
		if _, ok := v[key]; ok {
			order = append(order, key)
			seen[key] = true
		}
	}
	if _, ok := v[types.EmotionNeutral]; ok {
		order = append(order, types.EmotionNeutral)
		seen[types.EmotionNeutral] = true
	}
	rest := make([]string, 0)
	for key := range v {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// suppressNeutral removes the neutral pseudo-key once any other emotion
// exceeds the significance threshold.
func suppressNeutral(v types.EmotionVector) {
	if _, ok := v[types.EmotionNeutral]; !ok {
		return
	}
	for key, value := range v {
		if key == types.EmotionNeutral {
			continue
		}
		if value > types.SignificanceThreshold {
			delete(v, types.EmotionNeutral)
			return
		}
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
