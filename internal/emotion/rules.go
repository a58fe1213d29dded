package emotion

import "github.com/mindloop/therasim/internal/types"

// Built-in context tags.
const (
	ContextGeneralConversation    = "general_conversation"
	ContextTherapistValidates     = "therapist_validates"
	ContextPatientDiscussesTrauma = "patient_discusses_trauma"
)

// ContextRule adjusts one emotion by a signed delta. The delta is scaled by
// the context influence before it is applied.
type ContextRule struct {
	Emotion string
	Delta   float64
}

// RuleTable maps a context tag to its ordered adjustments. Tags without an
// entry leave the vector unchanged; new contexts are added by data, not code.
type RuleTable map[string][]ContextRule

// Register adds or replaces the rules for a context tag.
func (t RuleTable) Register(context string, rules ...ContextRule) {
	t[context] = rules
}

// DefaultRules returns the built-in context rule table.
func DefaultRules() RuleTable {
	return RuleTable{
		ContextTherapistValidates: {
			{Emotion: types.EmotionJoy, Delta: 0.10},
			{Emotion: types.EmotionSadness, Delta: -0.05},
			{Emotion: types.EmotionAnger, Delta: -0.05},
		},
		ContextPatientDiscussesTrauma: {
			{Emotion: types.EmotionSadness, Delta: 0.20},
			{Emotion: types.EmotionFear, Delta: 0.15},
			{Emotion: types.EmotionJoy, Delta: -0.10},
		},
	}
}
