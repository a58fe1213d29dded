// Package detector turns utterance text into emotion-intensity vectors.
package detector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/mindloop/therasim/internal/types"
	"github.com/mindloop/therasim/internal/utils"
)

const systemPrompt = `You score the emotional content of a simulated patient's utterance.
Rate each of these emotions with a number between 0 and 1:
joy, sadness, anger, fear, surprise, disgust, trust, anticipation.
Return only a JSON object of the form
{"emotions": {"joy": 0, "sadness": 0, "anger": 0, "fear": 0, "surprise": 0, "disgust": 0, "trust": 0, "anticipation": 0}, "confidence": 0}
where confidence is your certainty in the scores. Do not output anything else.`

// Detector classifies utterance text into the 8-emotion basis.
type Detector struct {
	model model.LLM
}

// New returns a Detector backed by the given model.
func New(m model.LLM) *Detector {
	return &Detector{model: m}
}

// Detect scores text and returns the detected emotion vector. Blank text
// yields an empty vector with zero confidence rather than a model call.
func (d *Detector) Detect(ctx context.Context, sessionID, text string) (types.DetectedEmotion, error) {
	if d == nil || d.model == nil {
		return types.DetectedEmotion{}, fmt.Errorf("emotion detector not configured")
	}

	if strings.TrimSpace(text) == "" {
		return types.DetectedEmotion{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Emotions:  types.EmotionVector{},
			Timestamp: time.Now(),
		}, nil
	}

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(systemPrompt, "system"),
			genai.NewContentFromText(text, "user"),
		},
		Config: &genai.GenerateContentConfig{
			ResponseMIMEType:   "application/json",
			ResponseJsonSchema: detectionSchema(),
		},
	}

	seq := d.model.GenerateContent(ctx, req, false)
	var resp *model.LLMResponse
	var err error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return types.DetectedEmotion{}, fmt.Errorf("detection call failed: %w", err)
	}
	if resp == nil {
		return types.DetectedEmotion{}, fmt.Errorf("empty detection response")
	}

	raw := strings.TrimSpace(utils.ExtractContentText(resp.Content))
	output, parseErr := utils.ParseDetectionOutput(raw)
	if parseErr != nil {
		return types.DetectedEmotion{}, parseErr
	}

	// Only canonical keys survive; anything else a model invents is dropped.
	vector := make(types.EmotionVector, len(types.CanonicalEmotions))
	for _, key := range types.CanonicalEmotions {
		if score, ok := output.Emotions[key]; ok {
			vector[key] = score
		}
	}

	return types.DetectedEmotion{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Emotions:   vector,
		Timestamp:  time.Now(),
		Confidence: output.Confidence,
	}, nil
}

// detectionSchema describes the structured output the detection prompt asks
// for, so schema-aware endpoints can enforce it.
func detectionSchema() *jsonschema.Schema {
	zero := 0.0
	one := 1.0
	scores := make(map[string]*jsonschema.Schema, len(types.CanonicalEmotions))
	for _, key := range types.CanonicalEmotions {
		scores[key] = &jsonschema.Schema{Type: "number", Minimum: &zero, Maximum: &one}
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"emotions": {
				Type:       "object",
				Properties: scores,
				Required:   append([]string(nil), types.CanonicalEmotions...),
			},
			"confidence": {Type: "number", Minimum: &zero, Maximum: &one},
		},
		Required: []string{"emotions", "confidence"},
	}
}
