package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DetectionOutput is the structured response from the detection model.
type DetectionOutput struct {
	Emotions   map[string]float64 `json:"emotions"`
	Confidence float64            `json:"confidence"`
}

// ParseDetectionOutput extracts and validates structured detection output.
// Models occasionally wrap the JSON object in prose or code fences, so the
// payload is taken between the outermost braces. Scores are clamped to [0,1].
func ParseDetectionOutput(raw string) (DetectionOutput, error) {
	clean := strings.TrimSpace(raw)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	var output DetectionOutput
	if err := json.Unmarshal([]byte(clean), &output); err != nil {
		return DetectionOutput{}, fmt.Errorf("failed to parse detection output: %w", err)
	}
	if len(output.Emotions) == 0 {
		return DetectionOutput{}, fmt.Errorf("missing emotion scores")
	}

	for key, score := range output.Emotions {
		output.Emotions[key] = clampUnit(score)
	}
	output.Confidence = clampUnit(output.Confidence)
	return output, nil
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
