package detector

import (
	"context"
	"fmt"
	"iter"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/mindloop/therasim/internal/types"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	f.calls++
	return func(yield func(*model.LLMResponse, error) bool) {
		if f.err != nil {
			yield(nil, f.err)
			return
		}
		yield(&model.LLMResponse{
			Content: genai.NewContentFromText(f.reply, "model"),
		}, nil)
	}
}

func TestDetectParsesScores(t *testing.T) {
	llm := &fakeLLM{reply: `{"emotions": {"joy": 0.1, "sadness": 0.7, "fear": 0.4, "mystery": 0.9}, "confidence": 0.85}`}
	d := New(llm)

	detected, err := d.Detect(context.Background(), "session-1", "I keep thinking about the accident.")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if detected.SessionID != "session-1" {
		t.Fatalf("unexpected session id %q", detected.SessionID)
	}
	if detected.Emotions[types.EmotionSadness] != 0.7 {
		t.Fatalf("expected sadness 0.7, got %f", detected.Emotions[types.EmotionSadness])
	}
	if _, ok := detected.Emotions["mystery"]; ok {
		t.Fatal("non-canonical keys must be dropped")
	}
	if detected.Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %f", detected.Confidence)
	}

	primary, score := detected.Dominant()
	if primary != types.EmotionSadness || score != 0.7 {
		t.Fatalf("expected dominant sadness/0.7, got %s/%f", primary, score)
	}
}

func TestDetectBlankTextSkipsModel(t *testing.T) {
	llm := &fakeLLM{reply: `unused`}
	d := New(llm)

	detected, err := d.Detect(context.Background(), "session-1", "   ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if llm.calls != 0 {
		t.Fatalf("blank text must not reach the model, got %d calls", llm.calls)
	}
	if len(detected.Emotions) != 0 || detected.Confidence != 0 {
		t.Fatalf("expected empty detection, got %#v", detected)
	}
}

func TestDetectPropagatesErrors(t *testing.T) {
	d := New(&fakeLLM{err: fmt.Errorf("boom")})
	if _, err := d.Detect(context.Background(), "session-1", "hello"); err == nil {
		t.Fatal("expected an error from the model")
	}

	d = New(&fakeLLM{reply: "not json"})
	if _, err := d.Detect(context.Background(), "session-1", "hello"); err == nil {
		t.Fatal("expected a parse error")
	}

	var unconfigured *Detector
	if _, err := unconfigured.Detect(context.Background(), "session-1", "hello"); err == nil {
		t.Fatal("expected an error from an unconfigured detector")
	}
}
