package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recruit-match/internal/ai"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestScoreBatchParsesFencedJSON(t *testing.T) {
	gen := &stubGenerator{response: "```json\n[{\"postingId\": 7, \"matchScore\": 85, \"matchReason\": \"적합\"}]\n```"}
	scorer := NewScorer(gen, zap.NewNop())

	scores, err := scorer.ScoreBatch(context.Background(), "profile", []ai.PostingSummary{{PostingID: 7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := scores[7]
	if !ok {
		t.Fatalf("expected score for posting 7, got %v", scores)
	}
	if got.Value != 85 {
		t.Errorf("expected score 85, got %d", got.Value)
	}
	if got.Reason != "적합" {
		t.Errorf("expected reason 적합, got %q", got.Reason)
	}
}

func TestScoreBatchClampsAndCoerces(t *testing.T) {
	gen := &stubGenerator{response: `[
		{"postingId": 1, "matchScore": 150, "matchReason": "a"},
		{"postingId": 2, "matchScore": -10, "matchReason": "b"},
		{"postingId": "3", "matchScore": "42", "matchReason": "c"},
		{"postingId": 4, "matchScore": "not a number", "matchReason": "d"},
		{"matchScore": 90, "matchReason": "no id"}
	]`}
	scorer := NewScorer(gen, zap.NewNop())

	scores, err := scorer.ScoreBatch(context.Background(), "profile", []ai.PostingSummary{
		{PostingID: 1}, {PostingID: 2}, {PostingID: 3}, {PostingID: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scores) != 4 {
		t.Fatalf("expected 4 scores, got %d", len(scores))
	}
	if scores[1].Value != 100 {
		t.Errorf("expected clamp to 100, got %d", scores[1].Value)
	}
	if scores[2].Value != 0 {
		t.Errorf("expected clamp to 0, got %d", scores[2].Value)
	}
	if scores[3].Value != 42 {
		t.Errorf("expected coerced 42, got %d", scores[3].Value)
	}
	if scores[4].Value != 0 {
		t.Errorf("expected non-numeric score to collapse to 0, got %d", scores[4].Value)
	}
}

func TestScoreBatchPropagatesGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	scorer := NewScorer(gen, zap.NewNop())

	_, err := scorer.ScoreBatch(context.Background(), "profile", []ai.PostingSummary{{PostingID: 1}})
	if err == nil {
		t.Fatal("expected error from generator")
	}
}

func TestScoreBatchRejectsMalformedResponse(t *testing.T) {
	gen := &stubGenerator{response: "죄송합니다, JSON을 생성할 수 없습니다."}
	scorer := NewScorer(gen, zap.NewNop())

	_, err := scorer.ScoreBatch(context.Background(), "profile", []ai.PostingSummary{{PostingID: 1}})
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestScoreBatchEmptyBatch(t *testing.T) {
	gen := &stubGenerator{response: "[]"}
	scorer := NewScorer(gen, zap.NewNop())

	scores, err := scorer.ScoreBatch(context.Background(), "profile", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected empty result, got %v", scores)
	}
	if gen.prompt != "" {
		t.Error("generator should not be called for an empty batch")
	}
}

func TestScoreBatchInterpolatesPrompt(t *testing.T) {
	gen := &stubGenerator{response: "[]"}
	scorer := NewScorer(gen, zap.NewNop())

	_, err := scorer.ScoreBatch(context.Background(), "경력 3년 백엔드 개발자", []ai.PostingSummary{{PostingID: 9, Title: "전산직"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"경력 3년 백엔드 개발자", "전산직", "\"postingId\": 9"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
