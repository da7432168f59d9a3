package oracle

import (
	"errors"
	"strings"
	"testing"

	"reviewkit/internal/domain"
)

func TestDecodeObject_PlainJSON(t *testing.T) {
	var v struct {
		BusinessType string `json:"business_type"`
	}
	if err := decodeObject(`{"business_type":"Restaurant/Dining"}`, &v); err != nil {
		t.Fatalf("err: %v", err)
	}
	if v.BusinessType != "Restaurant/Dining" {
		t.Fatalf("got %q", v.BusinessType)
	}
}

func TestDecodeObject_CodeFences(t *testing.T) {
	var v struct {
		Topics []struct {
			Name string `json:"name"`
		} `json:"topics"`
	}
	text := "```json\n{\"topics\":[{\"name\":\"Service\"}]}\n```"
	if err := decodeObject(text, &v); err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(v.Topics) != 1 || v.Topics[0].Name != "Service" {
		t.Fatalf("got %+v", v.Topics)
	}
}

func TestDecodeObject_Malformed(t *testing.T) {
	var v map[string]any
	err := decodeObject("the model felt chatty today", &v)
	if !errors.Is(err, domain.ErrOracleMalformed) {
		t.Fatalf("expected ErrOracleMalformed, got %v", err)
	}
}

func TestClassifyUserPrompt_ContainsReviewsAndTopics(t *testing.T) {
	batch := []domain.IndexedReview{
		{Index: 0, Review: domain.Review{ID: "r0", Reviewer: "Ana", Rating: 5, Text: "great guide"}},
	}
	topics := []string{"Guide Performance", "Experience Content", "Organization", "Atmosphere", "Value for Money"}
	p := classifyUserPrompt(batch, topics)

	for _, want := range []string{"r0", "great guide", "Guide Performance", "Value for Money", "assignments"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
