package intake

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type mockTextGenerator struct {
	response string
	err      error
	prompt   string
}

func (m *mockTextGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.response, m.err
}

func TestParse(t *testing.T) {
	gen := &mockTextGenerator{
		response: `{"liked_ingredients": ["tomato", "basil"], "disliked_ingredients": ["salmon"], "days": 5}`,
	}
	parser := NewParser(gen)

	prefs, err := parser.Parse(context.Background(), "5 days of italian food, I hate salmon")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := Preferences{
		Liked:    []string{"tomato", "basil"},
		Disliked: []string{"salmon"},
		Days:     5,
	}
	if !reflect.DeepEqual(prefs, want) {
		t.Errorf("prefs = %+v, want %+v", prefs, want)
	}
	if !strings.Contains(gen.prompt, "I hate salmon") {
		t.Error("user request not included in prompt")
	}
}

func TestParseStripsMarkdownFences(t *testing.T) {
	gen := &mockTextGenerator{
		response: "```json\n{\"liked_ingredients\": [], \"disliked_ingredients\": [], \"days\": 3}\n```",
	}
	parser := NewParser(gen)

	prefs, err := parser.Parse(context.Background(), "plan me 3 days")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if prefs.Days != 3 {
		t.Errorf("days = %d, want 3", prefs.Days)
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		parser := NewParser(&mockTextGenerator{})
		if _, err := parser.Parse(context.Background(), "   "); err == nil {
			t.Error("empty request accepted")
		}
	})

	t.Run("generator failure", func(t *testing.T) {
		parser := NewParser(&mockTextGenerator{err: errors.New("quota exceeded")})
		if _, err := parser.Parse(context.Background(), "anything"); err == nil {
			t.Error("generator failure not propagated")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		parser := NewParser(&mockTextGenerator{response: "sure! here is your plan"})
		if _, err := parser.Parse(context.Background(), "anything"); err == nil {
			t.Error("malformed response accepted")
		}
	})
}
