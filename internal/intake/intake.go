package intake

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"nutriplan/internal/llm"
)

//go:embed intake_prompt.md
var intakePrompt string

// Preferences are the structured planning inputs extracted from a
// free-text request.
type Preferences struct {
	Liked    []string `json:"liked_ingredients"`
	Disliked []string `json:"disliked_ingredients"`
	Days     int      `json:"days"`
}

// Parser turns free-text meal requests into Preferences via an LLM.
type Parser struct {
	textGen llm.TextGenerator
}

func NewParser(textGen llm.TextGenerator) *Parser {
	return &Parser{textGen: textGen}
}

// Parse extracts preferences from the request text.
func (p *Parser) Parse(ctx context.Context, request string) (Preferences, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return Preferences{}, fmt.Errorf("empty request")
	}

	prompt, err := buildPrompt(request)
	if err != nil {
		return Preferences{}, err
	}

	resp, err := p.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return Preferences{}, fmt.Errorf("failed to parse request: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal([]byte(stripFences(resp)), &prefs); err != nil {
		return Preferences{}, fmt.Errorf("failed to decode preference response: %w", err)
	}
	if prefs.Days < 0 {
		prefs.Days = 0
	}
	return prefs, nil
}

func buildPrompt(request string) (string, error) {
	tmpl, err := template.New("intake").Parse(intakePrompt)
	if err != nil {
		return "", fmt.Errorf("failed to parse intake prompt template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Request string }{Request: request}); err != nil {
		return "", fmt.Errorf("failed to build intake prompt: %w", err)
	}
	return buf.String(), nil
}

// stripFences removes a markdown code fence if the model wrapped its
// JSON in one despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
