// Package generator wraps the external answering model behind a small
// capability interface.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Service produces a natural-language answer for a fully assembled
// prompt. Failures come back as errors carrying a human-readable message;
// the caller decides how to surface them.
type Service interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini answers through the Google GenAI API with a fixed model and
// temperature.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini-backed generation service.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, temperature: temperature}, nil
}

// Generate sends the prompt and returns the concatenated textual parts of
// the first candidates.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr(g.temperature)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
	}

	answer := strings.TrimSpace(builder.String())
	if answer == "" {
		return "", errors.New("model returned an empty response")
	}
	return answer, nil
}

// Model reports the configured model identifier.
func (g *Gemini) Model() string { return g.model }
