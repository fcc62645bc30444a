// Package gemini implements the analysis sources on top of the Gemini API.
// Each call inlines the relevant reference-catalog rows into the prompt and
// demands structured JSON back, so the model grounds its answer in the same
// data the deterministic catalog backend uses.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/terraship/carbonroute/internal/pkg/logger"
	"github.com/terraship/carbonroute/internal/pkg/store"
	"google.golang.org/genai"
)

const maxRetryElapsed = 45 * time.Second

type Service struct {
	client *genai.Client
	model  string
	store  store.Store
}

func NewService(ctx context.Context, apiKey, model string, store store.Store) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Service{client: client, model: model, store: store}, nil
}

// generateJSON sends one prompt and decodes the model's JSON reply into dst.
// Transient API failures are retried with exponential backoff until the
// context or retry budget expires.
func (s *Service) generateJSON(ctx context.Context, system, prompt string, dst interface{}) error {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.1),
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	var text string
	operation := func() error {
		resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
		if err != nil {
			logger.Warnf(ctx, "gemini: generate content: %s", err.Error())
			return err
		}
		text = resp.Text()
		return nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(maxRetryElapsed),
	), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("gemini: generate: %w", err)
	}

	if err := sonic.Unmarshal([]byte(text), dst); err != nil {
		return fmt.Errorf("gemini: decode model reply: %w", err)
	}
	return nil
}

func marshalForPrompt(v interface{}) string {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
