package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"steamlytics/monitoring"
)

var (
	// ErrNoKey means no API key is configured; callers short-circuit to
	// the canned path.
	ErrNoKey = errors.New("no api key configured")
	// ErrExhausted means every candidate model failed.
	ErrExhausted = errors.New("all models failed")
)

// DefaultModels is the ordered candidate list. Order matters: the first
// model that returns non-empty text wins.
var DefaultModels = []string{
	"models/gemini-2.0-flash",
	"models/gemini-2.0-flash-001",
	"models/gemini-pro-latest",
	"models/gemini-flash-latest",
}

// Chain tries an ordered list of models sequentially. There is no
// per-model retry and no state carries across calls: every Generate walks
// the full list again.
type Chain struct {
	Models []string
	client *Client
}

// NewChain builds a chain over the default model list. A nil chain is
// returned when the key is empty, which Generate treats as ErrNoKey.
func NewChain(apiKey string) *Chain {
	if apiKey == "" {
		return nil
	}
	return &Chain{Models: DefaultModels, client: NewClient(apiKey)}
}

// Generate returns the first successful non-empty response in model
// order, or ErrExhausted once every candidate has failed.
func (c *Chain) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", ErrNoKey
	}

	for _, model := range c.Models {
		text, err := c.client.Generate(ctx, model, prompt)
		if err != nil {
			logrus.WithError(err).WithField("model", model).Warn("Model attempt failed")
			monitoring.LLMAttemptsTotal.WithLabelValues(model, "failure").Inc()
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			logrus.WithField("model", model).Warn("Model returned empty response")
			monitoring.LLMAttemptsTotal.WithLabelValues(model, "empty").Inc()
			continue
		}
		monitoring.LLMAttemptsTotal.WithLabelValues(model, "success").Inc()
		return text, nil
	}
	return "", ErrExhausted
}
