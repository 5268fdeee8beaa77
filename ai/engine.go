package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"steamlytics/analytics"
	"steamlytics/dataset"
)

// Engine answers free-text questions. The keyword-routed canned path
// always works; when an API key is configured the model chain is tried
// first and the canned text is the fallback.
type Engine struct {
	chain    *Chain
	analyzer *dataset.Analyzer
}

// NewEngine wires the engine to the dataset handle. An empty apiKey
// disables the model chain entirely.
func NewEngine(a *dataset.Analyzer, apiKey string) *Engine {
	return &Engine{chain: NewChain(apiKey), analyzer: a}
}

// AIEnabled reports whether the model chain is configured.
func (e *Engine) AIEnabled() bool {
	return e.chain != nil
}

// Answer resolves a question to response text. The returned category is
// the keyword route taken; enhanced is true when a model produced the
// text instead of the formatter.
func (e *Engine) Answer(ctx context.Context, question string) (analytics.Category, string, bool) {
	snap := e.analyzer.Snapshot()
	category, canned := analytics.Answer(question, snap)

	text, err := e.chain.Generate(ctx, e.buildQuestionPrompt(question, snap))
	if err != nil {
		if !errors.Is(err, ErrNoKey) {
			logrus.WithError(err).Info("Model chain unavailable, using canned analysis")
		}
		return category, canned, false
	}
	return category, text, true
}

// GenerateInsight produces a standalone insight for a topic. The
// confidence score reflects which path produced the text.
func (e *Engine) GenerateInsight(ctx context.Context, topic, insightType string) (text string, confidence float64) {
	snap := e.analyzer.Snapshot()
	_, canned := analytics.Answer(topic, snap)

	out, err := e.chain.Generate(ctx, e.buildInsightPrompt(topic, insightType, snap))
	if err != nil {
		return canned, 0.7
	}
	return out, 0.85
}

// DataContext serializes the summary blocks embedded in prompts; the same
// JSON is persisted with each saved insight.
func (e *Engine) DataContext() string {
	snap := e.analyzer.Snapshot()
	ctx := map[string]interface{}{
		"games": analytics.SummarizeGames(snap),
		"users": analytics.SummarizeUsers(snap),
	}
	data, err := json.Marshal(ctx)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func (e *Engine) buildQuestionPrompt(question string, snap *dataset.Snapshot) string {
	return fmt.Sprintf(`You are a Steam gaming analytics assistant with access to a dataset of %d games, %d users and %d review interactions.

Dataset summary:
%s

Answer the following question using the dataset summary above. Be concise, practical and data-driven. Format the answer with markdown bullet points.

Question: %s`,
		len(snap.Games), len(snap.Users), len(snap.Recommendations),
		e.DataContext(), question)
}

func (e *Engine) buildInsightPrompt(topic, insightType string, snap *dataset.Snapshot) string {
	focus := map[string]string{
		"trend":         "current Steam gaming trends, emerging patterns, market shifts and growth opportunities",
		"user_behavior": "user engagement patterns, session analytics, retention factors and monetization behavior",
		"genre":         "genre and category performance across the catalog",
		"pricing":       "pricing strategy, discount effectiveness and price-quality positioning",
	}
	f, ok := focus[insightType]
	if !ok {
		f = focus["trend"]
	}

	return fmt.Sprintf(`You are a Steam gaming market analyst working over a dataset of %d games and %d review interactions.

Dataset summary:
%s

Write a focused insight about %s, related to the topic: %s.
Reference concrete numbers from the dataset summary and keep the analysis practical.`,
		len(snap.Games), len(snap.Recommendations),
		e.DataContext(), f, topic)
}
