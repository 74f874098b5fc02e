// Package insights writes cross-country analyses of the catalog with a
// language model.
package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/research-hub/internal/llm"
	"github.com/rcliao/research-hub/internal/model"
)

var (
	// ErrNoResearch is returned when no study matches the request.
	ErrNoResearch = errors.New("no research found")
	// ErrTooFewCountries is returned by Compare with fewer than two countries.
	ErrTooFewCountries = errors.New("select at least two countries to compare")
)

const systemPrompt = "You are a senior UX research analyst at Nubank. Write in clear, professional markdown."

// Source supplies the studies to analyse.
type Source interface {
	All() []model.Research
}

// Analyst builds prompts from the catalog and asks the model for markdown.
type Analyst struct {
	src    Source
	gen    llm.Generator
	budget int
	logger *zap.Logger
}

// New returns an Analyst. budget is the context size in characters.
func New(src Source, gen llm.Generator, budget int, logger *zap.Logger) *Analyst {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyst{src: src, gen: gen, budget: budget, logger: logger}
}

// Summary writes key themes, patterns and recommendations for one country.
func (a *Analyst) Summary(ctx context.Context, country model.Country) (string, error) {
	pack := BuildContext(a.src.All(), []model.Country{country}, a.budget)
	if pack.Empty() {
		return "", fmt.Errorf("%s: %w", country.Label(), ErrNoResearch)
	}

	prompt := fmt.Sprintf(`You are a senior UX research analyst at Nubank. Analyze all the research below for %s and provide:

1. **Key Themes**: The main themes that emerge across all studies
2. **Patterns & Trends**: Recurring patterns, pain points, and opportunities
3. **Strategic Recommendations**: Actionable recommendations based on the evidence

%s

Write in a clear, professional tone. Use markdown formatting. Be specific and data-backed where possible.`, country.Label(), pack)

	return a.generate(ctx, "summary", prompt, pack)
}

// Compare contrasts findings across countries, optionally around a topic.
func (a *Analyst) Compare(ctx context.Context, countries []model.Country, topic string) (string, error) {
	if len(countries) < 2 {
		return "", ErrTooFewCountries
	}
	pack := BuildContext(a.src.All(), countries, a.budget)
	if pack.Empty() {
		return "", fmt.Errorf("selected countries: %w", ErrNoResearch)
	}

	var focus, related string
	if topic = strings.TrimSpace(topic); topic != "" {
		focus = fmt.Sprintf(" focusing on the topic: %q", topic)
		related = fmt.Sprintf(" related to %q", topic)
	}
	prompt := fmt.Sprintf(`You are a senior UX research analyst at Nubank. Compare research findings across countries%s.

Create a comparative analysis with:
1. **Overview**: Brief summary of research in each country
2. **Comparative Table**: A markdown table comparing key findings by country%s
3. **Unique Insights**: What's unique to each country
4. **Cross-Country Patterns**: What's consistent across all countries
5. **Recommendations**: How to leverage learnings globally

%s

Write in a clear, professional tone. Use markdown tables where helpful. Be specific.`, focus, related, pack)

	return a.generate(ctx, "compare", prompt, pack)
}

func (a *Analyst) generate(ctx context.Context, mode, prompt string, pack *Pack) (string, error) {
	a.logger.Debug("requesting analysis", zap.String("mode", mode), zap.Int("context_chars", pack.Used))

	text, err := a.gen.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      prompt,
		Temperature: 0.4,
		MaxTokens:   2048,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", mode, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: AI returned no content", mode)
	}
	return text, nil
}
