package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/research-hub/internal/llm"
	"github.com/rcliao/research-hub/internal/sentence"
)

// DefaultMaxInput is how much document text is sent to the model.
const DefaultMaxInput = 6000

const promptTemplate = `You are a UX research analyst at Nubank. Based on the following research material, extract structured information.

%s

Return ONLY a valid JSON object with exactly these keys (no markdown, no extra text):
{
  "title": "Research title if clearly stated, else null",
  "description": "2-3 sentence summary of what this research is about, its goal and main finding",
  "date": "Date in YYYY-MM-DD format if found, else null",
  "country": "One of: brasil, mexico, usa, colombia, global (whichever is most relevant), else null",
  "squad": "One of the exact keys: money-in, mb-account-xp, payments-assistant, troy, tout, cross-gba, payments-core-infra, if clearly mentioned, else null",
  "methodology": "Short description of research method (e.g. 'Qualitative interviews, n=20'), else null",
  "team": ["Person name 1", "Person name 2"],
  "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"],
  "keyLearnings": [
    "Concise actionable insight 1",
    "Concise actionable insight 2",
    "Concise actionable insight 3",
    "Concise actionable insight 4"
  ]
}

Rules:
- title: extract verbatim from the document if present; null if not clearly stated
- description: plain text, 2-3 sentences, no bullet points
- date: YYYY-MM-DD format only; null if not found
- country: must be exactly one of the listed values; null if unclear
- squad: must be exactly one of the listed key values; null if not mentioned
- methodology: 1 sentence; null if not found
- team: list of people names found as authors/researchers; empty array [] if none found
- tags: 4-6 lowercase short tags (e.g. "CSAT", "transfers", "Colombia", "qualitative")
- keyLearnings: 3-5 sentences, each starting with the main insight, data-backed when possible`

// Model extracts fields by prompting a language model.
type Model struct {
	gen      llm.Generator
	maxInput int
}

// NewModel wraps gen. maxInput <= 0 uses DefaultMaxInput.
func NewModel(gen llm.Generator, maxInput int) *Model {
	if maxInput <= 0 {
		maxInput = DefaultMaxInput
	}
	return &Model{gen: gen, maxInput: maxInput}
}

// Prompt builds the extraction prompt for req.
func (m *Model) Prompt(req Request) string {
	var material string
	if text := strings.TrimSpace(req.Text); text != "" {
		material = fmt.Sprintf("Research document content (first ~%d chars):\n%s", m.maxInput, sentence.Truncate(req.Text, m.maxInput))
	} else {
		material = fmt.Sprintf("Research title: %q", req.Title)
	}
	return fmt.Sprintf(promptTemplate, material)
}

func (m *Model) Extract(ctx context.Context, req Request) (Fields, error) {
	raw, err := m.gen.Generate(ctx, llm.Request{
		Prompt:      m.Prompt(req),
		Temperature: 0.3,
		MaxTokens:   1024,
		JSON:        true,
	})
	if err != nil {
		return Fields{}, err
	}
	return ParseReply(raw)
}

// ParseReply decodes the first JSON object in a model reply, tolerating
// markdown fences and surrounding prose.
func ParseReply(raw string) (Fields, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return Fields{}, fmt.Errorf("could not parse AI response: %s", sentence.Truncate(raw, 200))
	}

	var f Fields
	if err := json.Unmarshal([]byte(raw[start:end+1]), &f); err != nil {
		return Fields{}, fmt.Errorf("could not parse AI response: %s", sentence.Truncate(raw, 200))
	}
	return f, nil
}
