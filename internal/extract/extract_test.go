package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/research-hub/internal/llm"
	"github.com/rcliao/research-hub/internal/model"
)

const report = "Lunch was served at noon afterwards. " +
	"Most users found the new transfer flow faster than before. " +
	"Adoption of mobile payments grew 40% in one quarter. " +
	"Trust issues remain the main barrier for new customers. " +
	"Customers prefer instant confirmation after every transfer. " +
	"Weather stayed quite pleasant."

func TestKeyLearningsPicksTopSentencesInDocumentOrder(t *testing.T) {
	got := KeyLearnings(report)
	assert.Equal(t, []string{
		"Most users found the new transfer flow faster than before.",
		"Adoption of mobile payments grew 40% in one quarter.",
		"Trust issues remain the main barrier for new customers.",
		"Customers prefer instant confirmation after every transfer.",
	}, got)
}

func TestKeyLearningsShortInput(t *testing.T) {
	for _, in := range []string{"", "   ", "Too short.", "Tiny. Bits. Only here!"} {
		got := KeyLearnings(in)
		assert.NotNil(t, got, in)
		assert.Empty(t, got, in)
	}
}

func TestKeyLearningsCountsCharactersNotBytes(t *testing.T) {
	// 19 characters, 23 bytes.
	assert.Equal(t, []string{}, KeyLearnings("Ação é só um teste."))

	got := KeyLearnings("Usuários não confiam no app.")
	assert.Equal(t, []string{"Usuários não confiam no app."}, got)
}

func TestKeyLearningsIsDeterministic(t *testing.T) {
	assert.Equal(t, KeyLearnings(report), KeyLearnings(report))
	assert.LessOrEqual(t, len(KeyLearnings(strings.Repeat(report+" ", 5))), MaxLearnings)
}

func TestSanitize(t *testing.T) {
	f := Sanitize(Fields{
		Title:   "  Title ",
		Country: "peru",
		Squad:   "external",
		Tags:    []string{" csat ", "", "null"},
	})
	assert.Equal(t, "Title", f.Title)
	assert.Empty(t, f.Country)
	assert.Empty(t, f.Squad)
	assert.Equal(t, []string{"csat"}, f.Tags)

	f = Sanitize(Fields{Country: "mexico", Squad: "tout"})
	assert.Equal(t, "mexico", f.Country)
	assert.Equal(t, "tout", f.Squad)
}

func TestParseReply(t *testing.T) {
	f, err := ParseReply("```json\n{\"title\": \"Pix study\", \"date\": null, \"tags\": [\"pix\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Pix study", f.Title)
	assert.Empty(t, f.Date)
	assert.Equal(t, []string{"pix"}, f.Tags)

	_, err = ParseReply(strings.Repeat("x", 500))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse AI response")
	assert.Less(t, len(err.Error()), 250)
}

func TestModelRequest(t *testing.T) {
	var got llm.Request
	m := NewModel(llm.Func(func(_ context.Context, req llm.Request) (string, error) {
		got = req
		return `{"title":"From model"}`, nil
	}), 10)

	f, err := m.Extract(context.Background(), Request{Text: "abcdefghijklmnopqrstuvwxyz"})
	require.NoError(t, err)
	assert.Equal(t, "From model", f.Title)
	assert.Equal(t, float32(0.3), got.Temperature)
	assert.Equal(t, int32(1024), got.MaxTokens)
	assert.Contains(t, got.Prompt, "abcdefghij\n")
	assert.NotContains(t, got.Prompt, "abcdefghijk")

	_, err = m.Extract(context.Background(), Request{Title: "Only a title"})
	require.NoError(t, err)
	assert.Contains(t, got.Prompt, `Research title: "Only a title"`)
}

type fakeExtractor struct {
	fields Fields
	err    error
}

func (f fakeExtractor) Extract(context.Context, Request) (Fields, error) { return f.fields, f.err }

func TestAutoFillMergesModelFields(t *testing.T) {
	svc := NewService(fakeExtractor{fields: Fields{
		Title:        "Model title",
		Description:  "Model description.",
		Date:         "2026-01-02",
		Country:      "colombia",
		Squad:        "tout",
		Methodology:  "Survey, n=300",
		Team:         []string{"Fernanda Mujica"},
		Tags:         []string{"csat"},
		KeyLearnings: []string{"Speed drives satisfaction."},
	}}, nil)

	current := model.Input{
		Title:   "Typed title",
		Country: model.CountryBrasil,
		Squad:   model.SquadPtr(model.SquadTroy),
		Team:    []string{""},
		Tags:    []string{"old"},
	}
	res := svc.AutoFill(context.Background(), Request{Text: "doc"}, current)

	assert.Equal(t, SourceModel, res.Source)
	assert.Empty(t, res.Warning)
	assert.Equal(t, "Typed title", res.Input.Title)
	assert.Equal(t, "Model description.", res.Input.Description)
	assert.Equal(t, "2026-01-02", res.Input.Date)
	assert.Equal(t, model.CountryColombia, res.Input.Country)
	assert.Equal(t, model.SquadTroy, *res.Input.Squad)
	assert.Equal(t, "Survey, n=300", res.Input.Methodology)
	assert.Equal(t, []string{"Fernanda Mujica"}, res.Input.Team)
	assert.Equal(t, []string{"csat"}, res.Input.Tags)
	assert.Equal(t, []string{"Speed drives satisfaction."}, res.Input.KeyLearnings)
}

func TestAutoFillKeepsTypedTeam(t *testing.T) {
	svc := NewService(fakeExtractor{fields: Fields{Team: []string{"Someone"}, Tags: []string{"x"}}}, nil)
	res := svc.AutoFill(context.Background(), Request{}, model.Input{Team: []string{"Yas"}})
	assert.Equal(t, []string{"Yas"}, res.Input.Team)
}

func TestAutoFillWarnsOnEmptyModelReply(t *testing.T) {
	svc := NewService(fakeExtractor{}, nil)
	res := svc.AutoFill(context.Background(), Request{Text: "doc"}, model.Input{})
	assert.Equal(t, SourceModel, res.Source)
	assert.NotEmpty(t, res.Warning)
}

func TestAutoFillFallsBackOnError(t *testing.T) {
	svc := NewService(fakeExtractor{err: errors.New("quota exhausted")}, nil)
	res := svc.AutoFill(context.Background(), Request{Text: report}, model.Input{})

	assert.Equal(t, SourceLocal, res.Source)
	assert.Contains(t, res.Warning, "quota exhausted")
	assert.Len(t, res.Input.KeyLearnings, MaxLearnings)
}

func TestAutoFillNoKey(t *testing.T) {
	svc := NewService(fakeExtractor{err: ErrNoAPIKey}, nil)
	res := svc.AutoFill(context.Background(), Request{Text: report}, model.Input{})
	assert.Equal(t, SourceLocal, res.Source)
	assert.Contains(t, res.Warning, "No API key")
}

func TestAutoFillLocalUsesDescriptionAndMethodology(t *testing.T) {
	svc := NewService(nil, nil)
	current := model.Input{
		Description: "Most customers found the savings goals screen confusing on mobile",
		Methodology: "Usability testing with 12 participants in Bogota last month",
	}
	res := svc.AutoFill(context.Background(), Request{}, current)

	assert.Equal(t, SourceLocal, res.Source)
	assert.Empty(t, res.Warning)
	assert.Equal(t, []string{
		"Most customers found the savings goals screen confusing on mobile.",
		"Usability testing with 12 participants in Bogota last month",
	}, res.Input.KeyLearnings)
}

func TestAutoFillNothingToUse(t *testing.T) {
	svc := NewService(nil, nil)
	current := model.Input{Title: "Keep me"}
	res := svc.AutoFill(context.Background(), Request{}, current)

	assert.Equal(t, SourceNone, res.Source)
	assert.NotEmpty(t, res.Warning)
	assert.Equal(t, current, res.Input)
}
