package cli

import (
	"context"

	"github.com/rcliao/research-hub/internal/doctext"
	"github.com/rcliao/research-hub/internal/extract"
	"github.com/rcliao/research-hub/internal/llm"
	"github.com/rcliao/research-hub/internal/model"
)

// generator returns a Gemini client for the stored API key. Without a key
// (or a client) every call fails with the construction error, so callers
// that can fall back still do.
func (a *app) generator(ctx context.Context, modelName string) llm.Generator {
	g, err := llm.NewGemini(ctx, a.settings.GeminiKey(ctx), modelName)
	if err != nil {
		return llm.Func(func(context.Context, llm.Request) (string, error) { return "", err })
	}
	return g
}

// autoFill reads the document at path and merges what it finds into in.
func (a *app) autoFill(ctx context.Context, path string, in model.Input) (extract.Result, error) {
	text, err := doctext.NewReader(a.cfg.Doc.MaxPages, a.cfg.Doc.MaxChars).Extract(ctx, path)
	if err != nil {
		return extract.Result{}, err
	}
	if in.Description == "" && text == "" {
		in.Description = doctext.DescriptionFromFileName(path)
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.AI.Timeout)
	defer cancel()

	svc := extract.NewService(extract.NewModel(a.generator(ctx, a.cfg.AI.Model), a.cfg.AI.MaxInputChars), a.logger)
	return svc.AutoFill(ctx, extract.Request{Text: text, Title: in.Title}, in), nil
}
