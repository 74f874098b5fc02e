// Package doctext reads plain text out of uploaded research documents.
package doctext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/rcliao/research-hub/internal/sentence"
)

const (
	DefaultMaxPages = 20
	DefaultMaxChars = 15000
)

// ErrUnsupported is returned for file types that carry no readable text.
var ErrUnsupported = errors.New("unsupported document type")

// Reader extracts text with page and size limits.
type Reader struct {
	MaxPages int
	MaxChars int
}

// NewReader returns a Reader. Non-positive limits use the defaults.
func NewReader(maxPages, maxChars int) *Reader {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Reader{MaxPages: maxPages, MaxChars: maxChars}
}

// Extract returns the text of a .pdf, .txt or .md file.
func (r *Reader) Extract(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return r.pdfText(ctx, path)
	case ".txt", ".md", ".markdown":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return sentence.Truncate(strings.TrimSpace(string(b)), r.MaxChars), nil
	}
	return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
}

// pdfText joins the non-empty pages, one line per page.
func (r *Reader) pdfText(ctx context.Context, path string) (out string, err error) {
	// The pdf package panics on some malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			out, err = "", fmt.Errorf("read pdf %s: %v", path, p)
		}
	}()

	f, doc, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	pages := min(doc.NumPage(), r.MaxPages)
	var texts []string
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf %s page %d: %w", path, i, err)
		}
		if text = sentence.Collapse(text); text != "" {
			texts = append(texts, text)
		}
	}
	return sentence.Truncate(strings.Join(texts, "\n"), r.MaxChars), nil
}

// DescriptionFromFileName guesses a starter description from words in an
// uploaded file's name.
func DescriptionFromFileName(name string) string {
	lower := strings.ToLower(name)
	var parts []string
	for _, hint := range fileNameHints {
		if strings.Contains(lower, hint.word) {
			parts = append(parts, hint.phrase)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "Research findings and key insights")
	}
	return strings.Join(parts, ". ") + "."
}

var fileNameHints = []struct{ word, phrase string }{
	{"consumer", "Consumer insights and behavior"},
	{"digital", "digital channels"},
	{"market", "market analysis"},
	{"brand", "brand perception"},
	{"survey", "Survey-based research"},
}
