package doctext

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractPlainText(t *testing.T) {
	path := writeFile(t, "notes.md", "\n# Findings\n\nUsers want speed.\n")

	got, err := NewReader(0, 0).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Findings\n\nUsers want speed.", got)
}

func TestExtractTruncates(t *testing.T) {
	path := writeFile(t, "long.txt", strings.Repeat("a", 100))

	got, err := NewReader(0, 10).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestExtractUnsupported(t *testing.T) {
	path := writeFile(t, "deck.pptx", "binary")

	_, err := NewReader(0, 0).Extract(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtractBrokenPDF(t *testing.T) {
	path := writeFile(t, "broken.pdf", "not a pdf at all")

	_, err := NewReader(0, 0).Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := NewReader(0, 0).Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestDescriptionFromFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Consumer_Digital_Survey.pdf", "Consumer insights and behavior. digital channels. Survey-based research."},
		{"brand-tracker.pdf", "brand perception."},
		{"q3-readout.pdf", "Research findings and key insights."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DescriptionFromFileName(tt.name), tt.name)
	}
}

func TestNewReaderDefaults(t *testing.T) {
	r := NewReader(-1, 0)
	assert.Equal(t, DefaultMaxPages, r.MaxPages)
	assert.Equal(t, DefaultMaxChars, r.MaxChars)
}
