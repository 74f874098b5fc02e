package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := New("warn", format)
		require.NoError(t, err, format)
		assert.True(t, l.Core().Enabled(zap.WarnLevel))
		assert.False(t, l.Core().Enabled(zap.InfoLevel))
	}
}

func TestNewBadLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)
}
