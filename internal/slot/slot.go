// Package slot provides named, JSON-encoded storage slots with
// degrade-to-default semantics, backed by SQLite.
package slot

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// Well-known slot names.
const (
	KeyResearch          = "gba-researches"
	KeyDeletedSuggestion = "rr-suggestions-deleted"
	KeyCustomSuggestion  = "rr-suggestions-custom"
	KeySettings          = "research-hub-settings"
	KeyGeminiKey         = "gba-gemini-key"
)

// ErrQuotaExceeded is returned by a backend when a value does not fit.
var ErrQuotaExceeded = errors.New("slot quota exceeded")

// Slots is a durable key-value medium.
type Slots interface {
	// Get returns the raw value of key. ok is false when the slot is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put overwrites the slot.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the stored slot names.
	Keys(ctx context.Context) ([]string, error)

	// Logger returns the logger used for swallowed failures.
	Logger() *zap.Logger
}

// Load decodes the slot into a T. A missing, unreadable or malformed slot
// yields fallback; the failure is logged, never returned.
func Load[T any](ctx context.Context, s Slots, key string, fallback T) T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		s.Logger().Warn("slot read failed, using fallback", zap.String("slot", key), zap.Error(err))
		return fallback
	}
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.Logger().Warn("slot corrupt, using fallback", zap.String("slot", key), zap.Error(err))
		return fallback
	}
	return v
}

// Save encodes value into the slot. It reports whether the write landed;
// a rejected write is logged and otherwise ignored.
func Save[T any](ctx context.Context, s Slots, key string, value T) bool {
	b, err := json.Marshal(value)
	if err != nil {
		s.Logger().Warn("slot encode failed", zap.String("slot", key), zap.Error(err))
		return false
	}
	if err := s.Put(ctx, key, b); err != nil {
		s.Logger().Warn("slot write dropped", zap.String("slot", key), zap.Int("bytes", len(b)), zap.Error(err))
		return false
	}
	return true
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
