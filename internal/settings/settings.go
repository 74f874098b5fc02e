// Package settings manages the user-editable lists and integration keys.
package settings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/research-hub/internal/model"
	"github.com/rcliao/research-hub/internal/slot"
)

// DefaultMethodologies seed the methodology picker.
var DefaultMethodologies = []string{
	"Usability Testing",
	"User Interview",
	"Survey",
	"Card Sorting",
	"A/B Testing",
	"Diary Study",
	"Heuristic Evaluation",
	"Focus Group",
	"Contextual Inquiry",
	"Tree Testing",
}

// Defaults returns a fresh copy of the built-in settings.
func Defaults() model.Settings {
	s := model.Settings{
		Researchers:   append([]string(nil), model.Researchers...),
		Methodologies: append([]string(nil), DefaultMethodologies...),
	}
	for _, sq := range model.Squads {
		label := sq.Label()
		if sq == model.SquadTroy {
			label = "Troy"
		}
		s.Squads = append(s.Squads, label)
	}
	for _, c := range model.Countries {
		s.Countries = append(s.Countries, model.CountryOption{Name: c.Label(), Flag: model.CountryEmoji[c]})
	}
	return s
}

// external squad names as they appear in the settings list.
func isExternalName(name string) bool {
	return name == model.SquadExternal.Label() || name == model.SquadOther.Label()
}

// Manager reads and writes settings through a slot.
type Manager struct {
	slots  slot.Slots
	logger *zap.Logger
}

// New returns a Manager over slots.
func New(slots slot.Slots, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{slots: slots, logger: logger}
}

// Load returns the stored settings, or the defaults when none are stored
// or the slot is unreadable.
func (m *Manager) Load(ctx context.Context) model.Settings {
	return slot.Load(ctx, m.slots, slot.KeySettings, Defaults())
}

// Save stores s. It reports whether the write landed.
func (m *Manager) Save(ctx context.Context, s model.Settings) bool {
	ok := slot.Save(ctx, m.slots, slot.KeySettings, s)
	if ok {
		m.logger.Info("settings saved")
	}
	return ok
}

// Reset restores the defaults.
func (m *Manager) Reset(ctx context.Context) model.Settings {
	d := Defaults()
	m.Save(ctx, d)
	return d
}

// GBASquads lists the internal squads.
func (m *Manager) GBASquads(ctx context.Context) []string {
	var out []string
	for _, s := range m.Load(ctx).Squads {
		if !isExternalName(s) {
			out = append(out, s)
		}
	}
	return out
}

// ExternalSquads lists the catch-all external squads.
func (m *Manager) ExternalSquads(ctx context.Context) []string {
	var out []string
	for _, s := range m.Load(ctx).Squads {
		if isExternalName(s) {
			out = append(out, s)
		}
	}
	return out
}

// CountryFlags maps each configured country name to its flag.
func (m *Manager) CountryFlags(ctx context.Context) map[string]string {
	flags := map[string]string{}
	for _, c := range m.Load(ctx).Countries {
		flags[c.Name] = c.Flag
	}
	return flags
}

// GeminiKey returns the configured API key. Keys saved by older versions
// in their own slot are still honoured.
func (m *Manager) GeminiKey(ctx context.Context) string {
	if k := strings.TrimSpace(m.Load(ctx).GeminiAPIKey); k != "" {
		return k
	}
	raw, ok, err := m.slots.Get(ctx, slot.KeyGeminiKey)
	if err != nil || !ok {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// SetAPIKey stores a trimmed Gemini key in the settings.
func (m *Manager) SetAPIKey(ctx context.Context, key string) bool {
	s := m.Load(ctx)
	s.GeminiAPIKey = strings.TrimSpace(key)
	return m.Save(ctx, s)
}

// PickerConfig is the Google Drive picker setup.
type PickerConfig struct {
	ClientID string `json:"clientId"`
	APIKey   string `json:"apiKey"`
}

// PickerConfig returns the picker setup, or nil unless both values are set.
func (m *Manager) PickerConfig(ctx context.Context) *PickerConfig {
	s := m.Load(ctx)
	id, key := strings.TrimSpace(s.GoogleClientID), strings.TrimSpace(s.GooglePickerAPIKey)
	if id == "" || key == "" {
		return nil
	}
	return &PickerConfig{ClientID: id, APIKey: key}
}
