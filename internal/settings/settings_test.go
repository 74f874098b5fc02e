package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/research-hub/internal/slot"
)

func TestLoadDefaults(t *testing.T) {
	m := New(slot.NewMemory(0, nil), nil)
	s := m.Load(context.Background())

	assert.Len(t, s.Squads, 9)
	assert.Contains(t, s.Squads, "Troy")
	assert.Len(t, s.Countries, 5)
	assert.Equal(t, "Brazil", s.Countries[0].Name)
	assert.Len(t, s.Methodologies, 10)
	assert.Empty(t, s.GeminiAPIKey)
}

func TestCorruptSlotYieldsDefaults(t *testing.T) {
	ctx := context.Background()
	mem := slot.NewMemory(0, nil)
	require.NoError(t, mem.Put(ctx, slot.KeySettings, []byte("{bad")))

	assert.Equal(t, Defaults(), New(mem, nil).Load(ctx))
}

func TestSaveAndReset(t *testing.T) {
	ctx := context.Background()
	m := New(slot.NewMemory(0, nil), nil)

	s := m.Load(ctx)
	s.Researchers = []string{"Only Me"}
	require.True(t, m.Save(ctx, s))
	assert.Equal(t, []string{"Only Me"}, m.Load(ctx).Researchers)

	m.Reset(ctx)
	assert.Equal(t, Defaults(), m.Load(ctx))
}

func TestSquadPartition(t *testing.T) {
	ctx := context.Background()
	m := New(slot.NewMemory(0, nil), nil)

	assert.Equal(t, []string{"External", "Other"}, m.ExternalSquads(ctx))
	assert.Len(t, m.GBASquads(ctx), 7)
	assert.NotContains(t, m.GBASquads(ctx), "Other")
}

func TestCountryFlags(t *testing.T) {
	flags := New(slot.NewMemory(0, nil), nil).CountryFlags(context.Background())
	assert.Equal(t, "🇨🇴", flags["Colombia"])
	assert.Len(t, flags, 5)
}

func TestGeminiKey(t *testing.T) {
	ctx := context.Background()
	mem := slot.NewMemory(0, nil)
	m := New(mem, nil)

	assert.Empty(t, m.GeminiKey(ctx))

	require.NoError(t, mem.Put(ctx, slot.KeyGeminiKey, []byte(" legacy-key\n")))
	assert.Equal(t, "legacy-key", m.GeminiKey(ctx))

	require.True(t, m.SetAPIKey(ctx, "  new-key  "))
	assert.Equal(t, "new-key", m.GeminiKey(ctx))
}

func TestPickerConfig(t *testing.T) {
	ctx := context.Background()
	m := New(slot.NewMemory(0, nil), nil)
	assert.Nil(t, m.PickerConfig(ctx))

	s := m.Load(ctx)
	s.GoogleClientID = "client"
	m.Save(ctx, s)
	assert.Nil(t, m.PickerConfig(ctx), "both values are required")

	s.GooglePickerAPIKey = " key "
	m.Save(ctx, s)
	assert.Equal(t, &PickerConfig{ClientID: "client", APIKey: "key"}, m.PickerConfig(ctx))
}
