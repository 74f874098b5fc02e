package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/research-hub/internal/model"
)

func TestResearchSeed(t *testing.T) {
	recs := Research()
	require.Len(t, recs, 3)

	var countries []model.Country
	for _, r := range recs {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Title)
		assert.False(t, r.CreatedAt.IsZero(), "createdAt for %s", r.ID)
		assert.True(t, r.Country.Valid(), "country for %s", r.ID)
		countries = append(countries, r.Country)
	}
	assert.Equal(t, []model.Country{model.CountryMexico, model.CountryColombia, model.CountryColombia}, countries)
	require.NotNil(t, recs[0].Squad)
	assert.Equal(t, model.SquadTout, *recs[0].Squad)
	assert.Nil(t, recs[2].Researcher)
}

func TestResearchReturnsFreshCopies(t *testing.T) {
	a := Research()
	a[0].Title = "changed"
	b := Research()
	assert.NotEqual(t, "changed", b[0].Title)
}

func TestSuggestionsSeed(t *testing.T) {
	sugs := Suggestions()
	require.Len(t, sugs, 37)

	seen := map[string]bool{}
	for _, s := range sugs {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.True(t, s.Squad.Valid(), "squad for %s", s.ID)
		assert.NotEmpty(t, s.Countries, "countries for %s", s.ID)
		assert.NotEmpty(t, s.Month, "month for %s", s.ID)
	}
	assert.Equal(t, "Global Keys Experience", sugs[0].Title)
}
