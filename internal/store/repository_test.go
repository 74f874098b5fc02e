package store

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/research-hub/internal/model"
	"github.com/rcliao/research-hub/internal/slot"
)

var fixedNow = time.Date(2026, 3, 4, 12, 30, 0, 0, time.UTC)

func newTestSlots(t *testing.T) *slot.SQLiteSlots {
	t.Helper()
	s, err := slot.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestRepo(t *testing.T, opts ...Option) (*Repository, *slot.SQLiteSlots) {
	t.Helper()
	s := newTestSlots(t)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(context.Background(), s, opts...), s
}

func validInput() model.Input {
	return model.Input{
		Title:        "Onboarding Interviews",
		Description:  "Why do new customers drop during signup?",
		Date:         "2026-02-10",
		Country:      model.CountryBrasil,
		Squad:        model.SquadPtr(model.SquadCrossGBA),
		Researcher:   model.StringPtr("Yas"),
		Methodology:  "User Interview, n=12",
		Team:         []string{"Yas", "Anita"},
		Tags:         []string{"onboarding", "qualitative"},
		KeyLearnings: []string{"Most users abandon at document upload."},
	}
}

func TestNewLoadsSeedWhenEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)
	all := repo.All()
	require.Len(t, all, 3)
	assert.Equal(t, "seed-001", all[0].ID)
}

func TestNewLoadsSeedWhenSlotCorrupt(t *testing.T) {
	ctx := context.Background()
	s := newTestSlots(t)
	require.NoError(t, s.Put(ctx, slot.KeyResearch, []byte("not json")))

	repo := New(ctx, s)
	assert.Len(t, repo.All(), 3)
}

func TestNewLoadsSeedWhenSlotHoldsEmptyList(t *testing.T) {
	ctx := context.Background()
	s := newTestSlots(t)
	require.NoError(t, s.Put(ctx, slot.KeyResearch, []byte("[]")))

	repo := New(ctx, s)
	assert.Len(t, repo.All(), 3)
}

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	in := validInput()
	got, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.After(fixedNow))

	found, ok := repo.Lookup(got.ID)
	require.True(t, ok)

	want := fromInput(Normalize(in))
	want.ID = got.ID
	want.CreatedAt = got.CreatedAt
	assert.Equal(t, want, found)
}

func TestCreatePrepends(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	a, err := repo.Create(ctx, validInput())
	require.NoError(t, err)
	in := validInput()
	in.Title = "Second"
	b, err := repo.Create(ctx, in)
	require.NoError(t, err)

	all := repo.All()
	require.Len(t, all, 5)
	assert.Equal(t, b.ID, all[0].ID)
	assert.Equal(t, a.ID, all[1].ID)
	assert.NotEqual(t, a.ID, b.ID, "ids created in the same millisecond must differ")
}

func TestCreateTrimsInput(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	in := validInput()
	in.Title = "  My Study  "
	in.Team = []string{" Yas ", "", "   "}
	in.Tags = []string{"", "csat"}
	in.Researcher = model.StringPtr("   ")
	in.UsefulLinks = []model.UsefulLink{{Name: "deck", URL: ""}, {Name: "doc", URL: "https://x"}}

	got, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "My Study", got.Title)
	assert.Equal(t, []string{"Yas"}, got.Team)
	assert.Equal(t, []string{"csat"}, got.Tags)
	assert.Nil(t, got.Researcher)
	assert.Equal(t, []model.UsefulLink{{Name: "doc", URL: "https://x"}}, got.UsefulLinks)
}

func TestScreenshotsCappedAtThree(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	in := validInput()
	in.PPTScreenshots = []string{"data:a", "data:b", "data:c", "data:d"}
	got, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"data:a", "data:b", "data:c"}, got.PPTScreenshots)

	more := []string{"data:1", "data:2", "data:3", "data:4", "data:5"}
	require.True(t, repo.Update(ctx, got.ID, model.Patch{PPTScreenshots: &more}))
	updated, _ := repo.Lookup(got.ID)
	assert.Len(t, updated.PPTScreenshots, model.MaxScreenshots)
}

func TestCreateInvalidLeavesCollection(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	in := validInput()
	in.Title = "   "
	in.Tags = []string{" "}
	_, err := repo.Create(ctx, in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "tags")
	assert.Len(t, repo.All(), 3)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	created, err := repo.Create(ctx, validInput())
	require.NoError(t, err)

	title := "Renamed"
	tags := []string{"renamed"}
	ok := repo.Update(ctx, created.ID, model.Patch{Title: &title, Tags: &tags})
	require.True(t, ok)

	got, _ := repo.Lookup(created.ID)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, []string{"renamed"}, got.Tags)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestUpdateClearsOptionalField(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	created, err := repo.Create(ctx, validInput())
	require.NoError(t, err)

	empty := model.Squad("")
	repo.Update(ctx, created.ID, model.Patch{Squad: &empty})
	got, _ := repo.Lookup(created.ID)
	assert.Nil(t, got.Squad)
}

func TestUpdateEmptyPatchIsNoop(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	for _, rec := range repo.All() {
		assert.True(t, repo.Update(ctx, rec.ID, model.Patch{}))
		got, _ := repo.Lookup(rec.ID)
		assert.Equal(t, rec, got)
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	title := "x"
	assert.NotPanics(t, func() {
		assert.False(t, repo.Update(ctx, "nonexistent-id", model.Patch{Title: &title}))
	})
	assert.Len(t, repo.All(), 3)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	for _, rec := range repo.All() {
		assert.True(t, repo.Delete(ctx, rec.ID))
		_, ok := repo.Lookup(rec.ID)
		assert.False(t, ok)
	}
	assert.Empty(t, repo.All())
	assert.False(t, repo.Delete(ctx, "seed-001"))
}

func TestLookupReturnsCopy(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, ok := repo.Lookup("seed-001")
	require.True(t, ok)
	got.Tags[0] = "mutated"
	*got.Squad = model.SquadOther

	again, _ := repo.Lookup("seed-001")
	assert.Equal(t, "CSAT", again.Tags[0])
	assert.Equal(t, model.SquadTout, *again.Squad)
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, s := newTestRepo(t)

	_, err := repo.Create(ctx, validInput())
	require.NoError(t, err)
	repo.Delete(ctx, "seed-002")

	reloaded := New(ctx, s)
	assert.Equal(t, repo.All(), reloaded.All())
}

func TestDeletingEverythingReseedsOnReload(t *testing.T) {
	ctx := context.Background()
	repo, s := newTestRepo(t)
	for _, rec := range repo.All() {
		repo.Delete(ctx, rec.ID)
	}

	reloaded := New(ctx, s)
	assert.Len(t, reloaded.All(), 3)
}

func TestWriteFailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	mem := slot.NewMemory(64, nil)
	repo := New(ctx, mem, WithClock(func() time.Time { return fixedNow }))

	created, err := repo.Create(ctx, validInput())
	require.NoError(t, err)

	// The write was rejected, but the session still sees the record.
	_, ok := repo.Lookup(created.ID)
	assert.True(t, ok)
	_, stored, _ := mem.Get(ctx, slot.KeyResearch)
	assert.False(t, stored)
}

func TestTitlesAreFolded(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	in := validInput()
	in.Title = " My Study "
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)

	_, ok := repo.Titles()["my study"]
	assert.True(t, ok)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	repo, s := newTestRepo(t)
	repo.Create(ctx, validInput())

	repo.Reset(ctx)
	assert.Len(t, repo.All(), 3)
	assert.Len(t, New(ctx, s).All(), 3)
}

func TestExportImportMerge(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestRepo(t)

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst, _ := newTestRepo(t, WithSeed([]model.Research{}))
	require.Empty(t, dst.All())

	n, err := dst.Import(ctx, &buf, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got := dst.All()
	require.Len(t, got, 3)
	for i, rec := range src.All() {
		assert.Equal(t, rec.Title, got[i].Title)
		assert.Equal(t, rec.CreatedAt, got[i].CreatedAt)
		assert.NotEqual(t, rec.ID, got[i].ID)
	}
}

func TestImportNormalizesRecords(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t, WithSeed([]model.Research{}))

	rec := model.ResearchFrom(validInput())
	rec.ID = "research-imported"
	rec.CreatedAt = fixedNow.Add(-time.Hour)
	rec.Title = "  Padded Title  "
	rec.Tags = []string{" ", "pix"}
	b, err := json.Marshal([]model.Research{rec})
	require.NoError(t, err)

	_, err = repo.Import(ctx, bytes.NewReader(b), ImportReplace)
	require.NoError(t, err)

	got, ok := repo.Lookup("research-imported")
	require.True(t, ok)
	assert.Equal(t, "Padded Title", got.Title)
	assert.Equal(t, []string{"pix"}, got.Tags)
	assert.Equal(t, rec.CreatedAt, got.CreatedAt)
}

func TestImportReplaceRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	rec := repo.All()[0]
	b, err := json.Marshal([]model.Research{rec, rec})
	require.NoError(t, err)

	_, err = repo.Import(ctx, bytes.NewReader(b), ImportReplace)
	assert.Error(t, err)
	assert.Len(t, repo.All(), 3)
}

func TestImportRejectsInvalidRecord(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	_, err := repo.Import(ctx, bytes.NewReader([]byte(`[{"title":""}]`)), ImportMerge)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestStats(t *testing.T) {
	repo, _ := newTestRepo(t)
	st := repo.Stats()

	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 3, st.Internal)
	assert.Equal(t, 0, st.External)
	assert.Equal(t, GroupCount{Name: "Colombia", Count: 2}, st.Countries[0])
	assert.Equal(t, GroupCount{Name: "TOUT", Count: 2}, st.Squads[0])
	assert.Equal(t, GroupCount{Name: "Colombia", Count: 2}, st.Tags[0])
	assert.Equal(t, 15, st.KeyLearnings)
}
