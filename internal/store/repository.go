package store

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/rcliao/research-hub/internal/model"
	"github.com/rcliao/research-hub/internal/seed"
	"github.com/rcliao/research-hub/internal/slot"
)

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for ids and createdAt.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithSeed overrides the records used when the slot is empty.
func WithSeed(records []model.Research) Option {
	return func(r *Repository) { r.seed = func() []model.Research { return cloneAll(records) } }
}

// WithLogger sets the repository logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// Repository implements Store over a slot.
type Repository struct {
	mu      sync.Mutex
	slots   slot.Slots
	records []model.Research
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
	seed    func() []model.Research
	logger  *zap.Logger
}

var _ Store = (*Repository)(nil)

// New loads the collection from slots, falling back to the seed studies
// when the slot is missing, corrupt or empty.
func New(ctx context.Context, slots slot.Slots, opts ...Option) *Repository {
	r := &Repository{
		slots:   slots,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     time.Now,
		seed:    seed.Research,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.records = slot.Load(ctx, slots, slot.KeyResearch, []model.Research(nil))
	if len(r.records) == 0 {
		r.logger.Debug("research slot empty, loading seed studies")
		r.records = r.seed()
	}
	return r
}

func (r *Repository) newID(now time.Time) string {
	for {
		id := "research-" + strings.ToLower(ulid.MustNew(ulid.Timestamp(now), r.entropy).String())
		if r.indexOf(id) < 0 {
			return id
		}
	}
}

func (r *Repository) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole collection. Caller holds mu.
func (r *Repository) persist(ctx context.Context) {
	slot.Save(ctx, r.slots, slot.KeyResearch, r.records)
}

func (r *Repository) Create(ctx context.Context, in model.Input) (model.Research, error) {
	in = Normalize(in)
	if err := Validate(in); err != nil {
		return model.Research{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC().Truncate(time.Millisecond)
	rec := fromInput(in)
	rec.ID = r.newID(now)
	rec.CreatedAt = now

	r.records = append([]model.Research{rec}, r.records...)
	r.persist(ctx)

	r.logger.Info("research created", zap.String("id", rec.ID), zap.String("title", rec.Title))
	return rec.Clone(), nil
}

func (r *Repository) Update(ctx context.Context, id string, p model.Patch) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug("update on unknown research ignored", zap.String("id", id))
		return false
	}
	if p.Empty() {
		return true
	}

	rec := p.Apply(r.records[i])
	next := fromInput(Normalize(model.InputFrom(rec)))
	next.ID, next.CreatedAt = rec.ID, rec.CreatedAt
	r.records[i] = next
	r.persist(ctx)

	r.logger.Info("research updated", zap.String("id", id))
	return true
}

func (r *Repository) Delete(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug("delete on unknown research ignored", zap.String("id", id))
		return false
	}

	r.records = append(r.records[:i:i], r.records[i+1:]...)
	r.persist(ctx)

	r.logger.Info("research deleted", zap.String("id", id))
	return true
}

func (r *Repository) Lookup(id string) (model.Research, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Research{}, false
	}
	return r.records[i].Clone(), true
}

func (r *Repository) All() []model.Research {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.records)
}

// Len returns the number of records.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Titles returns the set of trimmed, case-folded titles.
func (r *Repository) Titles() map[string]struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	titles := make(map[string]struct{}, len(r.records))
	for _, rec := range r.records {
		titles[FoldTitle(rec.Title)] = struct{}{}
	}
	return titles
}

// Reset restores the seed studies and persists them.
func (r *Repository) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = r.seed()
	r.persist(ctx)
	r.logger.Info("research reset to seed", zap.Int("count", len(r.records)))
}

// FoldTitle is the comparison key used to match titles.
func FoldTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func fromInput(in model.Input) model.Research {
	return model.ResearchFrom(in)
}

func cloneAll(records []model.Research) []model.Research {
	out := make([]model.Research, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}
