// Package suggest reconciles planned studies against what has already been
// submitted, hidden or added by the user.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/research-hub/internal/model"
	"github.com/rcliao/research-hub/internal/slot"
)

// Unscheduled labels suggestions without a month.
const Unscheduled = "Unscheduled"

// Defaults for custom suggestions added without a squad or researcher.
const (
	DefaultSquad      = model.SquadCrossGBA
	DefaultResearcher = "Yas"
)

// ErrBlankTitle is returned by AddCustom when the title is empty.
var ErrBlankTitle = errors.New("suggestion title is required")

// Canonical group order. Labels outside it sort after, alphabetically.
var monthOrder = []string{
	"Jan 2026", "Feb 2026", "Mar 2026", "Apr 2026", "May 2026", "Jun 2026",
	"Q3 2026", "Q4 2026",
}

// Group is a run of pending suggestions sharing a month label.
type Group struct {
	Label string             `json:"label"`
	Items []model.Suggestion `json:"items"`
}

// CustomInput describes a user-added suggestion.
type CustomInput struct {
	Title      string
	Question   string
	Squad      model.Squad
	Researcher string
	Countries  []model.Country
	Tags       []string
	Month      string
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithClock overrides the time source used for custom ids.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

// WithLogger sets the reconciler logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// Reconciler owns the deleted-id and custom suggestion slots.
type Reconciler struct {
	mu      sync.Mutex
	slots   slot.Slots
	builtin []model.Suggestion
	deleted []string
	custom  []model.Suggestion
	now     func() time.Time
	logger  *zap.Logger
}

// New loads the user's suggestion state. Malformed slots read as empty.
func New(ctx context.Context, slots slot.Slots, builtin []model.Suggestion, opts ...Option) *Reconciler {
	r := &Reconciler{
		slots:   slots,
		builtin: builtin,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.deleted = slot.Load(ctx, slots, slot.KeyDeletedSuggestion, []string{})
	r.custom = slot.Load(ctx, slots, slot.KeyCustomSuggestion, []model.Suggestion{})
	return r
}

func (r *Reconciler) isDeleted(id string) bool {
	for _, d := range r.deleted {
		if d == id {
			return true
		}
	}
	return false
}

// all returns custom suggestions first, then the built-in ones. Caller holds mu.
func (r *Reconciler) all() []model.Suggestion {
	out := make([]model.Suggestion, 0, len(r.custom)+len(r.builtin))
	out = append(out, r.custom...)
	return append(out, r.builtin...)
}

// Pending returns suggestions that are not hidden, not yet submitted and,
// when squad is set, belong to that squad. submitted holds folded titles
// (see store.FoldTitle).
func (r *Reconciler) Pending(submitted map[string]struct{}, squad *model.Squad) []Group {
	r.mu.Lock()
	defer r.mu.Unlock()

	byLabel := map[string][]model.Suggestion{}
	var labels []string
	for _, s := range r.all() {
		if r.isDeleted(s.ID) {
			continue
		}
		if _, done := submitted[strings.ToLower(strings.TrimSpace(s.Title))]; done {
			continue
		}
		if squad != nil && s.Squad != *squad {
			continue
		}
		label := s.Month
		if label == "" {
			label = Unscheduled
		}
		if _, ok := byLabel[label]; !ok {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], cloneSuggestion(s))
	}

	sort.SliceStable(labels, func(i, j int) bool { return labelLess(labels[i], labels[j]) })

	groups := make([]Group, 0, len(labels))
	for _, l := range labels {
		groups = append(groups, Group{Label: l, Items: byLabel[l]})
	}
	return groups
}

func labelLess(a, b string) bool {
	ia, ib := rank(a), rank(b)
	switch {
	case ia < 0 && ib < 0:
		return a < b
	case ia < 0:
		return false
	case ib < 0:
		return true
	}
	return ia < ib
}

func rank(label string) int {
	for i, m := range monthOrder {
		if m == label {
			return i
		}
	}
	return -1
}

// SoftDelete hides a suggestion. Hiding twice is a no-op.
func (r *Reconciler) SoftDelete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isDeleted(id) {
		return
	}
	r.deleted = append(r.deleted, id)
	slot.Save(ctx, r.slots, slot.KeyDeletedSuggestion, r.deleted)
	r.logger.Info("suggestion hidden", zap.String("id", id))
}

// AddCustom prepends a user suggestion. Countries default to Brazil.
// Custom suggestions never carry a month unless one is given.
func (r *Reconciler) AddCustom(ctx context.Context, in CustomInput) (model.Suggestion, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Suggestion{}, ErrBlankTitle
	}
	squad := in.Squad
	if squad == "" {
		squad = DefaultSquad
	}
	if !squad.Valid() {
		return model.Suggestion{}, fmt.Errorf("unknown squad %q", in.Squad)
	}
	researcher := strings.TrimSpace(in.Researcher)
	if researcher == "" {
		researcher = DefaultResearcher
	}
	countries := append([]model.Country(nil), in.Countries...)
	if len(countries) == 0 {
		countries = []model.Country{model.CountryBrasil}
	}
	tags := append([]string{}, in.Tags...)

	r.mu.Lock()
	defer r.mu.Unlock()

	s := model.Suggestion{
		ID:         r.newID(),
		Title:      title,
		Question:   strings.TrimSpace(in.Question),
		Squad:      squad,
		Researcher: researcher,
		Countries:  countries,
		Tags:       tags,
		Month:      strings.TrimSpace(in.Month),
	}
	r.custom = append([]model.Suggestion{s}, r.custom...)
	slot.Save(ctx, r.slots, slot.KeyCustomSuggestion, r.custom)

	r.logger.Info("suggestion added", zap.String("id", s.ID), zap.String("title", s.Title))
	return cloneSuggestion(s), nil
}

// newID derives an id from the clock, bumping it until it is unused.
// Caller holds mu.
func (r *Reconciler) newID() string {
	ms := r.now().UnixMilli()
	for {
		id := fmt.Sprintf("custom-%d", ms)
		if !r.exists(id) {
			return id
		}
		ms++
	}
}

func (r *Reconciler) exists(id string) bool {
	for _, s := range r.custom {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Lookup finds a built-in or custom suggestion by id, hidden or not.
func (r *Reconciler) Lookup(id string) (model.Suggestion, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.all() {
		if s.ID == id {
			return cloneSuggestion(s), true
		}
	}
	return model.Suggestion{}, false
}

// Reset forgets hidden ids and custom suggestions.
func (r *Reconciler) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleted = []string{}
	r.custom = []model.Suggestion{}
	if err := r.slots.Delete(ctx, slot.KeyDeletedSuggestion); err != nil {
		r.logger.Warn("clear hidden suggestions failed", zap.Error(err))
	}
	if err := r.slots.Delete(ctx, slot.KeyCustomSuggestion); err != nil {
		r.logger.Warn("clear custom suggestions failed", zap.Error(err))
	}
}

func cloneSuggestion(s model.Suggestion) model.Suggestion {
	s.Countries = slices.Clone(s.Countries)
	s.Tags = slices.Clone(s.Tags)
	return s
}
