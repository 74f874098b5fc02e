package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/research-hub/internal/model"
)

// Export writes every record as an indented JSON array.
func (r *Repository) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.All())
}

// Import stores records from an export. Merge gives every record a fresh id
// and keeps its createdAt; replace keeps ids as exported.
func (r *Repository) Import(ctx context.Context, rd io.Reader, mode ImportMode) (int, error) {
	var incoming []model.Research
	if err := json.NewDecoder(rd).Decode(&incoming); err != nil {
		return 0, fmt.Errorf("parse json: %w", err)
	}
	for i, rec := range incoming {
		in := Normalize(model.InputFrom(rec))
		if err := Validate(in); err != nil {
			return 0, fmt.Errorf("record %d (%q): %w", i, rec.Title, err)
		}
		next := fromInput(in)
		next.ID, next.CreatedAt = rec.ID, rec.CreatedAt
		incoming[i] = next
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch mode {
	case ImportReplace:
		seen := map[string]bool{}
		for i := range incoming {
			if incoming[i].ID == "" || seen[incoming[i].ID] {
				return 0, fmt.Errorf("record %d (%q): missing or duplicate id", i, incoming[i].Title)
			}
			seen[incoming[i].ID] = true
		}
		r.records = cloneAll(incoming)
	default:
		fresh := make([]model.Research, 0, len(incoming))
		for _, rec := range incoming {
			now := r.now().UTC().Truncate(time.Millisecond)
			rec = rec.Clone()
			rec.ID = r.newID(now)
			if rec.CreatedAt.IsZero() {
				rec.CreatedAt = now
			}
			fresh = append(fresh, rec)
		}
		r.records = append(fresh, r.records...)
	}
	r.persist(ctx)

	r.logger.Info("research imported", zap.Int("count", len(incoming)), zap.Int("mode", int(mode)))
	return len(incoming), nil
}
