// Package store provides the research record repository, persisted to a
// single slot.
package store

import (
	"context"
	"errors"
	"io"

	"github.com/rcliao/research-hub/internal/model"
)

// ErrNotFound is returned by callers that need a lookup miss as an error.
// The repository itself reports misses with a boolean.
var ErrNotFound = errors.New("research not found")

// ImportMode controls how Import treats the existing collection.
type ImportMode int

const (
	// ImportMerge prepends the imported records with fresh ids.
	ImportMerge ImportMode = iota
	// ImportReplace swaps the whole collection for the imported records.
	ImportReplace
)

// Store defines the research repository interface.
type Store interface {
	// Create validates and stores a new record. Returns the created record.
	Create(ctx context.Context, in model.Input) (model.Research, error)

	// Update merges the patch onto the record with the given id and trims
	// the result. Callers check the patch with ValidatePatch first.
	// Reports false, without error, when no such record exists.
	Update(ctx context.Context, id string, p model.Patch) bool

	// Delete removes the record. Reports false when it was not there.
	Delete(ctx context.Context, id string) bool

	// Lookup returns a copy of the record with the given id.
	Lookup(id string) (model.Research, bool)

	// All returns a copy of the collection in stored order.
	All() []model.Research

	// Export writes the collection as a JSON array.
	Export(w io.Writer) error

	// Import reads a JSON array of records. Returns how many were stored.
	Import(ctx context.Context, r io.Reader, mode ImportMode) (int, error)
}
