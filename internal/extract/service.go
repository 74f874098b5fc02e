package extract

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/research-hub/internal/model"
)

// Source says where auto-filled values came from.
type Source string

const (
	SourceModel Source = "ai"
	SourceLocal Source = "local"
	SourceNone  Source = "none"
)

// Result is the outcome of AutoFill. Warning is set when something went
// wrong; Input is always usable.
type Result struct {
	Input   model.Input `json:"input"`
	Source  Source      `json:"source"`
	Warning string      `json:"warning,omitempty"`
}

// Service fills in a submission from document text.
type Service struct {
	ext    Extractor
	logger *zap.Logger
}

// NewService returns a service using ext. A nil ext always takes the
// local path.
func NewService(ext Extractor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ext: ext, logger: logger}
}

// AutoFill merges extracted fields into current. It never fails: problems
// are reported in Result.Warning and the local heuristic is used instead.
func (s *Service) AutoFill(ctx context.Context, req Request, current model.Input) Result {
	if s.ext != nil {
		f, err := s.ext.Extract(ctx, req)
		if err == nil {
			f = Sanitize(f)
			res := Result{Input: Merge(current, f), Source: SourceModel}
			if f.Empty() {
				res.Warning = "AI returned no content. Try uploading a text-based PDF."
			}
			return res
		}

		s.logger.Warn("model extraction failed, using local heuristic", zap.Error(err))
		res := s.local(req, current)
		if errors.Is(err, ErrNoAPIKey) {
			res.Warning = joinWarnings("No API key configured; used local extraction.", res.Warning)
		} else {
			res.Warning = joinWarnings("AI error: "+err.Error(), res.Warning)
		}
		return res
	}
	return s.local(req, current)
}

func (s *Service) local(req Request, current model.Input) Result {
	source := strings.TrimSpace(req.Text)
	if source == "" {
		var parts []string
		for _, p := range []string{current.Description, current.Methodology} {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		source = strings.Join(parts, ". ")
	}

	learnings := KeyLearnings(source)
	if len(learnings) == 0 {
		return Result{
			Input:   current,
			Source:  SourceNone,
			Warning: "Could not extract learnings. Try uploading a text-based PDF or add a description first.",
		}
	}
	current.KeyLearnings = learnings
	return Result{Input: current, Source: SourceLocal}
}

// Merge applies f to in. Free-text fields only fill blanks, country is
// replaced when valid, squad only when unset, team only when empty, and
// tags and key learnings are replaced outright.
func Merge(in model.Input, f Fields) model.Input {
	if f.Title != "" && strings.TrimSpace(in.Title) == "" {
		in.Title = f.Title
	}
	if f.Description != "" && strings.TrimSpace(in.Description) == "" {
		in.Description = f.Description
	}
	if f.Date != "" && strings.TrimSpace(in.Date) == "" {
		in.Date = f.Date
	}
	if c := model.Country(f.Country); c.Valid() {
		in.Country = c
	}
	if sq := model.Squad(f.Squad); sq.Valid() && in.Squad == nil {
		in.Squad = &sq
	}
	if f.Methodology != "" && strings.TrimSpace(in.Methodology) == "" {
		in.Methodology = f.Methodology
	}
	if len(f.Team) > 0 && blank(in.Team) {
		in.Team = append([]string(nil), f.Team...)
	}
	if len(f.Tags) > 0 {
		in.Tags = append([]string(nil), f.Tags...)
	}
	if len(f.KeyLearnings) > 0 {
		in.KeyLearnings = append([]string(nil), f.KeyLearnings...)
	}
	return in
}

func blank(ss []string) bool {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

func joinWarnings(a, b string) string {
	if b == "" {
		return a
	}
	return a + " " + b
}
