package core

import (
	"context"
	"fmt"
	"io"

	"github.com/JonMunkholm/runsheet/internal/roster"
	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// ImportResult reports a roster import. Acts, Days and Errors mirror the
// ingest output; Acts carry the ids assigned in the project when Applied.
type ImportResult struct {
	Acts          []timetable.ActRecord `json:"acts"`
	Days          []string              `json:"days"`
	Errors        []string              `json:"errors"`
	Issues        []roster.Issue        `json:"issues"`
	Applied       bool                  `json:"applied"`
	UnknownDays   []string              `json:"unknownDays"`
	OrphanedSlots []timetable.SlotRef   `json:"orphanedSlots"`
	Project       timetable.Project     `json:"project"`
}

// ImportCSV ingests a roster CSV and replaces the project's acts with it.
//
// The roster is applied when ingestion produced at least one act or raised
// no issue at all; a file that yields nothing but errors leaves the project
// untouched. Either way the issues are returned, not treated as failure.
func (s *Service) ImportCSV(ctx context.Context, id string, r io.Reader) (ImportResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return ImportResult{}, err
	}
	defer s.limiter.Release()

	data, err := s.readCSV(r)
	if err != nil {
		return ImportResult{}, err
	}
	res := roster.ParseBytes(data)

	unlock := s.lock(id)
	defer unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		return ImportResult{}, err
	}

	out := ImportResult{
		Acts:        res.Acts,
		Days:        res.Days,
		Errors:      res.Messages(),
		Issues:      res.Issues,
		UnknownDays: UnknownDays(p, res.Days),
		Project:     p,
	}

	if len(res.Acts) > 0 || len(res.Issues) == 0 {
		next := ApplyRoster(p, res, s.opts.NewID)
		if err := s.store.Put(ctx, id, next); err != nil {
			return ImportResult{}, fmt.Errorf("save project %s: %w", id, err)
		}
		out.Applied = true
		out.Project = next
		out.Acts = timetable.ToRecords(next.Acts)
	}
	out.OrphanedSlots = timetable.OrphanedSlots(out.Project)

	s.logger(ctx, id, "import").Info("roster imported",
		"acts", len(res.Acts),
		"issues", len(res.Issues),
		"applied", out.Applied,
		"orphaned_slots", len(out.OrphanedSlots),
	)
	return out, nil
}

// ValidateRoster ingests a CSV without touching any project.
func (s *Service) ValidateRoster(ctx context.Context, r io.Reader) (roster.Result, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return roster.Result{}, err
	}
	defer s.limiter.Release()

	data, err := s.readCSV(r)
	if err != nil {
		return roster.Result{}, err
	}
	return roster.ParseBytes(data), nil
}

// readCSV reads at most MaxImportBytes. Longer input is ErrFileTooLarge and
// an empty body is ErrEmptyFile.
func (s *Service) readCSV(r io.Reader) ([]byte, error) {
	limit := s.opts.MaxImportBytes
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}
