package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfkeeper/shelfkeeper-server/internal/errors"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store"
)

// Mismatch describes one book whose location_id disagrees with the leaf
// its flat level fields point at.
type Mismatch struct {
	BookID     int64  `json:"book_id"`
	Title      string `json:"title"`
	LocationID int64  `json:"location_id"`
	// ExpectedID is the leaf the flat levels resolve to, or zero when the
	// walk hits a node missing from the tree.
	ExpectedID int64 `json:"expected_id"`
}

// ConsistencyReport is the result of a consistency check run.
type ConsistencyReport struct {
	Checked    int        `json:"checked"`
	Mismatches []Mismatch `json:"mismatches"`
	Repaired   int        `json:"repaired"`
	DryRun     bool       `json:"dry_run"`
}

// CheckConsistency walks every book's flat levels against the location tree
// read-only and reports books whose location_id does not match the resolved
// leaf. With dryRun false, each mismatched book is repaired through the
// normal update path, which re-resolves and creates any missing nodes.
func (s *CatalogService) CheckConsistency(ctx context.Context, dryRun bool) (*ConsistencyReport, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	report := &ConsistencyReport{DryRun: dryRun}

	for _, b := range books {
		report.Checked++

		var expected int64
		repairable := true
		leaf, err := s.locations.LookupPath(ctx, b.Levels())
		switch {
		case err == nil:
			expected = leaf.ID
		case errors.Is(err, store.ErrNotFound):
			// Part of the path is missing from the tree. Repair resolves
			// through the write path, which recreates the missing nodes.
		case errors.Is(err, errors.ErrValidation):
			// Blank room; there is nothing to resolve against and an
			// update would be rejected, so only report.
			repairable = false
		default:
			return nil, fmt.Errorf("lookup path for book %d: %w", b.ID, err)
		}

		if expected != 0 && b.LocationID == expected {
			continue
		}
		if !repairable && b.LocationID == 0 {
			continue
		}

		report.Mismatches = append(report.Mismatches, Mismatch{
			BookID:     b.ID,
			Title:      b.Title,
			LocationID: b.LocationID,
			ExpectedID: expected,
		})

		if dryRun || !repairable {
			continue
		}

		if err := s.UpdateBook(ctx, b); err != nil {
			return nil, fmt.Errorf("repair book %d: %w", b.ID, err)
		}
		report.Repaired++
	}

	if len(report.Mismatches) > 0 {
		s.logger.Info("consistency check finished",
			slog.Int("checked", report.Checked),
			slog.Int("mismatches", len(report.Mismatches)),
			slog.Int("repaired", report.Repaired),
			slog.Bool("dry_run", dryRun))
	}

	return report, nil
}
