package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// CreateEvent appends one event to the log.
func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.NewInsert().Model(event).Exec(ctx)
	return err
}

// CausativeVariantIDs collects every variant_id referenced by a
// causative or partial-causative mark, across all institutes. Known
// causatives are admitted into every future load regardless of rank
// score.
func (s *Store) CausativeVariantIDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	err := s.db.NewSelect().
		Model((*models.Event)(nil)).
		ColumnExpr("DISTINCT variant_id").
		Where("verb IN (?)", bun.In([]string{
			models.VerbMarkCausative,
			models.VerbMarkPartialCausative,
		})).
		Where("variant_id != ''").
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// CaseEvents lists the events of one case, newest first.
func (s *Store) CaseEvents(ctx context.Context, caseID string) ([]*models.Event, error) {
	var events []*models.Event
	err := s.db.NewSelect().
		Model(&events).
		Where("case_id = ?", caseID).
		OrderExpr("created_at DESC").
		Scan(ctx)
	return events, err
}
