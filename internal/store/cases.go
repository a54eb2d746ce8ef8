package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// CaseByID fetches one case, or nil when it does not exist.
func (s *Store) CaseByID(ctx context.Context, caseID string) (*models.Case, error) {
	c := new(models.Case)
	err := s.db.NewSelect().
		Model(c).
		Where("id = ?", caseID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCase inserts a new case. Creating a case that already exists
// without the update flag is an integrity error. With it, the
// analysis-delivered fields are refreshed while user-curated state
// (causatives, suspects, sanger list, delivery report) is carried over
// and collaborators are merged rather than replaced.
func (s *Store) CreateCase(ctx context.Context, c *models.Case, update bool) error {
	existing, err := s.CaseByID(ctx, c.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if existing == nil {
		c.CreatedAt = now
		c.UpdatedAt = now
		_, err := s.db.NewInsert().Model(c).Exec(ctx)
		return err
	}

	if !update {
		return &IntegrityError{Message: "case " + c.ID + " already exists, use update to replace it"}
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = now
	c.Causatives = existing.Causatives
	c.PartialCausatives = existing.PartialCausatives
	c.Suspects = existing.Suspects
	c.SangerOrdered = existing.SangerOrdered
	c.VariantsStats = existing.VariantsStats
	if c.DeliveryReport == "" {
		c.DeliveryReport = existing.DeliveryReport
	}
	c.Collaborators = mergeCollaborators(existing.Collaborators, c.Collaborators)
	_, err = s.db.NewUpdate().Model(c).WherePK().Exec(ctx)
	return err
}

// mergeCollaborators unions the incoming collaborators into the
// existing list, keeping the existing order.
func mergeCollaborators(existing, incoming models.StringArray) models.StringArray {
	seen := make(map[string]struct{}, len(existing))
	merged := append(models.StringArray(nil), existing...)
	for _, name := range existing {
		seen[name] = struct{}{}
	}
	for _, name := range incoming {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}

// UpdateCase replaces an existing case document.
func (s *Store) UpdateCase(ctx context.Context, c *models.Case) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := s.db.NewUpdate().Model(c).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &DataNotFoundError{Kind: "case", ID: c.ID}
	}
	return nil
}

// DeleteCase removes a case and all of its variants.
func (s *Store) DeleteCase(ctx context.Context, caseID string) error {
	if _, err := s.db.NewDelete().
		Model((*models.Variant)(nil)).
		Where("case_id = ?", caseID).
		Exec(ctx); err != nil {
		return err
	}
	res, err := s.db.NewDelete().
		Model((*models.Case)(nil)).
		Where("id = ?", caseID).
		Exec(ctx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &DataNotFoundError{Kind: "case", ID: caseID}
	}
	return nil
}

// AttachReport stores a delivery report path on an existing case.
// Overwriting a report requires the update flag.
func (s *Store) AttachReport(ctx context.Context, caseID, reportPath string, update bool) error {
	c, err := s.CaseByID(ctx, caseID)
	if err != nil {
		return err
	}
	if c == nil {
		return &DataNotFoundError{Kind: "case", ID: caseID}
	}
	if c.DeliveryReport != "" && !update {
		return &ValidationError{Message: "case " + caseID + " already has a delivery report"}
	}
	c.DeliveryReport = reportPath
	return s.UpdateCase(ctx, c)
}
