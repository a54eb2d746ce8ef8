package loader

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

// Snapshot holds the user-evaluated variants of a case captured before
// a reload, keyed material for re-attaching the evaluations afterwards.
type Snapshot struct {
	Variants []*models.Variant

	// sanger-ordered variant ids, tracked separately so the case's
	// sanger status can be re-derived after the reload.
	SangerVariantIDs []string
}

// TakeSnapshot captures every case variant carrying a user action. It
// must run before the old variant set is deleted.
func TakeSnapshot(ctx context.Context, s *store.Store, caseID string, logger *zap.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	variants, err := s.VariantsWithUserActions(ctx, caseID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Variants: variants}
	for _, v := range variants {
		if v.SangerOrdered {
			snap.SangerVariantIDs = append(snap.SangerVariantIDs, v.VariantID)
		}
	}

	logger.Info("user actions snapshotted",
		zap.String("case_id", caseID),
		zap.Int("variants", len(variants)),
		zap.Int("sanger_ordered", len(snap.SangerVariantIDs)))
	return snap, nil
}

// RestoreSnapshot copies the preserved fields onto the freshly loaded
// documents, matching on the reload-stable variant_id, and re-derives
// the case's sanger-ordered list from the variants still present. A
// snapshot entry whose variant was not re-admitted is dropped.
func RestoreSnapshot(ctx context.Context, s *store.Store, c *models.Case, snap *Snapshot, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	restored := 0
	for _, old := range snap.Variants {
		matched, err := s.RestoreUserActions(ctx, c.ID, old)
		if err != nil {
			return err
		}
		if matched {
			restored++
		}
	}

	present, err := s.CaseVariantIDsPresent(ctx, c.ID, snap.SangerVariantIDs)
	if err != nil {
		return err
	}
	sangerSet := map[string]struct{}{}
	for _, id := range c.SangerOrdered {
		sangerSet[id] = struct{}{}
	}
	for _, id := range present {
		sangerSet[id] = struct{}{}
	}
	sanger := make(models.StringArray, 0, len(sangerSet))
	for id := range sangerSet {
		sanger = append(sanger, id)
	}
	sort.Strings(sanger)
	c.SangerOrdered = sanger
	if err := s.UpdateCase(ctx, c); err != nil {
		return err
	}

	logger.Info("user actions restored",
		zap.String("case_id", c.ID),
		zap.Int("snapshotted", len(snap.Variants)),
		zap.Int("restored", restored))
	return nil
}
