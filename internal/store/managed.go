package store

import (
	"context"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// UpsertManagedVariant inserts or refreshes one managed variant,
// keyed by its coordinate-derived managed id.
func (s *Store) UpsertManagedVariant(ctx context.Context, mv *models.ManagedVariant) error {
	_, err := s.db.NewInsert().
		Model(mv).
		On("CONFLICT (managed_variant_id) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("institute = EXCLUDED.institute").
		Exec(ctx)
	return err
}

// ManagedVariants loads the whitelist entries of one genome build.
func (s *Store) ManagedVariants(ctx context.Context, build string) ([]*models.ManagedVariant, error) {
	var mvs []*models.ManagedVariant
	err := s.db.NewSelect().
		Model(&mvs).
		Where("build = ?", build).
		Scan(ctx)
	return mvs, err
}
