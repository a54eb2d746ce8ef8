package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// rankUpdateBatchSize bounds the number of single-field rank updates
// issued inside one transaction.
const rankUpdateBatchSize = 5000

// InsertVariants bulk-inserts one flushed bucket. When the bulk write
// fails on a duplicate key, every variant is retried individually so a
// lone duplicate cannot sink the whole bucket. Returns the number of
// variants inserted.
func (s *Store) InsertVariants(ctx context.Context, variants []*models.Variant) (int, error) {
	if len(variants) == 0 {
		return 0, nil
	}

	_, err := s.db.NewInsert().Model(&variants).Exec(ctx)
	if err == nil {
		return len(variants), nil
	}
	if !isDuplicateKey(err) {
		return 0, err
	}

	s.logger.Warn("duplicate key in bulk insert, retrying one by one",
		zap.Int("bucket_size", len(variants)))

	inserted := 0
	for _, variant := range variants {
		created, err := s.UpsertVariant(ctx, variant)
		if err != nil {
			return inserted, err
		}
		if created {
			inserted++
		}
	}
	return inserted, nil
}

// UpsertVariant inserts one variant. If the document already exists
// only its compounds field is replaced, since a duplicate comes from
// the same load and differs at most in resolved compounds. Reports
// whether a new document was created.
func (s *Store) UpsertVariant(ctx context.Context, variant *models.Variant) (bool, error) {
	// RowsAffected cannot tell the two conflict arms apart, so creation
	// is detected with an existence check up front.
	exists, err := s.db.NewSelect().
		Model((*models.Variant)(nil)).
		Where("id = ?", variant.ID).
		Exists(ctx)
	if err != nil {
		return false, err
	}

	_, err = s.db.NewInsert().
		Model(variant).
		On("CONFLICT (id) DO UPDATE").
		Set("compounds = EXCLUDED.compounds").
		Exec(ctx)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// UpdateCompounds persists only the compounds field of the given
// variants, used by the case-wide second resolver pass.
func (s *Store) UpdateCompounds(ctx context.Context, variants []*models.Variant) error {
	for _, variant := range variants {
		_, err := s.db.NewUpdate().
			Model(variant).
			Column("compounds").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteVariants removes the whole (case, variant_type, category)
// slice, the recovery unit of a failed load. Returns the number of
// deleted variants.
func (s *Store) DeleteVariants(ctx context.Context, caseID, variantType, category string) (int, error) {
	res, err := s.db.NewDelete().
		Model((*models.Variant)(nil)).
		Where("case_id = ?", caseID).
		Where("variant_type = ?", variantType).
		Where("category = ?", category).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// VariantByID fetches one variant by its case-scoped document id.
func (s *Store) VariantByID(ctx context.Context, id string) (*models.Variant, error) {
	variant := new(models.Variant)
	err := s.db.NewSelect().
		Model(variant).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return variant, nil
}

// CaseChromosomes lists the distinct chromosomes of one case slice in
// load order.
func (s *Store) CaseChromosomes(ctx context.Context, caseID, variantType, category string) ([]string, error) {
	var chromosomes []string
	err := s.db.NewSelect().
		Model((*models.Variant)(nil)).
		ColumnExpr("DISTINCT chromosome").
		Where("case_id = ?", caseID).
		Where("variant_type = ?", variantType).
		Where("category = ?", category).
		Scan(ctx, &chromosomes)
	return chromosomes, err
}

// ChromosomeVariants streams the variants of one chromosome in
// position order, the walk order of the case-wide compound pass.
func (s *Store) ChromosomeVariants(ctx context.Context, caseID, variantType, category, chromosome string) ([]*models.Variant, error) {
	var variants []*models.Variant
	err := s.db.NewSelect().
		Model(&variants).
		Where("case_id = ?", caseID).
		Where("variant_type = ?", variantType).
		Where("category = ?", category).
		Where("chromosome = ?", chromosome).
		OrderExpr("position ASC").
		Scan(ctx)
	return variants, err
}

// RankedVariantIDs returns the document ids of one case slice ordered
// by rank score descending. Ties break on document id so ranking is
// deterministic.
func (s *Store) RankedVariantIDs(ctx context.Context, caseID, variantType, category string) ([]string, error) {
	var ids []string
	err := s.db.NewSelect().
		Model((*models.Variant)(nil)).
		Column("id").
		Where("case_id = ?", caseID).
		Where("variant_type = ?", variantType).
		Where("category = ?", category).
		OrderExpr("rank_score DESC, id ASC").
		Scan(ctx, &ids)
	return ids, err
}

// UpdateVariantRanks assigns variant_rank = position + 1 following the
// order of ids, in batches of single-field updates.
func (s *Store) UpdateVariantRanks(ctx context.Context, ids []string) error {
	for start := 0; start < len(ids); start += rankUpdateBatchSize {
		end := start + rankUpdateBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for i := start; i < end; i++ {
				_, err := tx.NewUpdate().
					Model((*models.Variant)(nil)).
					Set("variant_rank = ?", i+1).
					Where("id = ?", ids[i]).
					Exec(ctx)
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// VariantsWithUserActions fetches the case variants carrying any user
// evaluation, the set snapshotted before a reload.
func (s *Store) VariantsWithUserActions(ctx context.Context, caseID string) ([]*models.Variant, error) {
	var variants []*models.Variant
	err := s.db.NewSelect().
		Model(&variants).
		Where("case_id = ?", caseID).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("acmg_classification != ''").
				WhereOr("manual_rank IS NOT NULL").
				WhereOr("cancer_tier != ''").
				WhereOr("dismiss_variant NOT IN ('', '[]')").
				WhereOr("mosaic_tags NOT IN ('', '[]')").
				WhereOr("is_commented").
				WhereOr("sanger_ordered").
				WhereOr("validation != ''").
				// An empty RawMessage lands in the column as the JSON
				// text "null", not as SQL NULL.
				WhereOr("custom_images NOT IN ('null', '', '[]')")
		}).
		Scan(ctx)
	return variants, err
}

// RestoreUserActions copies the preserved evaluation fields from an
// old variant onto the freshly loaded document with the same
// variant_id. Reports whether a new document was matched.
func (s *Store) RestoreUserActions(ctx context.Context, caseID string, old *models.Variant) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*models.Variant)(nil)).
		Set("acmg_classification = ?", old.ACMGClassification).
		Set("manual_rank = ?", old.ManualRank).
		Set("cancer_tier = ?", old.CancerTier).
		Set("dismiss_variant = ?", old.DismissVariant).
		Set("mosaic_tags = ?", old.MosaicTags).
		Set("is_commented = ?", old.IsCommented).
		Set("sanger_ordered = ?", old.SangerOrdered).
		Set("validation = ?", old.Validation).
		Set("custom_images = ?", old.CustomImages).
		Where("case_id = ?", caseID).
		Where("variant_id = ?", old.VariantID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// VariantsByVariantIDs fetches the documents matching any of the
// reload-stable variant ids, across cases.
func (s *Store) VariantsByVariantIDs(ctx context.Context, variantIDs []string) ([]*models.Variant, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	var variants []*models.Variant
	err := s.db.NewSelect().
		Model(&variants).
		Where("variant_id IN (?)", bun.In(variantIDs)).
		Scan(ctx)
	return variants, err
}

// CaseVariantIDsPresent filters ids down to those loaded for the case.
func (s *Store) CaseVariantIDsPresent(ctx context.Context, caseID string, variantIDs []string) ([]string, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	var present []string
	err := s.db.NewSelect().
		Model((*models.Variant)(nil)).
		Column("variant_id").
		Where("case_id = ?", caseID).
		Where("variant_id IN (?)", bun.In(variantIDs)).
		Scan(ctx, &present)
	return present, err
}
