package loader

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/catalog"
	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/parse"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

// ResolveCompounds fills in the compound references of every variant
// in the bucket. A partner is looked up in the bucket first, then in
// the persisted store; a partner found nowhere keeps not_loaded so a
// later case-wide pass can pick it up.
func ResolveCompounds(ctx context.Context, s *store.Store, bucket map[string]*models.Variant) error {
	for _, v := range bucket {
		if len(v.Compounds) == 0 {
			continue
		}
		for i := range v.Compounds {
			comp := &v.Compounds[i]

			partner, ok := bucket[comp.Variant]
			if !ok {
				docID := parse.PartnerDocumentID(comp.DisplayName, v.VariantType, v.CaseID)
				if docID == "" {
					continue
				}
				stored, err := s.VariantByID(ctx, docID)
				if err != nil {
					return err
				}
				if stored == nil {
					continue
				}
				partner = stored
			}
			fillCompound(comp, partner)
		}
		sortCompounds(v.Compounds)
	}
	return nil
}

func fillCompound(comp *models.Compound, partner *models.Variant) {
	comp.RankScore = partner.RankScore
	comp.IsDismissed = len(partner.DismissVariant) > 0
	comp.NotLoaded = false

	comp.Genes = comp.Genes[:0]
	for _, gene := range partner.Genes {
		comp.Genes = append(comp.Genes, models.CompoundGene{
			HgncID:               gene.HgncID,
			HgncSymbol:           gene.HgncSymbol,
			RegionAnnotation:     gene.RegionAnnotation,
			FunctionalAnnotation: gene.MostSevereConsequence,
		})
	}
}

// sortCompounds orders partners by combined score, best first. Ties
// keep the genmod emission order.
func sortCompounds(compounds models.Compounds) {
	sort.SliceStable(compounds, func(i, j int) bool {
		return compounds[i].CombinedScore > compounds[j].CombinedScore
	})
}

// UpdateCaseCompounds re-resolves every compound link of one loaded
// case slice. The streaming pass only sees partners inside its own
// bucket; this pass walks each chromosome in position order, groups
// variants by coding region, and persists the resolved compounds. It
// is idempotent and safe to run at any time after a load.
func UpdateCaseCompounds(ctx context.Context, s *store.Store, cat *catalog.Catalog, caseID, variantType, category string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	chromosomes, err := s.CaseChromosomes(ctx, caseID, variantType, category)
	if err != nil {
		return err
	}

	updated := 0
	for _, chromosome := range chromosomes {
		variants, err := s.ChromosomeVariants(ctx, caseID, variantType, category, chromosome)
		if err != nil {
			return err
		}

		bucket := map[string]*models.Variant{}
		currentRegion := ""
		for _, v := range variants {
			region := cat.CodingRegion(v.Chromosome, v.Position, v.End+1)
			if region != currentRegion && len(bucket) > 0 {
				n, err := resolveAndPersist(ctx, s, bucket)
				if err != nil {
					return err
				}
				updated += n
				bucket = map[string]*models.Variant{}
			}
			currentRegion = region
			bucket[v.VariantID] = v
		}
		if len(bucket) > 0 {
			n, err := resolveAndPersist(ctx, s, bucket)
			if err != nil {
				return err
			}
			updated += n
		}
	}

	logger.Info("case compounds updated",
		zap.String("case_id", caseID),
		zap.String("variant_type", variantType),
		zap.String("category", category),
		zap.Int("variants_updated", updated))
	return nil
}

func resolveAndPersist(ctx context.Context, s *store.Store, bucket map[string]*models.Variant) (int, error) {
	if err := ResolveCompounds(ctx, s, bucket); err != nil {
		return 0, err
	}
	var withCompounds []*models.Variant
	for _, v := range bucket {
		if len(v.Compounds) > 0 {
			withCompounds = append(withCompounds, v)
		}
	}
	if len(withCompounds) == 0 {
		return 0, nil
	}
	if err := s.UpdateCompounds(ctx, withCompounds); err != nil {
		return 0, err
	}
	return len(withCompounds), nil
}
