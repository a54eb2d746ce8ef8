package loader

import (
	"context"

	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

// RankVariants assigns a dense 1..N variant_rank over one case slice,
// ordered by rank score descending. The rank is advisory; readers must
// tolerate unranked documents during the window between bulk insert
// and rank completion.
func RankVariants(ctx context.Context, s *store.Store, caseID, variantType, category string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	ids, err := s.RankedVariantIDs(ctx, caseID, variantType, category)
	if err != nil {
		return err
	}
	if err := s.UpdateVariantRanks(ctx, ids); err != nil {
		return err
	}

	logger.Info("variant ranks assigned",
		zap.String("case_id", caseID),
		zap.String("variant_type", variantType),
		zap.String("category", category),
		zap.Int("variants", len(ids)))
	return nil
}
