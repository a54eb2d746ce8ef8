package loader

import (
	"context"

	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/parse"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

// Indexes holds the in-memory membership sets consulted by the
// admission filter. They are built once at load start and thrown away
// when the load finishes.
type Indexes struct {
	managed    map[string]struct{}
	causatives map[string]struct{}
}

// BuildIndexes loads the managed-variant whitelist for the build and
// the cross-case causative set. Whitelist matching is positional: each
// entry is keyed by the clinical-form variant id of its coordinates,
// so an entry admits the matching site whatever sub-category the
// streamed record self-derives. Causative events reference one
// analysis form of a variant, but the same position may stream in as
// clinical or research, so both id forms are indexed.
func BuildIndexes(ctx context.Context, s *store.Store, build string, logger *zap.Logger) (*Indexes, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := s.ManagedVariants(ctx, build)
	if err != nil {
		return nil, err
	}
	managed := make(map[string]struct{}, len(entries))
	for _, mv := range entries {
		id := parse.NewVariantIDs(
			mv.Chromosome, mv.Position, mv.Reference, mv.Alternative,
			models.VariantTypeClinical, "").VariantID
		managed[id] = struct{}{}
	}

	eventIDs, err := s.CausativeVariantIDs(ctx)
	if err != nil {
		return nil, err
	}

	causatives := make(map[string]struct{}, 2*len(eventIDs))
	for id := range eventIDs {
		causatives[id] = struct{}{}
	}

	ids := make([]string, 0, len(eventIDs))
	for id := range eventIDs {
		ids = append(ids, id)
	}
	marked, err := s.VariantsByVariantIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, v := range marked {
		for _, form := range []string{"clinical", "research"} {
			id := parse.NewVariantIDs(v.Chromosome, v.Position, v.Reference, v.Alternative, form, "").VariantID
			causatives[id] = struct{}{}
		}
	}

	logger.Info("admission indexes built",
		zap.Int("managed_variants", len(managed)),
		zap.Int("causative_variant_ids", len(causatives)))

	return &Indexes{managed: managed, causatives: causatives}, nil
}

// IsManaged reports whether the variant's coordinates match a
// whitelist entry. Matching is positional; the variant's category and
// sub-category play no part.
func (idx *Indexes) IsManaged(v *models.Variant) bool {
	id := parse.NewVariantIDs(
		v.Chromosome, v.Position, v.Reference, v.Alternative,
		models.VariantTypeClinical, "").VariantID
	_, ok := idx.managed[id]
	return ok
}

// IsCausative reports whether the variant was marked causative in any
// case, in either analysis form.
func (idx *Indexes) IsCausative(v *models.Variant) bool {
	_, ok := idx.causatives[v.VariantID]
	return ok
}
