package loader

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/catalog"
	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/parse"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// intergenicBucketLimit bounds a bucket while the stream moves through
// intergenic space, where no region boundary would ever flush it.
const intergenicBucketLimit = 10000

// progressInterval is how often the stream logs its position.
const progressInterval = 5000

// Loader streams annotated VCF files into the variant store, one
// coding-region bucket at a time. A loader is single-threaded within
// one case; distinct cases can be loaded in parallel because every
// document id is case-scoped.
type Loader struct {
	store   *store.Store
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// New builds a loader over an open store and a built catalog.
func New(s *store.Store, cat *catalog.Catalog, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{store: s, catalog: cat, logger: logger}
}

// SliceResult reports one loaded (variant_type, category) slice.
type SliceResult struct {
	VariantType string
	Category    string
	Inserted    int
}

// LoadCase runs the full pipeline for one case: snapshot user actions,
// reload every configured VCF file, resolve case-wide compounds, rank,
// and re-attach the preserved actions.
func (l *Loader) LoadCase(ctx context.Context, c *models.Case) ([]SliceResult, error) {
	snap, err := TakeSnapshot(ctx, l.store, c.ID, l.logger)
	if err != nil {
		return nil, err
	}

	idx, err := BuildIndexes(ctx, l.store, c.Build, l.logger)
	if err != nil {
		return nil, err
	}
	panelInfo, err := catalog.BuildPanelInfo(ctx, l.store, c)
	if err != nil {
		return nil, err
	}
	builder := NewBuilder(l.catalog, panelInfo, c.Owner)

	var results []SliceResult
	stats := models.IntMap{}
	for _, kind := range models.VCFFileKinds {
		path := c.VCFFiles[kind]
		if path == "" {
			continue
		}
		variantType, category := ClassifyVCFKind(kind)

		if _, err := l.store.DeleteVariants(ctx, c.ID, variantType, category); err != nil {
			return results, err
		}
		inserted, err := l.LoadVariants(ctx, c, path, variantType, category, idx, builder)
		if err != nil {
			return results, err
		}
		if err := UpdateCaseCompounds(ctx, l.store, l.catalog, c.ID, variantType, category, l.logger); err != nil {
			return results, err
		}
		if err := RankVariants(ctx, l.store, c.ID, variantType, category, l.logger); err != nil {
			return results, err
		}
		if err := l.store.CreateEvent(ctx, &models.Event{
			Verb:      models.VerbLoadVariants,
			Institute: c.Owner,
			CaseID:    c.ID,
			Category:  category,
			Content:   fmt.Sprintf("%d %s variants loaded", inserted, variantType),
		}); err != nil {
			return results, err
		}
		stats[variantType+"_"+category] = inserted
		results = append(results, SliceResult{
			VariantType: variantType,
			Category:    category,
			Inserted:    inserted,
		})
	}
	c.VariantsStats = stats

	if err := RestoreSnapshot(ctx, l.store, c, snap, l.logger); err != nil {
		return results, err
	}
	return results, nil
}

// LoadVariants streams one VCF file into the store as one
// (variant_type, category) slice. Any failure mid-stream deletes the
// whole slice before the error is returned; a partial load is never
// left behind.
func (l *Loader) LoadVariants(ctx context.Context, c *models.Case, path, variantType, category string, idx *Indexes, builder *Builder) (int, error) {
	inserted, err := l.streamVariants(ctx, c, path, variantType, category, idx, builder)
	if err == nil {
		l.logger.Info("variants loaded",
			zap.String("case_id", c.ID),
			zap.String("variant_type", variantType),
			zap.String("category", category),
			zap.Int("inserted", inserted))
		return inserted, nil
	}

	deleted, delErr := l.store.DeleteVariants(ctx, c.ID, variantType, category)
	if delErr != nil {
		l.logger.Error("recovery delete failed",
			zap.String("case_id", c.ID),
			zap.Error(delErr))
	} else {
		l.logger.Warn("load failed, slice deleted",
			zap.String("case_id", c.ID),
			zap.String("variant_type", variantType),
			zap.String("category", category),
			zap.Int("deleted", deleted))
	}
	return 0, fmt.Errorf("load %s %s variants for case %s: %w", variantType, category, c.ID, err)
}

func (l *Loader) streamVariants(ctx context.Context, c *models.Case, path, variantType, category string, idx *Indexes, builder *Builder) (int, error) {
	parser, err := vcf.NewParser(path)
	if err != nil {
		return 0, err
	}
	defer parser.Close()

	pctx := parse.NewContext(parser, c, variantType, category)

	bucket := map[string]*models.Variant{}
	currentRegion := ""
	inserted := 0
	streamed := 0

	for {
		rec, err := parser.Next()
		if err != nil {
			return inserted, err
		}
		if rec == nil {
			break
		}
		streamed++
		if streamed%progressInterval == 0 {
			l.logger.Info("streaming variants",
				zap.String("case_id", c.ID),
				zap.Int("records", streamed),
				zap.String("chromosome", rec.Chrom))
		}

		v, err := pctx.Variant(rec)
		if err != nil {
			return inserted, err
		}
		if !Admit(v, rec, c, idx) {
			continue
		}
		builder.Decorate(v)

		newRegion := l.catalog.CodingRegion(v.Chromosome, v.Position, v.End+1)
		flush := (newRegion == "" && currentRegion == "" && len(bucket) > intergenicBucketLimit) ||
			(newRegion != "" && newRegion != currentRegion)
		if flush && len(bucket) > 0 {
			n, err := l.flushBucket(ctx, bucket)
			if err != nil {
				return inserted, err
			}
			inserted += n
			bucket = map[string]*models.Variant{}
		}
		currentRegion = newRegion

		if _, dup := bucket[v.VariantID]; dup {
			// Upstream produced the same simple identity twice. The
			// bucket keeps the first copy; the duplicate is written
			// directly so neither is silently lost.
			created, err := l.store.UpsertVariant(ctx, v)
			if err != nil {
				return inserted, err
			}
			if created {
				inserted++
			}
			continue
		}
		bucket[v.VariantID] = v
	}

	if len(bucket) > 0 {
		n, err := l.flushBucket(ctx, bucket)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

func (l *Loader) flushBucket(ctx context.Context, bucket map[string]*models.Variant) (int, error) {
	if err := ResolveCompounds(ctx, l.store, bucket); err != nil {
		return 0, err
	}
	variants := make([]*models.Variant, 0, len(bucket))
	for _, v := range bucket {
		variants = append(variants, v)
	}
	return l.store.InsertVariants(ctx, variants)
}

// ClassifyVCFKind maps one config VCF key to the (variant_type,
// category) slice it loads.
func ClassifyVCFKind(kind string) (variantType, category string) {
	variantType = models.VariantTypeClinical
	if strings.HasSuffix(kind, "_research") {
		variantType = models.VariantTypeResearch
		kind = strings.TrimSuffix(kind, "_research")
	}
	category = strings.TrimPrefix(kind, "vcf_")
	if category == "" {
		category = models.CategorySNV
	}
	return variantType, category
}
