package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

// Catalog is the immutable gene reference for one genome build. It is
// built once at load start and shared read-only for the whole load.
type Catalog struct {
	Build string

	byEnsembl map[string]*models.HgncGene
	byHgnc    map[int]*models.HgncGene

	// codingIntervals holds one interval tree per chromosome. Each
	// interval spans a gene's bounds and is tagged with the gene
	// symbol, the region key the bucketed loader flushes on.
	codingIntervals map[string]*IntervalTree

	logger *zap.Logger
}

// Build loads the gene catalog of one build from the store.
func Build(ctx context.Context, s *store.Store, build string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	genes, err := s.GenesByBuild(ctx, build)
	if err != nil {
		return nil, fmt.Errorf("load gene catalog for build %s: %w", build, err)
	}

	c := &Catalog{
		Build:           build,
		byEnsembl:       make(map[string]*models.HgncGene, len(genes)),
		byHgnc:          make(map[int]*models.HgncGene, len(genes)),
		codingIntervals: make(map[string]*IntervalTree),
		logger:          logger,
	}

	type chromIntervals struct {
		starts []int
		ends   []int
		tags   []string
	}
	perChrom := map[string]*chromIntervals{}

	for _, gene := range genes {
		if gene.EnsemblGeneID != "" {
			c.byEnsembl[gene.EnsemblGeneID] = gene
		}
		c.byHgnc[gene.HgncID] = gene

		ci := perChrom[gene.Chromosome]
		if ci == nil {
			ci = &chromIntervals{}
			perChrom[gene.Chromosome] = ci
		}
		ci.starts = append(ci.starts, gene.Start)
		ci.ends = append(ci.ends, gene.End)
		ci.tags = append(ci.tags, gene.HgncSymbol)
	}

	for chrom, ci := range perChrom {
		c.codingIntervals[chrom] = BuildIntervalTree(ci.starts, ci.ends, ci.tags)
	}

	logger.Info("gene catalog built",
		zap.String("build", build),
		zap.Int("genes", len(genes)),
		zap.Int("chromosomes", len(c.codingIntervals)))

	return c, nil
}

// GeneByEnsembl looks up a gene by its ensembl id.
func (c *Catalog) GeneByEnsembl(ensemblID string) *models.HgncGene {
	return c.byEnsembl[ensemblID]
}

// GeneByHgnc looks up a gene by its hgnc id.
func (c *Catalog) GeneByHgnc(hgncID int) *models.HgncGene {
	return c.byHgnc[hgncID]
}

// GeneCount reports the number of catalog genes.
func (c *Catalog) GeneCount() int {
	return len(c.byHgnc)
}

// CodingRegion returns one region tag overlapping [start, end] on
// chrom, or "" when the span is intergenic. The overlap set has no
// guaranteed order, so the lexically smallest tag is picked to keep
// bucket boundaries deterministic.
func (c *Catalog) CodingRegion(chrom string, start, end int) string {
	tree, ok := c.codingIntervals[chrom]
	if !ok {
		return ""
	}
	tags := tree.FindOverlaps(start, end)
	if len(tags) == 0 {
		return ""
	}
	best := tags[0]
	for _, tag := range tags[1:] {
		if tag < best {
			best = tag
		}
	}
	return best
}

// PanelInfo resolves panel membership and per-gene panel overrides
// for one case, precomputed so the variant builder pays no store
// round-trips per variant.
type PanelInfo struct {
	genePanels    map[int][]string
	geneOverrides map[int][]models.PanelGene
}

// BuildPanelInfo reads the case's default panels once and indexes
// their genes.
func BuildPanelInfo(ctx context.Context, s *store.Store, c *models.Case) (*PanelInfo, error) {
	info := &PanelInfo{
		genePanels:    map[int][]string{},
		geneOverrides: map[int][]models.PanelGene{},
	}

	for _, panelName := range c.DefaultPanelNames() {
		panel, err := s.GenePanelByName(ctx, panelName)
		if err != nil {
			return nil, err
		}
		if panel == nil {
			continue
		}
		for _, gene := range panel.Genes {
			info.genePanels[gene.HgncID] = append(info.genePanels[gene.HgncID], panel.PanelName)
			info.geneOverrides[gene.HgncID] = append(info.geneOverrides[gene.HgncID], gene)
		}
	}

	return info, nil
}

// Panels returns the default panels one gene appears in.
func (p *PanelInfo) Panels(hgncID int) []string {
	return p.genePanels[hgncID]
}

// Overrides returns the panel-level gene overrides of one gene.
func (p *PanelInfo) Overrides(hgncID int) []models.PanelGene {
	return p.geneOverrides[hgncID]
}
