package loader

import (
	"sort"

	"github.com/Clinical-Genomics/scout-sub001/internal/catalog"
	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// Builder decorates parsed variants with catalog and panel knowledge
// before they are persisted. It holds no mutable state, so a single
// builder serves a whole load.
type Builder struct {
	catalog   *catalog.Catalog
	panelInfo *catalog.PanelInfo
	institute string
}

// NewBuilder wires the catalog and the case's precomputed panel info.
func NewBuilder(cat *catalog.Catalog, panels *catalog.PanelInfo, institute string) *Builder {
	return &Builder{catalog: cat, panelInfo: panels, institute: institute}
}

// Decorate finalises one variant document in place: institute, panel
// membership, gene symbols, and per-gene catalog annotation.
func (b *Builder) Decorate(v *models.Variant) {
	v.Institute = b.institute

	panelSet := map[string]struct{}{}
	var symbols models.StringArray

	for i := range v.Genes {
		gene := &v.Genes[i]
		b.decorateGene(gene)

		if gene.HgncSymbol != "" {
			symbols = append(symbols, gene.HgncSymbol)
		}
		for _, panel := range b.panelInfo.Panels(gene.HgncID) {
			panelSet[panel] = struct{}{}
		}
	}

	v.HgncSymbols = symbols
	if len(panelSet) > 0 {
		panels := make(models.StringArray, 0, len(panelSet))
		for name := range panelSet {
			panels = append(panels, name)
		}
		sort.Strings(panels)
		v.Panels = panels
	}
}

func (b *Builder) decorateGene(gene *models.GeneAnnotation) {
	catalogGene := b.catalog.GeneByHgnc(gene.HgncID)
	overrides := b.panelInfo.Overrides(gene.HgncID)

	inheritance := map[string]struct{}{}
	manualInheritance := map[string]struct{}{}
	diseaseTx := map[string]struct{}{}

	if catalogGene != nil {
		gene.Chromosome = catalogGene.Chromosome
		if gene.HgncSymbol == "" {
			gene.HgncSymbol = catalogGene.HgncSymbol
		}
		for _, model := range catalogGene.InheritanceModels {
			inheritance[model] = struct{}{}
		}
	}

	for _, ov := range overrides {
		for _, model := range ov.InheritanceModels {
			inheritance[model] = struct{}{}
			manualInheritance[model] = struct{}{}
		}
		for _, tx := range ov.DiseaseAssociatedTranscripts {
			diseaseTx[tx] = struct{}{}
		}
		if ov.ReducedPenetrance {
			gene.ManualPenetrance = true
		}
		if ov.MosaicismTag {
			gene.Mosaicism = true
		}
	}

	gene.InheritanceModels = sortedKeys(inheritance)
	gene.ManualInheritanceModels = sortedKeys(manualInheritance)
	gene.DiseaseAssociatedTranscripts = sortedKeys(diseaseTx)

	if catalogGene == nil {
		return
	}

	catalogTx := map[string]*models.HgncTranscript{}
	for i := range catalogGene.Transcripts {
		tx := &catalogGene.Transcripts[i]
		catalogTx[tx.EnsemblTranscriptID] = tx
	}

	for i := range gene.Transcripts {
		tx := &gene.Transcripts[i]
		match, ok := catalogTx[tx.TranscriptID]
		if !ok {
			continue
		}
		tx.RefseqIDs = match.RefseqIDs
		tx.IsPrimary = match.IsPrimary
		for _, refseq := range match.RefseqIDs {
			if _, assoc := diseaseTx[refseq]; assoc {
				tx.IsDiseaseAssociated = true
				break
			}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
