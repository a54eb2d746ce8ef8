package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// HgncGene is one catalog gene for one build. (hgnc_id, build) is
// unique. The core consumes this catalog read-only.
type HgncGene struct {
	bun.BaseModel `bun:"table:hgnc_genes,alias:g"`

	ID            int64           `bun:"id,pk,autoincrement" json:"-"`
	HgncID        int             `bun:"hgnc_id,notnull" json:"hgnc_id"`
	HgncSymbol    string          `bun:"hgnc_symbol,notnull" json:"hgnc_symbol"`
	EnsemblGeneID string          `bun:"ensembl_gene_id" json:"ensembl_gene_id,omitempty"`
	Build         string          `bun:"build,notnull" json:"build"`
	Chromosome    string          `bun:"chromosome,notnull" json:"chromosome"`
	Start         int             `bun:"start,notnull" json:"start"`
	End           int             `bun:"end_,notnull" json:"end"`
	Transcripts   HgncTranscripts `bun:"transcripts,type:json" json:"transcripts,omitempty"`

	InheritanceModels StringArray `bun:"inheritance_models,type:json" json:"inheritance_models,omitempty"`
	Phenotypes        StringArray `bun:"phenotypes,type:json" json:"phenotypes,omitempty"`
	Description       string      `bun:"description" json:"description,omitempty"`
}

// HgncTranscript is one catalog transcript of a gene.
type HgncTranscript struct {
	EnsemblTranscriptID string   `json:"ensembl_transcript_id"`
	Start               int      `json:"start"`
	End                 int      `json:"end"`
	RefseqIDs           []string `json:"refseq_identifiers,omitempty"`
	IsPrimary           bool     `json:"is_primary,omitempty"`
}

type HgncTranscripts []HgncTranscript

func (t HgncTranscripts) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	return json.Marshal(t)
}

func (t *HgncTranscripts) Scan(value interface{}) error { return scanJSON(value, t) }

// GenePanel is a curated list of genes a case can be analysed with.
type GenePanel struct {
	bun.BaseModel `bun:"table:gene_panels,alias:p"`

	ID          int64      `bun:"id,pk,autoincrement" json:"-"`
	PanelName   string     `bun:"panel_name,notnull" json:"panel_name"`
	DisplayName string     `bun:"display_name" json:"display_name,omitempty"`
	Version     float64    `bun:"version,notnull" json:"version"`
	Institute   string     `bun:"institute" json:"institute,omitempty"`
	Date        time.Time  `bun:"date,nullzero" json:"date,omitempty"`
	Genes       PanelGenes `bun:"genes,type:json" json:"genes,omitempty"`
}

// PanelGene is one gene entry of a panel, possibly carrying manual
// overrides of the catalog annotation.
type PanelGene struct {
	HgncID                       int      `json:"hgnc_id"`
	Symbol                       string   `json:"symbol,omitempty"`
	DiseaseAssociatedTranscripts []string `json:"disease_associated_transcripts,omitempty"`
	InheritanceModels            []string `json:"inheritance_models,omitempty"`
	ReducedPenetrance            bool     `json:"reduced_penetrance,omitempty"`
	MosaicismTag                 bool     `json:"mosaicism,omitempty"`
}

type PanelGenes []PanelGene

func (g PanelGenes) Value() (driver.Value, error) {
	if len(g) == 0 {
		return "[]", nil
	}
	return json.Marshal(g)
}

func (g *PanelGenes) Scan(value interface{}) error { return scanJSON(value, g) }

// ManagedVariant is an operator-maintained whitelist entry that forces
// a matching variant to be loaded regardless of rank score.
type ManagedVariant struct {
	bun.BaseModel `bun:"table:managed_variants,alias:mv"`

	ID          int64  `bun:"id,pk,autoincrement" json:"-"`
	ManagedID   string `bun:"managed_variant_id,notnull,unique" json:"managed_variant_id"`
	Chromosome  string `bun:"chromosome,notnull" json:"chromosome"`
	Position    int    `bun:"position,notnull" json:"position"`
	Reference   string `bun:"reference,notnull" json:"reference"`
	Alternative string `bun:"alternative,notnull" json:"alternative"`
	Category    string `bun:"category,notnull" json:"category"`
	SubCategory string `bun:"sub_category,notnull" json:"sub_category"`
	Build       string `bun:"build,notnull" json:"build"`
	Institute   string `bun:"institute" json:"institute,omitempty"`
	Description string `bun:"description" json:"description,omitempty"`
}

// ManagedVariantID builds the canonical whitelist key.
func ManagedVariantID(chrom string, pos int, ref, alt, category, subCategory, build string) string {
	return fmt.Sprintf("%s_%d_%s_%s_%s_%s_%s", chrom, pos, ref, alt, category, subCategory, build)
}
