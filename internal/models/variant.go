package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/uptrace/bun"
)

// Variant is one persisted variant document. The document id is scoped
// to the case; VariantID is stable across reloads of the same case and
// is what compounds and causative events reference.
type Variant struct {
	bun.BaseModel `bun:"table:variants,alias:v"`

	ID          string `bun:"id,pk" json:"_id"`
	DocumentID  string `bun:"document_id,notnull" json:"document_id"`
	VariantID   string `bun:"variant_id,notnull" json:"variant_id"`
	SimpleID    string `bun:"simple_id" json:"simple_id,omitempty"`
	DisplayName string `bun:"display_name" json:"display_name,omitempty"`

	CaseID      string `bun:"case_id,notnull" json:"case_id"`
	Institute   string `bun:"institute,notnull" json:"institute"`
	VariantType string `bun:"variant_type,notnull" json:"variant_type"`
	Category    string `bun:"category,notnull" json:"category"`
	SubCategory string `bun:"sub_category" json:"sub_category,omitempty"`

	Chromosome    string  `bun:"chromosome,notnull" json:"chromosome"`
	Position      int     `bun:"position,notnull" json:"position"`
	End           int     `bun:"end_,nullzero" json:"end,omitempty"`
	Length        *int    `bun:"length" json:"length,omitempty"`
	EndChrom      string  `bun:"end_chrom" json:"end_chrom,omitempty"`
	MateID        string  `bun:"mate_id" json:"mate_id,omitempty"`
	CytobandStart string  `bun:"cytoband_start" json:"cytoband_start,omitempty"`
	CytobandEnd   string  `bun:"cytoband_end" json:"cytoband_end,omitempty"`
	Reference     string  `bun:"reference,notnull" json:"reference"`
	Alternative   string  `bun:"alternative,notnull" json:"alternative"`
	DbsnpID       string  `bun:"dbsnp_id" json:"dbsnp_id,omitempty"`
	CosmicIDs     IntArray `bun:"cosmic_ids,type:json" json:"cosmic_ids,omitempty"`

	Quality *float64    `bun:"quality" json:"quality,omitempty"`
	Filters StringArray `bun:"filters,type:json" json:"filters,omitempty"`

	RankScore        *float64 `bun:"rank_score" json:"rank_score,omitempty"`
	VariantRank      int      `bun:"variant_rank,nullzero" json:"variant_rank,omitempty"`
	RankScoreResults FloatMap `bun:"rank_score_results,type:json" json:"rank_score_results,omitempty"`

	Samples       GTCalls         `bun:"samples,type:json" json:"samples,omitempty"`
	Tumor         *SampleMetrics  `bun:"tumor,type:json" json:"tumor,omitempty"`
	Normal        *SampleMetrics  `bun:"normal,type:json" json:"normal,omitempty"`
	Genes         GeneAnnotations `bun:"genes,type:json" json:"genes,omitempty"`
	HgncIDs       IntArray        `bun:"hgnc_ids,type:json" json:"hgnc_ids,omitempty"`
	HgncSymbols   StringArray     `bun:"hgnc_symbols,type:json" json:"hgnc_symbols,omitempty"`
	Panels        StringArray     `bun:"panels,type:json" json:"panels,omitempty"`
	Compounds     Compounds       `bun:"compounds,type:json" json:"compounds,omitempty"`
	GeneticModels StringArray     `bun:"genetic_models,type:json" json:"genetic_models,omitempty"`

	Frequencies FloatMap   `bun:"frequencies,type:json" json:"frequencies,omitempty"`
	Callers     StringMap  `bun:"callers,type:json" json:"callers,omitempty"`
	Clnsig      ClnsigList `bun:"clnsig,type:json" json:"clnsig,omitempty"`

	CaddScore *float64 `bun:"cadd_score" json:"cadd_score,omitempty"`
	Revel     *float64 `bun:"revel_score" json:"revel_score,omitempty"`
	Spidex    *float64 `bun:"spidex" json:"spidex,omitempty"`

	PhastConservation  StringArray `bun:"phast_conservation,type:json" json:"phast_conservation,omitempty"`
	GerpConservation   StringArray `bun:"gerp_conservation,type:json" json:"gerp_conservation,omitempty"`
	PhylopConservation StringArray `bun:"phylop_conservation,type:json" json:"phylop_conservation,omitempty"`

	MissingData bool `bun:"missing_data" json:"missing_data,omitempty"`

	AzLength *int     `bun:"azlength" json:"azlength,omitempty"`
	AzQual   *float64 `bun:"azqual" json:"azqual,omitempty"`

	LocalObsOld    *int `bun:"local_obs_old" json:"local_obs_old,omitempty"`
	LocalObsHomOld *int `bun:"local_obs_hom_old" json:"local_obs_hom_old,omitempty"`

	// Short tandem repeat annotations, present for category "str" only.
	StrRepID      string   `bun:"str_repid" json:"str_repid,omitempty"`
	StrRU         string   `bun:"str_ru" json:"str_ru,omitempty"`
	StrRef        *int     `bun:"str_ref" json:"str_ref,omitempty"`
	StrLen        *int     `bun:"str_len" json:"str_len,omitempty"`
	StrStatus     string   `bun:"str_status" json:"str_status,omitempty"`
	StrSwegenMean *float64 `bun:"str_swegen_mean" json:"str_swegen_mean,omitempty"`
	StrSwegenStd  *float64 `bun:"str_swegen_std" json:"str_swegen_std,omitempty"`

	// User-evaluated fields, preserved across reloads by variant_id.
	ACMGClassification string          `bun:"acmg_classification" json:"acmg_classification,omitempty"`
	ManualRank         *int            `bun:"manual_rank" json:"manual_rank,omitempty"`
	CancerTier         string          `bun:"cancer_tier" json:"cancer_tier,omitempty"`
	DismissVariant     IntArray        `bun:"dismiss_variant,type:json" json:"dismiss_variant,omitempty"`
	MosaicTags         IntArray        `bun:"mosaic_tags,type:json" json:"mosaic_tags,omitempty"`
	IsCommented        bool            `bun:"is_commented" json:"is_commented,omitempty"`
	SangerOrdered      bool            `bun:"sanger_ordered" json:"sanger_ordered,omitempty"`
	Validation         string          `bun:"validation" json:"validation,omitempty"`
	CustomImages       json.RawMessage `bun:"custom_images,type:json" json:"custom_images,omitempty"`
}

// GTCall is one per-individual genotype call.
type GTCall struct {
	SampleID        string `json:"sample_id"`
	DisplayName     string `json:"display_name"`
	GenotypeCall    string `json:"genotype_call"`
	AlleleDepths    []int  `json:"allele_depths"`
	ReadDepth       int    `json:"read_depth"`
	AltFrequency    float64 `json:"alt_frequency"`
	GenotypeQuality int    `json:"genotype_quality"`

	// Optional caller-specific FORMAT tags, emitted only when present.
	AltMC      *int     `json:"alt_mc,omitempty"`
	CopyNumber *int     `json:"copy_number,omitempty"`
	FFPM       *float64 `json:"ffpm,omitempty"`
	SDP        *int     `json:"sdp,omitempty"`
	SDR        *float64 `json:"sdr,omitempty"`
	SO         string   `json:"so,omitempty"`
	SplitRead  *int     `json:"split_read,omitempty"`
}

// SampleMetrics summarises the tumor or normal sample on cancer tracks.
type SampleMetrics struct {
	AltDepth     int     `json:"alt_depth"`
	RefDepth     int     `json:"ref_depth"`
	ReadDepth    int     `json:"read_depth"`
	AltFreq      float64 `json:"alt_freq"`
	IndSampleID  string  `json:"ind_id"`
	DisplayName  string  `json:"display_name"`
}

// TranscriptAnnotation is one CSQ-expanded transcript on a variant,
// decorated with catalog info by the builder.
type TranscriptAnnotation struct {
	TranscriptID        string   `json:"transcript_id"`
	HgncID              int      `json:"hgnc_id,omitempty"`
	HgncSymbol          string   `json:"hgnc_symbol,omitempty"`
	FunctionalAnnotations []string `json:"functional_annotations,omitempty"`
	RegionAnnotations   []string `json:"region_annotations,omitempty"`
	Impact              string   `json:"impact,omitempty"`
	Exon                string   `json:"exon,omitempty"`
	Intron              string   `json:"intron,omitempty"`
	CodingSequenceName  string   `json:"coding_sequence_name,omitempty"`
	ProteinSequenceName string   `json:"protein_sequence_name,omitempty"`
	SiftPrediction      string   `json:"sift_prediction,omitempty"`
	PolyphenPrediction  string   `json:"polyphen_prediction,omitempty"`
	PfamDomain          string   `json:"pfam_domain,omitempty"`
	PrositeProfile      string   `json:"prosite_profile,omitempty"`
	SmartDomain         string   `json:"smart_domain,omitempty"`
	ManeSelect          string   `json:"mane_select_transcript,omitempty"`
	ManePlusClinical    string   `json:"mane_plus_clinical_transcript,omitempty"`
	IsCanonical         bool     `json:"is_canonical,omitempty"`
	Strand              string   `json:"strand,omitempty"`
	Biotype             string   `json:"biotype,omitempty"`

	// Catalog decoration.
	RefseqIDs           []string `json:"refseq_identifiers,omitempty"`
	IsPrimary           bool     `json:"is_primary,omitempty"`
	IsDiseaseAssociated bool     `json:"is_disease_associated,omitempty"`
}

// GeneAnnotation groups the transcripts of one gene on a variant.
type GeneAnnotation struct {
	HgncID                int                    `json:"hgnc_id"`
	HgncSymbol            string                 `json:"hgnc_symbol,omitempty"`
	Chromosome            string                 `json:"chromosome,omitempty"`
	Transcripts           []TranscriptAnnotation `json:"transcripts,omitempty"`
	MostSevereConsequence string                 `json:"most_severe_consequence,omitempty"`
	MostSevereSift        string                 `json:"most_severe_sift,omitempty"`
	MostSeverePolyphen    string                 `json:"most_severe_polyphen,omitempty"`
	RegionAnnotation      string                 `json:"region_annotation,omitempty"`
	HgvsIdentifier        string                 `json:"hgvs_identifier,omitempty"`
	CanonicalTranscript   string                 `json:"canonical_transcript,omitempty"`
	Exon                  string                 `json:"exon,omitempty"`

	// Catalog and panel decoration.
	InheritanceModels            []string `json:"inheritance,omitempty"`
	ManualInheritanceModels      []string `json:"manual_inheritance,omitempty"`
	DiseaseAssociatedTranscripts []string `json:"disease_associated_transcripts,omitempty"`
	ManualPenetrance             bool     `json:"manual_penetrance,omitempty"`
	Mosaicism                    bool     `json:"mosaicism,omitempty"`
}

// Compound references a partner variant of the same case by its stable
// variant_id. The resolver fills RankScore, IsDismissed, Genes and
// NotLoaded once the partner is known.
type Compound struct {
	Variant       string         `json:"variant"`
	DisplayName   string         `json:"display_name"`
	CombinedScore float64        `json:"combined_score"`
	RankScore     *float64       `json:"rank_score,omitempty"`
	IsDismissed   bool           `json:"is_dismissed,omitempty"`
	Genes         []CompoundGene `json:"genes,omitempty"`
	NotLoaded     bool           `json:"not_loaded"`
}

// CompoundGene is the gene summary copied from a resolved partner.
type CompoundGene struct {
	HgncID               int    `json:"hgnc_id"`
	HgncSymbol           string `json:"hgnc_symbol,omitempty"`
	RegionAnnotation     string `json:"region_annotation,omitempty"`
	FunctionalAnnotation string `json:"functional_annotation,omitempty"`
}

// Clnsig is one ClinVar significance annotation.
type Clnsig struct {
	Value     int    `json:"value"`
	Accession string `json:"accession,omitempty"`
	Revstat   string `json:"revstat,omitempty"`
}

// IsPathogenic reports whether the level is pathogenic or likely so.
func (c Clnsig) IsPathogenic() bool {
	return c.Value == ClnsigPathogenic || c.Value == ClnsigLikelyPathogenic
}

// JSON column wrappers.

type GTCalls []GTCall

func (g GTCalls) Value() (driver.Value, error) {
	if len(g) == 0 {
		return "[]", nil
	}
	return json.Marshal(g)
}

func (g *GTCalls) Scan(value interface{}) error { return scanJSON(value, g) }

type GeneAnnotations []GeneAnnotation

func (g GeneAnnotations) Value() (driver.Value, error) {
	if len(g) == 0 {
		return "[]", nil
	}
	return json.Marshal(g)
}

func (g *GeneAnnotations) Scan(value interface{}) error { return scanJSON(value, g) }

type Compounds []Compound

func (c Compounds) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	return json.Marshal(c)
}

func (c *Compounds) Scan(value interface{}) error { return scanJSON(value, c) }

type ClnsigList []Clnsig

func (c ClnsigList) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	return json.Marshal(c)
}

func (c *ClnsigList) Scan(value interface{}) error { return scanJSON(value, c) }

func (m *SampleMetrics) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SampleMetrics) Scan(value interface{}) error { return scanJSON(value, m) }

// IsPathogenic reports whether any clnsig annotation is at a
// pathogenic or likely-pathogenic level.
func (v *Variant) IsPathogenic() bool {
	for _, cs := range v.Clnsig {
		if cs.IsPathogenic() {
			return true
		}
	}
	return false
}
