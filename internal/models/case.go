package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Individual sex values.
const (
	SexMale    = "male"
	SexFemale  = "female"
	SexUnknown = "unknown"
)

// Individual phenotype values.
const (
	PhenotypeAffected   = "affected"
	PhenotypeUnaffected = "unaffected"
	PhenotypeUnknown    = "unknown"
)

// Analysis types accepted for an individual.
var AnalysisTypes = []string{"wgs", "wes", "mixed", "panel", "external", "unknown"}

// VCF file kinds recognised on a case, in load order.
var VCFFileKinds = []string{
	"vcf_snv", "vcf_sv", "vcf_str", "vcf_mei",
	"vcf_cancer", "vcf_cancer_sv",
	"vcf_snv_research", "vcf_sv_research",
	"vcf_cancer_research", "vcf_cancer_sv_research",
}

// Case is one family analysis. The id is "<owner>-<family>".
type Case struct {
	bun.BaseModel `bun:"table:cases,alias:c"`

	ID            string      `bun:"id,pk" json:"_id"`
	DisplayName   string      `bun:"display_name,notnull" json:"display_name"`
	Owner         string      `bun:"owner,notnull" json:"owner"`
	Collaborators StringArray `bun:"collaborators,type:json" json:"collaborators,omitempty"`

	Individuals Individuals `bun:"individuals,type:json" json:"individuals"`
	Build       string      `bun:"genome_build,notnull" json:"genome_build"`
	Track       string      `bun:"track" json:"track,omitempty"`

	VCFFiles           StringMap `bun:"vcf_files,type:json" json:"vcf_files,omitempty"`
	RankModelVersion   string    `bun:"rank_model_version" json:"rank_model_version,omitempty"`
	SVRankModelVersion string    `bun:"sv_rank_model_version" json:"sv_rank_model_version,omitempty"`
	RankScoreThreshold float64   `bun:"rank_score_threshold" json:"rank_score_threshold"`

	Panels         CasePanels  `bun:"panels,type:json" json:"panels,omitempty"`
	Causatives     StringArray `bun:"causatives,type:json" json:"causatives,omitempty"`
	PartialCausatives StringArray `bun:"partial_causatives,type:json" json:"partial_causatives,omitempty"`
	Suspects       StringArray `bun:"suspects,type:json" json:"suspects,omitempty"`
	SangerOrdered  StringArray `bun:"sanger_ordered,type:json" json:"sanger_ordered,omitempty"`

	VariantsStats IntMap `bun:"variants_stats,type:json" json:"variants_stats,omitempty"`

	Synopsis       string      `bun:"synopsis" json:"synopsis,omitempty"`
	PhenotypeTerms StringArray `bun:"phenotype_terms,type:json" json:"phenotype_terms,omitempty"`
	Cohorts        StringArray `bun:"cohorts,type:json" json:"cohorts,omitempty"`
	MadelineInfo   string      `bun:"madeline_info" json:"madeline_info,omitempty"`
	DeliveryReport string      `bun:"delivery_report" json:"delivery_report,omitempty"`

	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	AnalysisDate time.Time `bun:"analysis_date,nullzero" json:"analysis_date,omitempty"`
}

// Individual is one sample of a case.
type Individual struct {
	IndividualID string `json:"individual_id"`
	DisplayName  string `json:"display_name"`
	Sex          string `json:"sex"`
	Phenotype    string `json:"phenotype"`
	Father       string `json:"father,omitempty"`
	Mother       string `json:"mother,omitempty"`
	AnalysisType string `json:"analysis_type,omitempty"`
	CaptureKits  []string `json:"capture_kits,omitempty"`
	TumorType    string `json:"tumor_type,omitempty"`
	IsTumor      bool   `json:"is_tumor,omitempty"`
	BamFile      string `json:"bam_file,omitempty"`
}

// CasePanel is a reference to a gene panel the case was analysed with.
type CasePanel struct {
	PanelName   string    `json:"panel_name"`
	Version     float64   `json:"version,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	NrGenes     int       `json:"nr_genes,omitempty"`
	IsDefault   bool      `json:"is_default,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

type Individuals []Individual

func (i Individuals) Value() (driver.Value, error) {
	if len(i) == 0 {
		return "[]", nil
	}
	return json.Marshal(i)
}

func (i *Individuals) Scan(value interface{}) error { return scanJSON(value, i) }

type CasePanels []CasePanel

func (p CasePanels) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "[]", nil
	}
	return json.Marshal(p)
}

func (p *CasePanels) Scan(value interface{}) error { return scanJSON(value, p) }

// GenmodKey is the family key used in family-prefixed INFO fields such
// as RankScore and Compounds. Internal case ids carry an owner prefix;
// the pipeline only knows the family name.
func (c *Case) GenmodKey() string {
	if strings.Contains(c.ID, "-") && c.DisplayName != "" {
		return c.DisplayName
	}
	return c.ID
}

// DefaultPanelNames returns the names of the default panels.
func (c *Case) DefaultPanelNames() []string {
	var names []string
	for _, p := range c.Panels {
		if p.IsDefault {
			names = append(names, p.PanelName)
		}
	}
	return names
}
