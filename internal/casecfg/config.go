// Package casecfg loads and validates the analysis config one case
// load starts from.
package casecfg

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// Config is the case load configuration a collaborator delivers.
type Config struct {
	Owner      string `yaml:"owner"`
	Family     string `yaml:"family"`
	FamilyName string `yaml:"family_name"`

	Samples []Sample `yaml:"samples"`

	VcfSNV              string `yaml:"vcf_snv"`
	VcfSV               string `yaml:"vcf_sv"`
	VcfSTR              string `yaml:"vcf_str"`
	VcfMEI              string `yaml:"vcf_mei"`
	VcfCancer           string `yaml:"vcf_cancer"`
	VcfCancerSV         string `yaml:"vcf_cancer_sv"`
	VcfSNVResearch      string `yaml:"vcf_snv_research"`
	VcfSVResearch       string `yaml:"vcf_sv_research"`
	VcfCancerResearch   string `yaml:"vcf_cancer_research"`
	VcfCancerSVResearch string `yaml:"vcf_cancer_sv_research"`

	DefaultGenePanels []string `yaml:"default_gene_panels"`
	GenePanels        []string `yaml:"gene_panels"`

	RankModelVersion   string   `yaml:"rank_model_version"`
	SVRankModelVersion string   `yaml:"sv_rank_model_version"`
	RankScoreThreshold *float64 `yaml:"rank_score_threshold"`

	HumanGenomeBuild string `yaml:"human_genome_build"`
	Track            string `yaml:"track"`

	Synopsis       string   `yaml:"synopsis"`
	PhenotypeTerms []string `yaml:"phenotype_terms"`
	Cohorts        []string `yaml:"cohorts"`

	Madeline       string     `yaml:"madeline"`
	DeliveryReport string     `yaml:"delivery_report"`
	AnalysisDate   *time.Time `yaml:"analysis_date"`
}

// Sample is one pedigree member of the case.
type Sample struct {
	SampleID     string `yaml:"sample_id"`
	DisplayName  string `yaml:"sample_name"`
	Sex          string `yaml:"sex"`
	Phenotype    string `yaml:"phenotype"`
	Father       string `yaml:"father"`
	Mother       string `yaml:"mother"`
	AnalysisType string `yaml:"analysis_type"`
	CaptureKit   string `yaml:"capture_kit"`
	BamPath      string `yaml:"bam_path"`
	TumorType    string `yaml:"tumor_type"`
	TissueType   string `yaml:"tissue_type"`
	IsTumor      bool   `yaml:"tumor"`
}

// Load reads and validates a case config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a case config document.
func Parse(raw []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("malformed case config: %v", err)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CaseID derives the store-wide case id from owner and family.
func (c *Config) CaseID() string {
	return c.Owner + "-" + c.Family
}

// VCFFiles maps each configured file kind to its path, keyed by the
// canonical kind names.
func (c *Config) VCFFiles() models.StringMap {
	files := models.StringMap{}
	for kind, path := range map[string]string{
		"vcf_snv":                c.VcfSNV,
		"vcf_sv":                 c.VcfSV,
		"vcf_str":                c.VcfSTR,
		"vcf_mei":                c.VcfMEI,
		"vcf_cancer":             c.VcfCancer,
		"vcf_cancer_sv":          c.VcfCancerSV,
		"vcf_snv_research":       c.VcfSNVResearch,
		"vcf_sv_research":        c.VcfSVResearch,
		"vcf_cancer_research":    c.VcfCancerResearch,
		"vcf_cancer_sv_research": c.VcfCancerSVResearch,
	} {
		if path != "" {
			files[kind] = path
		}
	}
	return files
}

// ResolvedTrack returns the configured track, inferring cancer from
// the presence of any cancer VCF when unset.
func (c *Config) ResolvedTrack() string {
	if c.Track != "" {
		return c.Track
	}
	if c.VcfCancer != "" || c.VcfCancerSV != "" ||
		c.VcfCancerResearch != "" || c.VcfCancerSVResearch != "" {
		return models.TrackCancer
	}
	return models.TrackRare
}

// BuildCase converts a validated config into the persisted case
// document.
func (c *Config) BuildCase() *models.Case {
	displayName := c.FamilyName
	if displayName == "" {
		displayName = c.Family
	}

	threshold := 0.0
	if c.RankScoreThreshold != nil {
		threshold = *c.RankScoreThreshold
	}

	doc := &models.Case{
		ID:                 c.CaseID(),
		DisplayName:        displayName,
		Owner:              c.Owner,
		Collaborators:      models.StringArray{c.Owner},
		Build:              c.HumanGenomeBuild,
		Track:              c.ResolvedTrack(),
		VCFFiles:           c.VCFFiles(),
		RankModelVersion:   c.RankModelVersion,
		SVRankModelVersion: c.SVRankModelVersion,
		RankScoreThreshold: threshold,
		Synopsis:           c.Synopsis,
		PhenotypeTerms:     models.StringArray(c.PhenotypeTerms),
		Cohorts:            models.StringArray(c.Cohorts),
		MadelineInfo:       c.Madeline,
		DeliveryReport:     c.DeliveryReport,
	}
	if c.AnalysisDate != nil {
		doc.AnalysisDate = *c.AnalysisDate
	}

	for _, name := range c.DefaultGenePanels {
		doc.Panels = append(doc.Panels, models.CasePanel{
			PanelName: name,
			IsDefault: true,
		})
	}
	for _, name := range c.GenePanels {
		if contains(c.DefaultGenePanels, name) {
			continue
		}
		doc.Panels = append(doc.Panels, models.CasePanel{PanelName: name})
	}

	for _, sample := range c.Samples {
		displayName := sample.DisplayName
		if displayName == "" {
			displayName = sample.SampleID
		}
		doc.Individuals = append(doc.Individuals, models.Individual{
			IndividualID: sample.SampleID,
			DisplayName:  displayName,
			Sex:          sexCode(sample.Sex),
			Phenotype:    phenotypeCode(sample.Phenotype),
			Father:       sample.Father,
			Mother:       sample.Mother,
			AnalysisType: sample.AnalysisType,
			CaptureKits:  captureKits(sample.CaptureKit),
			BamFile:      sample.BamPath,
			TumorType:    sample.TumorType,
			IsTumor:      sample.IsTumor,
		})
	}

	return doc
}

func captureKits(kit string) []string {
	if kit == "" {
		return nil
	}
	return []string{kit}
}

func contains(list []string, item string) bool {
	for _, candidate := range list {
		if candidate == item {
			return true
		}
	}
	return false
}
