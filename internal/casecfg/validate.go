package casecfg

import (
	"fmt"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// ConfigError signals a missing or invalid case config field.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Message)
}

// PedigreeError signals inconsistent family structure in the config.
type PedigreeError struct {
	Message string
}

func (e *PedigreeError) Error() string {
	return fmt.Sprintf("pedigree error: %s", e.Message)
}

// Validate checks required fields, enumerated values and pedigree
// consistency. No state is written on failure.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return &ConfigError{Message: "owner is required"}
	}
	if c.Family == "" {
		return &ConfigError{Message: "family is required"}
	}
	if c.HumanGenomeBuild == "" {
		return &ConfigError{Message: "human_genome_build is required"}
	}
	if !contains(models.ValidBuilds, c.HumanGenomeBuild) {
		return &ConfigError{Message: fmt.Sprintf(
			"human_genome_build %q is not one of %v", c.HumanGenomeBuild, models.ValidBuilds)}
	}
	if c.Track != "" && c.Track != models.TrackRare && c.Track != models.TrackCancer {
		return &ConfigError{Message: fmt.Sprintf("track %q must be rare or cancer", c.Track)}
	}

	if len(c.Samples) == 0 {
		return &PedigreeError{Message: "no samples supplied"}
	}

	ids := map[string]bool{}
	for _, sample := range c.Samples {
		if sample.SampleID == "" {
			return &PedigreeError{Message: "sample without sample_id"}
		}
		if ids[sample.SampleID] {
			return &PedigreeError{Message: "duplicated sample " + sample.SampleID}
		}
		ids[sample.SampleID] = true
	}

	for _, sample := range c.Samples {
		if _, ok := normalizeSex(sample.Sex); !ok {
			return &PedigreeError{Message: fmt.Sprintf(
				"sample %s has invalid sex %q", sample.SampleID, sample.Sex)}
		}
		if _, ok := normalizePhenotype(sample.Phenotype); !ok {
			return &PedigreeError{Message: fmt.Sprintf(
				"sample %s has invalid phenotype %q", sample.SampleID, sample.Phenotype)}
		}
		if sample.AnalysisType != "" && !contains(models.AnalysisTypes, sample.AnalysisType) {
			return &ConfigError{Message: fmt.Sprintf(
				"sample %s has invalid analysis_type %q", sample.SampleID, sample.AnalysisType)}
		}
		if sample.Father != "" && sample.Father != "0" && !ids[sample.Father] {
			return &PedigreeError{Message: fmt.Sprintf(
				"sample %s references missing father %s", sample.SampleID, sample.Father)}
		}
		if sample.Mother != "" && sample.Mother != "0" && !ids[sample.Mother] {
			return &PedigreeError{Message: fmt.Sprintf(
				"sample %s references missing mother %s", sample.SampleID, sample.Mother)}
		}
	}

	return nil
}

// normalizeSex maps ped codes and names onto the stored sex values.
func normalizeSex(raw string) (string, bool) {
	switch raw {
	case "1", models.SexMale:
		return models.SexMale, true
	case "2", models.SexFemale:
		return models.SexFemale, true
	case "", "0", "other", models.SexUnknown:
		return models.SexUnknown, true
	}
	return "", false
}

// normalizePhenotype maps ped codes and names onto the stored
// phenotype values.
func normalizePhenotype(raw string) (string, bool) {
	switch raw {
	case "2", models.PhenotypeAffected:
		return models.PhenotypeAffected, true
	case "1", models.PhenotypeUnaffected:
		return models.PhenotypeUnaffected, true
	case "", "0", "-9", models.PhenotypeUnknown:
		return models.PhenotypeUnknown, true
	}
	return "", false
}

func sexCode(raw string) string {
	sex, _ := normalizeSex(raw)
	return sex
}

func phenotypeCode(raw string) string {
	phenotype, _ := normalizePhenotype(raw)
	return phenotype
}
