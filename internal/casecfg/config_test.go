package casecfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

const validConfig = `
owner: cust000
family: "643594"
samples:
  - sample_id: ADM1059A2
    sample_name: proband
    sex: male
    phenotype: affected
    father: ADM1059A1
    mother: ADM1059A3
    analysis_type: wgs
    capture_kit: Agilent_SureSelectCRE.V1
  - sample_id: ADM1059A1
    sex: "1"
    phenotype: unaffected
  - sample_id: ADM1059A3
    sex: "2"
    phenotype: "1"
vcf_snv: /vcfs/643594.clinical.vcf.gz
vcf_sv: /vcfs/643594.sv.clinical.vcf.gz
default_gene_panels: [panel1]
gene_panels: [panel1, OMIM-AUTO]
rank_model_version: "1.25"
rank_score_threshold: 8
human_genome_build: "37"
`

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, "cust000-643594", cfg.CaseID())
	assert.Equal(t, models.TrackRare, cfg.ResolvedTrack())
	require.NotNil(t, cfg.RankScoreThreshold)
	assert.Equal(t, 8.0, *cfg.RankScoreThreshold)

	files := cfg.VCFFiles()
	assert.Len(t, files, 2)
	assert.Equal(t, "/vcfs/643594.clinical.vcf.gz", files["vcf_snv"])
}

func TestBuildCase(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	c := cfg.BuildCase()
	assert.Equal(t, "cust000-643594", c.ID)
	assert.Equal(t, "643594", c.DisplayName)
	assert.Equal(t, "cust000", c.Owner)
	assert.Equal(t, "37", c.Build)
	assert.Equal(t, 8.0, c.RankScoreThreshold)

	require.Len(t, c.Individuals, 3)
	proband := c.Individuals[0]
	assert.Equal(t, "ADM1059A2", proband.IndividualID)
	assert.Equal(t, "proband", proband.DisplayName)
	assert.Equal(t, models.SexMale, proband.Sex)
	assert.Equal(t, models.PhenotypeAffected, proband.Phenotype)
	assert.Equal(t, []string{"Agilent_SureSelectCRE.V1"}, proband.CaptureKits)

	// Ped-coded values are normalized.
	assert.Equal(t, models.SexMale, c.Individuals[1].Sex)
	assert.Equal(t, models.PhenotypeUnaffected, c.Individuals[2].Phenotype)

	// panel1 is default, OMIM-AUTO is not, and panel1 is not repeated.
	require.Len(t, c.Panels, 2)
	assert.True(t, c.Panels[0].IsDefault)
	assert.Equal(t, "panel1", c.Panels[0].PanelName)
	assert.False(t, c.Panels[1].IsDefault)
}

func TestDefaultThreshold(t *testing.T) {
	cfg, err := Parse([]byte(`
owner: cust000
family: fam1
human_genome_build: "38"
samples:
  - sample_id: S1
`))
	require.NoError(t, err)

	c := cfg.BuildCase()
	assert.Equal(t, 0.0, c.RankScoreThreshold)
	assert.Equal(t, models.SexUnknown, c.Individuals[0].Sex)
}

func TestTrackInference(t *testing.T) {
	cfg, err := Parse([]byte(`
owner: cust000
family: fam1
human_genome_build: "38"
vcf_cancer: /vcfs/tumor.vcf.gz
samples:
  - sample_id: S1
    tumor: true
`))
	require.NoError(t, err)

	assert.Equal(t, models.TrackCancer, cfg.ResolvedTrack())
	c := cfg.BuildCase()
	assert.Equal(t, models.TrackCancer, c.Track)
	assert.True(t, c.Individuals[0].IsTumor)
}

func TestValidateMissingOwner(t *testing.T) {
	_, err := Parse([]byte("family: fam1\nhuman_genome_build: \"37\"\nsamples: [{sample_id: S1}]"))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "owner")
}

func TestValidateBadBuild(t *testing.T) {
	_, err := Parse([]byte("owner: c\nfamily: f\nhuman_genome_build: \"19\"\nsamples: [{sample_id: S1}]"))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestValidateNoSamples(t *testing.T) {
	_, err := Parse([]byte("owner: c\nfamily: f\nhuman_genome_build: \"37\""))
	var pedErr *PedigreeError
	require.ErrorAs(t, err, &pedErr)
}

func TestValidateMissingParent(t *testing.T) {
	_, err := Parse([]byte(`
owner: cust000
family: fam1
human_genome_build: "37"
samples:
  - sample_id: S1
    father: GHOST
`))
	var pedErr *PedigreeError
	require.ErrorAs(t, err, &pedErr)
	assert.Contains(t, err.Error(), "GHOST")
}

func TestValidateBadSex(t *testing.T) {
	_, err := Parse([]byte(`
owner: cust000
family: fam1
human_genome_build: "37"
samples:
  - sample_id: S1
    sex: banana
`))
	var pedErr *PedigreeError
	require.ErrorAs(t, err, &pedErr)
}
