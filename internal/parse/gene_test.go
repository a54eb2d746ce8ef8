package parse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

var csqFields = []string{
	"Allele", "Consequence", "IMPACT", "SYMBOL", "HGNC_ID", "Feature",
	"EXON", "HGVSc", "HGVSp", "SIFT", "PolyPhen", "CANONICAL", "STRAND",
	"DOMAINS", "Existing_variation",
}

func TestParseCSQ(t *testing.T) {
	raw := strings.Join([]string{
		"C|missense_variant&splice_region_variant|MODERATE|ABC1|HGNC:1234|ENST0001" +
			"|2/5|ENST0001:c.100A>C|ENSP0001:p.Thr34Pro|deleterious(0.01)|probably_damaging(0.95)" +
			"|YES|1|Pfam_domain:PF0001&PROSITE_profiles:PS0001|rs123&COSM456",
		"C|intron_variant||ABC1|HGNC:1234|ENST0002|||||||-1||",
	}, ",")

	result := ParseCSQ(raw, csqFields)
	require.Len(t, result.Transcripts, 2)

	tx := result.Transcripts[0]
	assert.Equal(t, "ENST0001", tx.TranscriptID)
	assert.Equal(t, 1234, tx.HgncID)
	assert.Equal(t, "ABC1", tx.HgncSymbol)
	assert.Equal(t, []string{"missense_variant", "splice_region_variant"}, tx.FunctionalAnnotations)
	assert.Equal(t, []string{"exonic", "splicing"}, tx.RegionAnnotations)
	assert.Equal(t, "deleterious", tx.SiftPrediction)
	assert.Equal(t, "probably_damaging", tx.PolyphenPrediction)
	assert.Equal(t, "c.100A>C", tx.CodingSequenceName)
	assert.Equal(t, "p.Thr34Pro", tx.ProteinSequenceName)
	assert.True(t, tx.IsCanonical)
	assert.Equal(t, "+", tx.Strand)
	assert.Equal(t, "PF0001", tx.PfamDomain)
	assert.Equal(t, "PS0001", tx.PrositeProfile)

	assert.Equal(t, []string{"rs123"}, result.DbsnpIDs)
	assert.Equal(t, []int{456}, result.CosmicIDs)

	assert.Equal(t, "-", result.Transcripts[1].Strand)
	assert.Equal(t, "unknown", result.Transcripts[1].SiftPrediction)
}

func TestParseGenesMostSevere(t *testing.T) {
	transcripts := []models.TranscriptAnnotation{
		{
			TranscriptID:          "ENST0001",
			HgncID:                1234,
			HgncSymbol:            "ABC1",
			FunctionalAnnotations: []string{"intron_variant"},
			SiftPrediction:        "tolerated",
		},
		{
			TranscriptID:          "ENST0002",
			HgncID:                1234,
			HgncSymbol:            "ABC1",
			FunctionalAnnotations: []string{"missense_variant"},
			SiftPrediction:        "deleterious",
			PolyphenPrediction:    "probably_damaging",
		},
	}

	genes, truncated := ParseGenes(transcripts)
	require.Len(t, genes, 1)
	assert.False(t, truncated)

	gene := genes[0]
	assert.Equal(t, 1234, gene.HgncID)
	assert.Equal(t, "missense_variant", gene.MostSevereConsequence)
	assert.Equal(t, "deleterious", gene.MostSevereSift)
	assert.Equal(t, "exonic", gene.RegionAnnotation)
	assert.Len(t, gene.Transcripts, 2)
}

func TestParseGenesCanonicalNames(t *testing.T) {
	transcripts := []models.TranscriptAnnotation{
		{
			TranscriptID:          "ENST0001",
			HgncID:                1234,
			FunctionalAnnotations: []string{"missense_variant"},
			CodingSequenceName:    "c.1A>C",
		},
		{
			TranscriptID:          "ENST0002",
			HgncID:                1234,
			FunctionalAnnotations: []string{"intron_variant"},
			CodingSequenceName:    "c.2A>C",
			IsCanonical:           true,
		},
	}

	genes, _ := ParseGenes(transcripts)
	require.Len(t, genes, 1)
	assert.Equal(t, "c.2A>C", genes[0].HgvsIdentifier)
	assert.Equal(t, "ENST0002", genes[0].CanonicalTranscript)
}

func TestParseGenesCap(t *testing.T) {
	var transcripts []models.TranscriptAnnotation
	for i := 1; i <= 35; i++ {
		transcripts = append(transcripts, models.TranscriptAnnotation{
			TranscriptID:          fmt.Sprintf("ENST%04d", i),
			HgncID:                i,
			FunctionalAnnotations: []string{"missense_variant"},
		})
	}

	genes, truncated := ParseGenes(transcripts)
	assert.Len(t, genes, maxGenesPerVariant)
	assert.True(t, truncated)
}

func TestParseGenesSkipsUnidentified(t *testing.T) {
	transcripts := []models.TranscriptAnnotation{
		{TranscriptID: "ENST0001", FunctionalAnnotations: []string{"intergenic_variant"}},
	}
	genes, truncated := ParseGenes(transcripts)
	assert.Empty(t, genes)
	assert.False(t, truncated)
}

func TestSORanks(t *testing.T) {
	assert.Equal(t, 1, SORank("transcript_ablation"))
	assert.Equal(t, 38, SORank("intergenic_variant"))
	assert.Equal(t, soUnknownRank, SORank("made_up_term"))
	assert.Equal(t, "splicing", SORegion("splice_donor_variant"))
}
