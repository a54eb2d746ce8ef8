package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clinical-Genomics/scout-sub001/internal/catalog"
	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

func seedPanel(t *testing.T, s *store.Store) {
	t.Helper()
	panel := &models.GenePanel{
		PanelName: "panel1",
		Version:   1.0,
		Genes: models.PanelGenes{
			{
				HgncID:                       1884,
				Symbol:                       "CFTR",
				DiseaseAssociatedTranscripts: []string{"NM_000492"},
				InheritanceModels:            []string{"AR"},
				ReducedPenetrance:            true,
			},
		},
	}
	require.NoError(t, s.InsertGenePanel(context.Background(), panel))
}

func TestBuilderDecoratesGenes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	genes := []*models.HgncGene{
		{HgncID: 1884, HgncSymbol: "CFTR", Build: "37", Chromosome: "7",
			Start: 117105000, End: 117310000,
			InheritanceModels: models.StringArray{"AD"},
			Transcripts: models.HgncTranscripts{
				{EnsemblTranscriptID: "ENST00000003084", Start: 117105000, End: 117310000,
					RefseqIDs: []string{"NM_000492"}, IsPrimary: true},
			}},
	}
	require.NoError(t, s.InsertGenes(ctx, genes))
	seedPanel(t, s)

	cat, err := catalog.Build(ctx, s, "37", nil)
	require.NoError(t, err)

	c := testCase()
	c.Panels = models.CasePanels{{PanelName: "panel1", IsDefault: true}}
	panelInfo, err := catalog.BuildPanelInfo(ctx, s, c)
	require.NoError(t, err)

	builder := NewBuilder(cat, panelInfo, c.Owner)

	v := &models.Variant{
		Genes: models.GeneAnnotations{
			{
				HgncID: 1884,
				Transcripts: []models.TranscriptAnnotation{
					{TranscriptID: "ENST00000003084", IsCanonical: true},
					{TranscriptID: "ENST00000999999"},
				},
			},
		},
	}
	builder.Decorate(v)

	assert.Equal(t, "cust000", v.Institute)
	assert.Equal(t, models.StringArray{"CFTR"}, v.HgncSymbols)
	assert.Equal(t, models.StringArray{"panel1"}, v.Panels)

	gene := v.Genes[0]
	assert.Equal(t, "7", gene.Chromosome)
	assert.Equal(t, "CFTR", gene.HgncSymbol)
	// Catalog and panel inheritance are unioned; only the panel's model
	// counts as manual.
	assert.Equal(t, []string{"AD", "AR"}, gene.InheritanceModels)
	assert.Equal(t, []string{"AR"}, gene.ManualInheritanceModels)
	assert.Equal(t, []string{"NM_000492"}, gene.DiseaseAssociatedTranscripts)
	assert.True(t, gene.ManualPenetrance)
	assert.False(t, gene.Mosaicism)

	known := gene.Transcripts[0]
	assert.Equal(t, []string{"NM_000492"}, known.RefseqIDs)
	assert.True(t, known.IsPrimary)
	assert.True(t, known.IsDiseaseAssociated)

	unknown := gene.Transcripts[1]
	assert.Empty(t, unknown.RefseqIDs)
	assert.False(t, unknown.IsDiseaseAssociated)
}

func TestBuilderUnknownGene(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat, err := catalog.Build(ctx, s, "37", nil)
	require.NoError(t, err)
	c := testCase()
	panelInfo, err := catalog.BuildPanelInfo(ctx, s, c)
	require.NoError(t, err)

	builder := NewBuilder(cat, panelInfo, c.Owner)
	v := &models.Variant{
		Genes: models.GeneAnnotations{{HgncID: 99999, HgncSymbol: "FAKE1"}},
	}
	builder.Decorate(v)

	assert.Equal(t, models.StringArray{"FAKE1"}, v.HgncSymbols)
	assert.Empty(t, v.Panels)
	assert.Empty(t, v.Genes[0].InheritanceModels)
}

func TestCompoundSorting(t *testing.T) {
	score := func(f float64) *float64 { return &f }
	compounds := models.Compounds{
		{Variant: "a", CombinedScore: 10},
		{Variant: "b", CombinedScore: 24, RankScore: score(12)},
		{Variant: "c", CombinedScore: 17},
	}
	sortCompounds(compounds)

	assert.Equal(t, "b", compounds[0].Variant)
	assert.Equal(t, "c", compounds[1].Variant)
	assert.Equal(t, "a", compounds[2].Variant)
}
