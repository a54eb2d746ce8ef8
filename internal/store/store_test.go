package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared", false)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Setup(context.Background()))
	return s
}

func testVariant(id, variantID string, rankScore float64) *models.Variant {
	return &models.Variant{
		ID:          id,
		DocumentID:  id,
		VariantID:   variantID,
		CaseID:      "cust000-643594",
		Institute:   "cust000",
		VariantType: models.VariantTypeClinical,
		Category:    models.CategorySNV,
		Chromosome:  "1",
		Position:    1000,
		Reference:   "A",
		Alternative: "T",
		RankScore:   &rankScore,
	}
}

func TestInsertVariantsAndDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	variants := []*models.Variant{
		testVariant("doc1", "var1", 10),
		testVariant("doc2", "var2", 20),
	}

	n, err := s.InsertVariants(ctx, variants)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.VariantByID(ctx, "doc1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "var1", got.VariantID)

	deleted, err := s.DeleteVariants(ctx, "cust000-643594", models.VariantTypeClinical, models.CategorySNV)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	got, err = s.VariantByID(ctx, "doc1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInsertVariantsDuplicateFallback(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := testVariant("doc1", "var1", 10)
	_, err := s.InsertVariants(ctx, []*models.Variant{first})
	require.NoError(t, err)

	// A bucket carrying an already persisted document must fall back
	// to per-variant upserts and still land the new document.
	dup := testVariant("doc1", "var1", 10)
	dup.Compounds = models.Compounds{{Variant: "partner", DisplayName: "1_2_A_T", NotLoaded: false}}
	fresh := testVariant("doc3", "var3", 30)

	// Only the fresh document counts as inserted; the duplicate is an
	// update of an existing row.
	n, err := s.InsertVariants(ctx, []*models.Variant{dup, fresh})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	created, err := s.UpsertVariant(ctx, testVariant("doc1", "var1", 10))
	require.NoError(t, err)
	assert.False(t, created)
	created, err = s.UpsertVariant(ctx, testVariant("doc4", "var4", 40))
	require.NoError(t, err)
	assert.True(t, created)

	got, err := s.VariantByID(ctx, "doc1")
	require.NoError(t, err)
	require.Len(t, got.Compounds, 1)
	assert.Equal(t, "partner", got.Compounds[0].Variant)

	got, err = s.VariantByID(ctx, "doc3")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestRankedVariantIDs(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.InsertVariants(ctx, []*models.Variant{
		testVariant("doc1", "var1", 5),
		testVariant("doc2", "var2", 25),
		testVariant("doc3", "var3", 15),
	})
	require.NoError(t, err)

	ids, err := s.RankedVariantIDs(ctx, "cust000-643594", models.VariantTypeClinical, models.CategorySNV)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc2", "doc3", "doc1"}, ids)

	require.NoError(t, s.UpdateVariantRanks(ctx, ids))

	top, err := s.VariantByID(ctx, "doc2")
	require.NoError(t, err)
	assert.Equal(t, 1, top.VariantRank)
	low, err := s.VariantByID(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, 3, low.VariantRank)
}

func TestUserActionSnapshotAndRestore(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rank := 3
	evaluated := testVariant("doc1", "var1", 10)
	evaluated.ManualRank = &rank
	evaluated.ACMGClassification = "likely_pathogenic"
	plain := testVariant("doc2", "var2", 20)
	imaged := testVariant("doc3", "var3", 5)
	imaged.CustomImages = json.RawMessage(`[{"title":"pileup"}]`)

	_, err := s.InsertVariants(ctx, []*models.Variant{evaluated, plain, imaged})
	require.NoError(t, err)

	// The plain variant carries no user action and must stay outside
	// the snapshot even though its custom_images column holds the JSON
	// text "null".
	snapshot, err := s.VariantsWithUserActions(ctx, "cust000-643594")
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	ids := []string{snapshot[0].ID, snapshot[1].ID}
	assert.ElementsMatch(t, []string{"doc1", "doc3"}, ids)
	if snapshot[0].ID != "doc1" {
		snapshot[0], snapshot[1] = snapshot[1], snapshot[0]
	}

	// Simulate a reload: delete and insert a clean document with the
	// same variant_id, then restore.
	_, err = s.DeleteVariants(ctx, "cust000-643594", models.VariantTypeClinical, models.CategorySNV)
	require.NoError(t, err)
	_, err = s.InsertVariants(ctx, []*models.Variant{testVariant("doc1", "var1", 10)})
	require.NoError(t, err)

	matched, err := s.RestoreUserActions(ctx, "cust000-643594", snapshot[0])
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := s.VariantByID(ctx, "doc1")
	require.NoError(t, err)
	require.NotNil(t, got.ManualRank)
	assert.Equal(t, 3, *got.ManualRank)
	assert.Equal(t, "likely_pathogenic", got.ACMGClassification)
}

func TestCreateCaseIntegrity(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	c := &models.Case{
		ID:          "cust000-643594",
		DisplayName: "643594",
		Owner:       "cust000",
		Build:       "37",
	}
	require.NoError(t, s.CreateCase(ctx, c, false))

	err := s.CreateCase(ctx, c, false)
	var integrityErr *IntegrityError
	require.ErrorAs(t, err, &integrityErr)

	require.NoError(t, s.CreateCase(ctx, c, true))
}

func TestCreateCaseUpdateKeepsUserState(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	c := &models.Case{
		ID:            "cust000-643594",
		DisplayName:   "643594",
		Owner:         "cust000",
		Build:         "37",
		Collaborators: models.StringArray{"cust000"},
	}
	require.NoError(t, s.CreateCase(ctx, c, false))

	// Users mark state on the stored case between analysis runs.
	c.Causatives = models.StringArray{"aabbccdd"}
	c.Suspects = models.StringArray{"eeff0011"}
	c.DeliveryReport = "/delivery/643594.html"
	require.NoError(t, s.UpdateCase(ctx, c))

	fresh := &models.Case{
		ID:                 "cust000-643594",
		DisplayName:        "643594",
		Owner:              "cust000",
		Build:              "37",
		RankScoreThreshold: 8,
		Collaborators:      models.StringArray{"cust000", "cust002"},
	}
	require.NoError(t, s.CreateCase(ctx, fresh, true))

	got, err := s.CaseByID(ctx, "cust000-643594")
	require.NoError(t, err)
	assert.Equal(t, models.StringArray{"aabbccdd"}, got.Causatives)
	assert.Equal(t, models.StringArray{"eeff0011"}, got.Suspects)
	assert.Equal(t, "/delivery/643594.html", got.DeliveryReport)
	assert.Equal(t, models.StringArray{"cust000", "cust002"}, got.Collaborators)
	assert.Equal(t, 8.0, got.RankScoreThreshold)
}

func TestCausativeVariantIDs(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEvent(ctx, &models.Event{
		Verb: models.VerbMarkCausative, Institute: "cust000",
		CaseID: "cust000-1", VariantID: "varA",
	}))
	require.NoError(t, s.CreateEvent(ctx, &models.Event{
		Verb: models.VerbMarkPartialCausative, Institute: "cust001",
		CaseID: "cust001-2", VariantID: "varB",
	}))
	require.NoError(t, s.CreateEvent(ctx, &models.Event{
		Verb: models.VerbLoadVariants, Institute: "cust000",
		CaseID: "cust000-1", VariantID: "varC",
	}))

	causatives, err := s.CausativeVariantIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, causatives, 2)
	assert.Contains(t, causatives, "varA")
	assert.Contains(t, causatives, "varB")
	assert.NotContains(t, causatives, "varC")
}

func TestManagedVariants(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	mv := &models.ManagedVariant{
		ManagedID:   models.ManagedVariantID("14", 76548781, "CTGGACC", "G", "snv", "indel", "37"),
		Chromosome:  "14",
		Position:    76548781,
		Reference:   "CTGGACC",
		Alternative: "G",
		Category:    "snv",
		SubCategory: "indel",
		Build:       "37",
	}
	require.NoError(t, s.UpsertManagedVariant(ctx, mv))
	// Upserting the same position again must not duplicate.
	again := *mv
	again.ID = 0
	again.Description = "updated"
	require.NoError(t, s.UpsertManagedVariant(ctx, &again))

	mvs, err := s.ManagedVariants(ctx, "37")
	require.NoError(t, err)
	require.Len(t, mvs, 1)
	assert.Equal(t, "14_76548781_CTGGACC_G_snv_indel_37", mvs[0].ManagedID)
	assert.Equal(t, "14", mvs[0].Chromosome)
	assert.Equal(t, "updated", mvs[0].Description)

	other, err := s.ManagedVariants(ctx, "38")
	require.NoError(t, err)
	assert.Empty(t, other)
}
