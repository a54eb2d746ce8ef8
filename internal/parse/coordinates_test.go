package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

func TestParseCoordinatesSNV(t *testing.T) {
	rec := &vcf.Record{Chrom: "1", Pos: 100, Ref: "A", Alt: "T", Info: map[string]string{}}
	c, err := ParseCoordinates(rec, models.CategorySNV)
	require.NoError(t, err)

	assert.Equal(t, "snv", c.SubCategory)
	assert.Equal(t, 100, c.End)
	assert.Equal(t, 1, c.Length)
}

func TestParseCoordinatesDeletion(t *testing.T) {
	rec := &vcf.Record{Chrom: "1", Pos: 100, Ref: "ACGT", Alt: "A", Info: map[string]string{}}
	c, err := ParseCoordinates(rec, models.CategorySNV)
	require.NoError(t, err)

	assert.Equal(t, "indel", c.SubCategory)
	assert.Equal(t, 103, c.End)
	assert.Equal(t, 3, c.Length)
}

func TestParseCoordinatesInsertion(t *testing.T) {
	rec := &vcf.Record{Chrom: "1", Pos: 100, Ref: "A", Alt: "ACGT", Info: map[string]string{}}
	c, err := ParseCoordinates(rec, models.CategorySNV)
	require.NoError(t, err)

	assert.Equal(t, "indel", c.SubCategory)
	assert.Equal(t, 103, c.End)
	assert.Equal(t, 3, c.Length)
}

func TestParseCoordinatesSVDeletion(t *testing.T) {
	rec := &vcf.Record{
		Chrom: "2", Pos: 1000, Ref: "N", Alt: "<DEL>",
		Info: map[string]string{"SVTYPE": "DEL", "SVLEN": "-1000", "END": "2000"},
	}
	c, err := ParseCoordinates(rec, models.CategorySV)
	require.NoError(t, err)

	assert.Equal(t, "del", c.SubCategory)
	assert.Equal(t, 2000, c.End)
	assert.Equal(t, 1000, c.Length)
}

func TestParseCoordinatesSVUncertainLength(t *testing.T) {
	rec := &vcf.Record{
		Chrom: "2", Pos: 1000, Ref: "N", Alt: "<INS>",
		Info: map[string]string{"SVTYPE": "INS", "END": "1000"},
	}
	c, err := ParseCoordinates(rec, models.CategorySV)
	require.NoError(t, err)

	assert.Equal(t, -1, c.Length)
}

func TestParseCoordinatesBreakend(t *testing.T) {
	rec := &vcf.Record{
		Chrom: "11", Pos: 7000, Ref: "N", Alt: "N[chr17:198982[",
		Info: map[string]string{"SVTYPE": "BND", "MATEID": "MantaBND:0:1"},
	}
	c, err := ParseCoordinates(rec, models.CategorySV)
	require.NoError(t, err)

	assert.Equal(t, "bnd", c.SubCategory)
	assert.Equal(t, "MantaBND:0:1", c.MateID)
	assert.Equal(t, "17", c.EndChrom)
	assert.Equal(t, bndReach, c.End)
	assert.Equal(t, bndReach, c.Length)
}

func TestParseCoordinatesSVMissingType(t *testing.T) {
	rec := &vcf.Record{Chrom: "2", Pos: 1000, Ref: "N", Alt: "<DEL>", Info: map[string]string{}}
	_, err := ParseCoordinates(rec, models.CategorySV)
	require.Error(t, err)
}

func TestNormalizeChrom(t *testing.T) {
	assert.Equal(t, "1", NormalizeChrom("chr1"))
	assert.Equal(t, "MT", NormalizeChrom("chrMT"))
	assert.Equal(t, "X", NormalizeChrom("X"))
}

func TestIsMitochondrial(t *testing.T) {
	assert.True(t, IsMitochondrial("M"))
	assert.True(t, IsMitochondrial("MT"))
	assert.False(t, IsMitochondrial("1"))
}
