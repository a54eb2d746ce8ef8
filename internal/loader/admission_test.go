package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/parse"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

func TestAdmit(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	base := func() *models.Variant {
		return &models.Variant{
			Chromosome:  "1",
			Position:    14464,
			Reference:   "A",
			Alternative: "T",
			Category:    models.CategorySNV,
			SubCategory: "snv",
			VariantID:   "abc123",
			RankScore:   score(3),
		}
	}
	rec := func(info map[string]string) *vcf.Record {
		if info == nil {
			info = map[string]string{}
		}
		return &vcf.Record{Chrom: "1", Pos: 14464, Ref: "A", Alt: "T", Info: info}
	}

	c := &models.Case{ID: "cust000-643594", Build: "37", RankScoreThreshold: 8}
	empty := &Indexes{
		managed:    map[string]struct{}{},
		causatives: map[string]struct{}{},
	}

	tests := []struct {
		name string
		mod  func(v *models.Variant)
		info map[string]string
		idx  *Indexes
		want bool
	}{
		{
			name: "below threshold dropped",
			want: false,
		},
		{
			name: "no rank score admitted",
			mod:  func(v *models.Variant) { v.RankScore = nil },
			want: true,
		},
		{
			name: "at threshold admitted",
			mod:  func(v *models.Variant) { v.RankScore = score(8) },
			want: true,
		},
		{
			name: "above threshold admitted",
			mod:  func(v *models.Variant) { v.RankScore = score(12) },
			want: true,
		},
		{
			name: "mitochondrial MT admitted",
			mod:  func(v *models.Variant) { v.Chromosome = "MT" },
			want: true,
		},
		{
			name: "mitochondrial M admitted",
			mod:  func(v *models.Variant) { v.Chromosome = "M" },
			want: true,
		},
		{
			name: "repeat expansion admitted",
			mod:  func(v *models.Variant) { v.Category = models.CategorySTR },
			want: true,
		},
		{
			name: "pathogenic clnsig admitted",
			info: map[string]string{"CLNSIG": "Pathogenic"},
			want: true,
		},
		{
			name: "conflicting interpretations in csq admitted",
			info: map[string]string{"CSQ": "T|missense_variant|conflicting_interpretations_of_pathogenicity"},
			want: true,
		},
		{
			name: "benign clnsig dropped",
			info: map[string]string{"CLNSIG": "Benign"},
			want: false,
		},
		{
			name: "managed variant admitted",
			idx: &Indexes{
				managed: map[string]struct{}{
					parse.NewVariantIDs("1", 14464, "A", "T", "clinical", "").VariantID: {},
				},
				causatives: map[string]struct{}{},
			},
			want: true,
		},
		{
			name: "managed matching ignores sub category",
			mod:  func(v *models.Variant) { v.SubCategory = "indel" },
			idx: &Indexes{
				managed: map[string]struct{}{
					parse.NewVariantIDs("1", 14464, "A", "T", "clinical", "").VariantID: {},
				},
				causatives: map[string]struct{}{},
			},
			want: true,
		},
		{
			name: "managed entry at another position dropped",
			idx: &Indexes{
				managed: map[string]struct{}{
					parse.NewVariantIDs("1", 99999, "A", "T", "clinical", "").VariantID: {},
				},
				causatives: map[string]struct{}{},
			},
			want: false,
		},
		{
			name: "causative in another case admitted",
			idx: &Indexes{
				managed:    map[string]struct{}{},
				causatives: map[string]struct{}{"abc123": {}},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base()
			if tt.mod != nil {
				tt.mod(v)
			}
			idx := tt.idx
			if idx == nil {
				idx = empty
			}
			assert.Equal(t, tt.want, Admit(v, rec(tt.info), c, idx))
		})
	}
}
