package loader

import (
	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/parse"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// Admit decides whether one streamed variant is persisted. A variant
// below the case threshold still goes in when it sits on the
// mitochondrial chromosome, is a repeat expansion, carries a
// pathogenic ClinVar assertion, matches the managed whitelist, or was
// marked causative in another case. Variants without a rank score are
// never dropped.
func Admit(v *models.Variant, rec *vcf.Record, c *models.Case, idx *Indexes) bool {
	if v.RankScore == nil {
		return true
	}
	if *v.RankScore >= c.RankScoreThreshold {
		return true
	}
	if parse.IsMitochondrial(v.Chromosome) {
		return true
	}
	if v.Category == models.CategorySTR {
		return true
	}
	if parse.IsPathogenic(rec) {
		return true
	}
	if idx.IsManaged(v) {
		return true
	}
	return idx.IsCausative(v)
}
