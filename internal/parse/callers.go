package parse

import (
	"strings"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// snvCallers are the variant callers recognised in the set= tag, in
// the order their rules are evaluated.
var snvCallers = []string{"gatk", "samtools", "freebayes"}

// ParseCallers interprets the INFO "set" annotation written by GATK
// CombineVariants. The grammar is fixed: "Intersection" marks every
// caller Pass, "FilteredInAll" marks every caller Filtered,
// "filterIn<caller>" marks that caller Filtered and a bare caller name
// marks it Pass. The first rule that fires for a caller wins.
func ParseCallers(rec *vcf.Record, category string) models.StringMap {
	callers := make(models.StringMap, len(snvCallers))
	for _, c := range snvCallers {
		callers[c] = ""
	}

	raw := rec.InfoString("set")
	if raw == "" {
		return callers
	}

	for _, entry := range strings.Split(raw, "-") {
		switch {
		case entry == "Intersection":
			for _, c := range snvCallers {
				if callers[c] == "" {
					callers[c] = models.CallPass
				}
			}
		case entry == "FilteredInAll":
			for _, c := range snvCallers {
				if callers[c] == "" {
					callers[c] = models.CallFiltered
				}
			}
		case strings.HasPrefix(entry, "filterIn"):
			name := strings.TrimPrefix(entry, "filterIn")
			for _, c := range snvCallers {
				if strings.EqualFold(name, c) && callers[c] == "" {
					callers[c] = models.CallFiltered
				}
			}
		default:
			for _, c := range snvCallers {
				if entry == c && callers[c] == "" {
					callers[c] = models.CallPass
				}
			}
		}
	}

	return callers
}
