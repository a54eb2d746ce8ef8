package parse

import (
	"strconv"
	"strings"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// ParseRankScore extracts the rank score for one family from a
// "family1:score,family2:score" annotation. Returns nil when the
// annotation is missing or unparseable, which downstream treats as
// always admitted.
func ParseRankScore(raw, genmodKey string) *float64 {
	if raw == "" {
		return nil
	}
	for _, entry := range strings.Split(raw, ",") {
		idx := strings.LastIndexByte(entry, ':')
		if idx < 0 {
			continue
		}
		if strings.TrimSpace(entry[:idx]) != genmodKey {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(entry[idx+1:]), 64)
		if err != nil {
			return nil
		}
		return &score
	}
	return nil
}

// ParseRankResult zips the pipe separated RankResult integers with the
// category names announced in the VCF header.
func ParseRankResult(raw string, categories []string) models.FloatMap {
	if raw == "" || len(categories) == 0 {
		return nil
	}
	values := strings.Split(raw, "|")
	results := make(models.FloatMap, len(categories))
	for i, category := range categories {
		if i >= len(values) {
			break
		}
		score, err := strconv.ParseFloat(values[i], 64)
		if err != nil {
			continue
		}
		results[category] = score
	}
	if len(results) == 0 {
		return nil
	}
	return results
}

// ParseCompounds extracts the compound partners annotated for one
// family. The annotation reads "family:ref>score|ref>score" where ref
// is the partner's chrom_pos_ref_alt name. The partner variant_id is
// derived so the resolver can match loaded partners directly.
func ParseCompounds(raw, genmodKey, variantType string) models.Compounds {
	if raw == "" {
		return nil
	}
	var compounds models.Compounds
	for _, familyEntry := range strings.Split(raw, ",") {
		idx := strings.IndexByte(familyEntry, ':')
		if idx < 0 {
			continue
		}
		if familyEntry[:idx] != genmodKey {
			continue
		}
		for _, entry := range strings.Split(familyEntry[idx+1:], "|") {
			if entry == "" {
				continue
			}
			name := entry
			score := 0.0
			if cut := strings.IndexByte(entry, '>'); cut >= 0 {
				name = entry[:cut]
				if s, err := strconv.ParseFloat(entry[cut+1:], 64); err == nil {
					score = s
				}
			}
			variantID := PartnerVariantID(name, variantType)
			if variantID == "" {
				continue
			}
			compounds = append(compounds, models.Compound{
				Variant:       variantID,
				DisplayName:   name,
				CombinedScore: score,
				NotLoaded:     true,
			})
		}
	}
	return compounds
}
