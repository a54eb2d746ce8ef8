package parse

import (
	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// frequencyKeys maps each stored frequency name to the INFO keys that
// may carry it, in preference order. Values that fail float conversion
// are dropped.
var frequencyKeys = map[string][]string{
	"thousand_g":              {"1000GAF"},
	"thousand_g_max":          {"1000G_MAX_AF"},
	"thousand_g_left":         {"left_1000GAF"},
	"thousand_g_right":        {"right_1000GAF"},
	"exac":                    {"EXACAF"},
	"exac_max":                {"ExAC_MAX_AF", "EXAC_MAX_AF"},
	"gnomad":                  {"GNOMADAF", "gnomad_af"},
	"gnomad_max":              {"GNOMADAF_MAX", "GNOMADAF_popmax", "gnomad_popmax_af"},
	"gnomad_mt_heteroplasmic": {"gnomad_mt_af_het"},
	"gnomad_mt_homoplasmic":   {"gnomad_mt_af_hom"},
	"swegen":                  {"SWEGENAF"},
	"swegen_alu_max":          {"swegen_alu_max"},
	"swegen_herv_max":         {"swegen_herv_max"},
	"swegen_l1_max":           {"swegen_l1_max"},
	"swegen_sva_max":          {"swegen_sva_max"},
	"swegen_mei_max":          {"swegen_mei_max"},
	"clingen_ngi":             {"clingen_ngi"},
	"clingen_mip":             {"clingen_mip"},
	"clingen_benign":          {"clingen_cgh_benign"},
	"clingen_pathogenic":      {"clingen_cgh_pathogenic"},
	"decipher":                {"decipher"},
}

// ParseFrequencies collects the known population frequencies of a
// record into one map. Only the enumerated keys are accepted.
func ParseFrequencies(rec *vcf.Record) models.FloatMap {
	frequencies := make(models.FloatMap)
	for name, infoKeys := range frequencyKeys {
		for _, key := range infoKeys {
			if value, ok := rec.InfoFloat(key); ok {
				frequencies[name] = value
				break
			}
		}
	}
	if len(frequencies) == 0 {
		return nil
	}
	return frequencies
}
