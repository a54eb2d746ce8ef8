package parse

import (
	"strconv"
	"strings"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// ParseGenotypes emits one call per case individual in VCF sample
// order. samplePositions maps individual_id to the sample column index.
func ParseGenotypes(rec *vcf.Record, individuals []models.Individual, samplePositions map[string]int) models.GTCalls {
	var calls models.GTCalls
	for _, ind := range individuals {
		pos, ok := samplePositions[ind.IndividualID]
		if !ok {
			continue
		}
		calls = append(calls, parseGenotype(rec, ind, pos))
	}
	return calls
}

func parseGenotype(rec *vcf.Record, ind models.Individual, pos int) models.GTCall {
	call := models.GTCall{
		SampleID:        ind.IndividualID,
		DisplayName:     ind.DisplayName,
		GenotypeCall:    normalizeGT(rec.SampleField(pos, "GT")),
		ReadDepth:       parseIntField(rec.SampleField(pos, "DP"), -1),
		GenotypeQuality: parseIntField(rec.SampleField(pos, "GQ"), -1),
		AltFrequency:    -1,
	}

	if ad := rec.SampleField(pos, "AD"); ad != "" && ad != "." {
		for _, d := range strings.Split(ad, ",") {
			call.AlleleDepths = append(call.AlleleDepths, parseIntField(d, 0))
		}
	}
	if len(call.AlleleDepths) >= 2 {
		total := 0
		for _, d := range call.AlleleDepths {
			total += d
		}
		if total > 0 {
			call.AltFrequency = float64(call.AlleleDepths[1]) / float64(total)
		}
	}

	// Caller specific tags, passed through only when present.
	if v := rec.SampleField(pos, "AMC"); v != "" && v != "." {
		n := parseIntField(v, -1)
		call.AltMC = &n
	}
	if v := rec.SampleField(pos, "CN"); v != "" && v != "." {
		n := parseIntField(v, -1)
		call.CopyNumber = &n
	}
	if v := rec.SampleField(pos, "FFPM"); v != "" && v != "." {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			call.FFPM = &f
		}
	}
	if v := rec.SampleField(pos, "SDP"); v != "" && v != "." {
		n := parseIntField(v, -1)
		call.SDP = &n
	}
	if v := rec.SampleField(pos, "SDR"); v != "" && v != "." {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			call.SDR = &f
		}
	}
	if v := rec.SampleField(pos, "SO"); v != "" && v != "." {
		call.SO = v
	}
	if v := rec.SampleField(pos, "SR"); v != "" && v != "." {
		n := parseIntField(strings.Split(v, ",")[0], -1)
		call.SplitRead = &n
	}

	return call
}

// normalizeGT keeps only the diploid call, mapping phased separators
// to unphased form.
func normalizeGT(gt string) string {
	if gt == "" {
		return "./."
	}
	return strings.ReplaceAll(gt, "|", "/")
}

func parseIntField(s string, fallback int) int {
	if s == "" || s == "." {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// ParseSampleMetrics summarises one sample for the cancer track, where
// the documents carry top-level tumor and normal blocks.
func ParseSampleMetrics(rec *vcf.Record, ind models.Individual, pos int) *models.SampleMetrics {
	call := parseGenotype(rec, ind, pos)
	m := &models.SampleMetrics{
		IndSampleID: ind.IndividualID,
		DisplayName: ind.DisplayName,
		ReadDepth:   call.ReadDepth,
		AltFreq:     call.AltFrequency,
	}
	if len(call.AlleleDepths) >= 2 {
		m.RefDepth = call.AlleleDepths[0]
		m.AltDepth = call.AlleleDepths[1]
	}
	return m
}
