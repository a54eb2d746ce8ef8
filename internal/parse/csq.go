package parse

import (
	"strconv"
	"strings"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// CSQResult is the outcome of expanding one CSQ annotation string.
type CSQResult struct {
	Transcripts []models.TranscriptAnnotation
	DbsnpIDs    []string
	CosmicIDs   []int
}

// ParseCSQ expands the VEP CSQ annotation into per-transcript entries.
// The raw value is comma separated per transcript and pipe separated
// per field, in the order fieldNames announces from the VCF header.
func ParseCSQ(raw string, fieldNames []string) CSQResult {
	var result CSQResult
	if raw == "" || len(fieldNames) == 0 {
		return result
	}

	dbsnpSeen := map[string]bool{}
	cosmicSeen := map[int]bool{}

	for _, entry := range strings.Split(raw, ",") {
		values := strings.Split(entry, "|")
		fields := make(map[string]string, len(fieldNames))
		for i, name := range fieldNames {
			if i >= len(values) {
				break
			}
			fields[name] = values[i]
		}

		tx := parseTranscript(fields)
		result.Transcripts = append(result.Transcripts, tx)

		for _, id := range strings.Split(fields["Existing_variation"], "&") {
			switch {
			case strings.HasPrefix(id, "rs"):
				if !dbsnpSeen[id] {
					dbsnpSeen[id] = true
					result.DbsnpIDs = append(result.DbsnpIDs, id)
				}
			case strings.HasPrefix(id, "COSM"):
				if n, err := strconv.Atoi(id[4:]); err == nil && !cosmicSeen[n] {
					cosmicSeen[n] = true
					result.CosmicIDs = append(result.CosmicIDs, n)
				}
			}
		}
	}

	return result
}

func parseTranscript(fields map[string]string) models.TranscriptAnnotation {
	tx := models.TranscriptAnnotation{
		TranscriptID:     strings.SplitN(fields["Feature"], ":", 2)[0],
		HgncSymbol:       fields["SYMBOL"],
		Impact:           fields["IMPACT"],
		Exon:             fields["EXON"],
		Intron:           fields["INTRON"],
		Biotype:          fields["BIOTYPE"],
		ManeSelect:       fields["MANE_SELECT"],
		ManePlusClinical: fields["MANE_PLUS_CLINICAL"],
		IsCanonical:      fields["CANONICAL"] == "YES",
	}

	if raw := fields["HGNC_ID"]; raw != "" {
		// VEP emits either "1234" or "HGNC:1234"
		raw = strings.TrimPrefix(raw, "HGNC:")
		if id, err := strconv.Atoi(raw); err == nil {
			tx.HgncID = id
		}
	}

	for _, term := range strings.Split(fields["Consequence"], "&") {
		if term == "" {
			continue
		}
		tx.FunctionalAnnotations = append(tx.FunctionalAnnotations, term)
		tx.RegionAnnotations = append(tx.RegionAnnotations, SORegion(term))
	}

	// SIFT and PolyPhen come as "term(score)"; only the term is kept.
	tx.SiftPrediction = predictionTerm(fields["SIFT"])
	tx.PolyphenPrediction = predictionTerm(fields["PolyPhen"])

	// HGVS names carry a "transcript:name" prefix.
	if parts := strings.Split(fields["HGVSc"], ":"); len(parts) > 1 {
		tx.CodingSequenceName = parts[len(parts)-1]
	}
	if parts := strings.Split(fields["HGVSp"], ":"); len(parts) > 1 {
		tx.ProteinSequenceName = parts[len(parts)-1]
	}

	switch fields["STRAND"] {
	case "1":
		tx.Strand = "+"
	case "-1":
		tx.Strand = "-"
	}

	for _, domain := range strings.Split(fields["DOMAINS"], "&") {
		name, id, ok := strings.Cut(domain, ":")
		if !ok {
			continue
		}
		switch name {
		case "Pfam_domain", "Pfam":
			tx.PfamDomain = id
		case "PROSITE_profiles":
			tx.PrositeProfile = id
		case "SMART_domains", "SMART":
			tx.SmartDomain = id
		}
	}

	return tx
}

func predictionTerm(raw string) string {
	if raw == "" {
		return "unknown"
	}
	return strings.SplitN(raw, "(", 2)[0]
}
