package parse

import (
	"strconv"
	"strings"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// ParseClnsig reads the ClinVar annotations of a record. Several
// historic annotation formats exist; text terms are mapped through the
// fixed name table and unknown terms are retained as level 255.
func ParseClnsig(rec *vcf.Record) models.ClnsigList {
	acc := rec.InfoString("CLNACC")
	if acc == "" {
		acc = rec.InfoString("CLNVID")
	}
	sig := strings.ToLower(rec.InfoString("CLNSIG"))
	revstat := strings.ToLower(rec.InfoString("CLNREVSTAT"))

	if sig == "" {
		return nil
	}

	var annotations models.ClnsigList
	revstats := splitAnnotation(revstat)
	joined := strings.Join(revstats, ",")

	for _, term := range splitAnnotation(sig) {
		annotations = append(annotations, models.Clnsig{
			Value:     clnsigLevel(term),
			Accession: acc,
			Revstat:   joined,
		})
	}
	return annotations
}

// splitAnnotation breaks a ClinVar value on every separator the
// different annotation eras used.
func splitAnnotation(raw string) []string {
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "&", ",")
	raw = strings.ReplaceAll(raw, "/", ",")
	raw = strings.ReplaceAll(raw, "|", ",")
	var terms []string
	for _, term := range strings.Split(raw, ",") {
		term = strings.TrimLeft(strings.TrimSpace(term), "_")
		if term == "" {
			continue
		}
		terms = append(terms, strings.Join(strings.Fields(term), "_"))
	}
	return terms
}

// clnsigLevel maps one significance term to its integer level.
func clnsigLevel(term string) int {
	if n, err := strconv.Atoi(term); err == nil {
		return n
	}
	if level, ok := models.ClnsigMap[term]; ok {
		return level
	}
	return models.ClnsigOther
}

// IsPathogenic reports whether the record carries a ClinVar
// significance that mandates loading regardless of rank score. Both
// the INFO annotations and the VEP CSQ string are consulted.
func IsPathogenic(rec *vcf.Record) bool {
	if csq := strings.ToLower(rec.InfoString("CSQ")); csq != "" {
		for _, term := range pathogenicTerms {
			if strings.Contains(csq, term) {
				return true
			}
		}
	}

	for _, annotation := range ParseClnsig(rec) {
		if annotation.IsPathogenic() {
			return true
		}
	}
	return false
}

var pathogenicTerms = []string{
	"pathogenic",
	"likely_pathogenic",
	"conflicting_interpretations_of_pathogenicity",
	"conflicting_interpretations",
}
