package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// conservedMin holds the predictor specific threshold above which a
// score counts as conserved.
var conservedMin = map[string]float64{
	"gerp":   2,
	"phast":  0.8,
	"phylop": 2.5,
}

var conservationInfoKeys = map[string]string{
	"gerp":   "dbNSFP_GERP___RS",
	"phast":  "dbNSFP_phastCons100way_vertebrate",
	"phylop": "dbNSFP_phyloP100way_vertebrate",
}

// Conservations holds the per-predictor conservation verdicts.
type Conservations struct {
	Gerp   models.StringArray
	Phast  models.StringArray
	Phylop models.StringArray
}

// ParseConservations reads the dbNSFP conservation annotations of a
// record and classifies each score against the predictor threshold.
func ParseConservations(rec *vcf.Record) Conservations {
	return Conservations{
		Gerp:   parseConservation(rec, "gerp"),
		Phast:  parseConservation(rec, "phast"),
		Phylop: parseConservation(rec, "phylop"),
	}
}

func parseConservation(rec *vcf.Record, predictor string) models.StringArray {
	raw := rec.InfoString(conservationInfoKeys[predictor])
	if raw == "" || raw == "." {
		return nil
	}

	var verdicts models.StringArray
	for _, field := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '&' }) {
		score, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		if score >= conservedMin[predictor] {
			verdicts = append(verdicts, fmt.Sprintf("Conserved (%.2f)", score))
		} else {
			verdicts = append(verdicts, fmt.Sprintf("NotConserved (%.2f)", score))
		}
	}
	return verdicts
}
