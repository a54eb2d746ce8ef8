// Package models defines the persisted documents of the case loader.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Variant categories.
const (
	CategorySNV      = "snv"
	CategorySV       = "sv"
	CategorySTR      = "str"
	CategoryMEI      = "mei"
	CategoryCancer   = "cancer"
	CategoryCancerSV = "cancer_sv"
	CategoryFusion   = "fusion"
)

// Variant types.
const (
	VariantTypeClinical = "clinical"
	VariantTypeResearch = "research"
)

// Analysis tracks.
const (
	TrackRare   = "rare"
	TrackCancer = "cancer"
)

// Per-caller call states.
const (
	CallPass     = "Pass"
	CallFiltered = "Filtered"
)

// Genome builds accepted by the loader.
var ValidBuilds = []string{"37", "38"}

// ClnsigMap translates ClinVar significance terms to the legacy integer
// levels. Unrecognised terms map to ClnsigOther.
var ClnsigMap = map[string]int{
	"uncertain_significance": 0,
	"not_provided":           1,
	"benign":                 2,
	"likely_benign":          3,
	"likely_pathogenic":      4,
	"pathogenic":             5,
	"drug_response":          6,
	"histocompatibility":     7,
	"other":                  255,
}

// ClnsigOther is the integer level for unrecognised significance terms.
const ClnsigOther = 255

// Pathogenic clnsig levels. Any of these admits a variant regardless of
// rank score.
const (
	ClnsigLikelyPathogenic = 4
	ClnsigPathogenic       = 5
)

// StringArray stores a slice of strings as a JSON column.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// IntArray stores a slice of ints as a JSON column.
type IntArray []int

func (a IntArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

func (a *IntArray) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// FloatMap stores named float values (frequencies, sub-scores) as JSON.
type FloatMap map[string]float64

func (m FloatMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

func (m *FloatMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// IntMap stores named integer values (per-slice counts) as JSON.
type IntMap map[string]int

func (m IntMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

func (m *IntMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// StringMap stores named string values (caller states) as JSON.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

func (m *StringMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("models: cannot scan non-text value into JSON column")
	}
}
