package vcf

import (
	"strconv"
	"strings"
)

// Record represents one data line of a VCF file.
type Record struct {
	Chrom   string
	Pos     int
	ID      string
	Ref     string
	Alt     string
	Qual    *float64
	Filter  string
	Info    map[string]string
	Format  []string
	Samples [][]string
}

// Has reports whether the INFO field carries the given key, including
// flag-type keys without a value.
func (r *Record) Has(key string) bool {
	_, ok := r.Info[key]
	return ok
}

// InfoString returns the INFO value for key, or "" when absent.
func (r *Record) InfoString(key string) string {
	return r.Info[key]
}

// InfoInt parses the INFO value for key as an integer.
func (r *Record) InfoInt(key string) (int, bool) {
	v, ok := r.Info[key]
	if !ok || v == "" || v == "." {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// InfoFloat parses the INFO value for key as a float.
func (r *Record) InfoFloat(key string) (float64, bool) {
	v, ok := r.Info[key]
	if !ok || v == "" || v == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// InfoList splits a comma separated INFO value, dropping empty entries.
func (r *Record) InfoList(key string) []string {
	v, ok := r.Info[key]
	if !ok || v == "" || v == "." {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item != "" && item != "." {
			out = append(out, item)
		}
	}
	return out
}

// Filters splits the FILTER column into the names of the filters the
// record failed. "." and "PASS" both yield nil.
func (r *Record) Filters() []string {
	if r.Filter == "" || r.Filter == "." || r.Filter == "PASS" {
		return nil
	}
	return strings.Split(r.Filter, ";")
}

// SampleField returns the value of a FORMAT field for the sample at
// index i, or "" when the field or sample is missing.
func (r *Record) SampleField(i int, field string) string {
	if i < 0 || i >= len(r.Samples) {
		return ""
	}
	for j, name := range r.Format {
		if name == field {
			if j < len(r.Samples[i]) {
				return r.Samples[i][j]
			}
			return ""
		}
	}
	return ""
}
