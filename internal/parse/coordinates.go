package parse

import (
	"strings"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// bndReach stands in for end and length of a breakend, whose partner
// sits on another chromosome.
const bndReach = 100000000000

// Coordinates is the derived positional information of a variant.
type Coordinates struct {
	End         int
	Length      int
	SubCategory string
	MateID      string
	EndChrom    string
}

// NormalizeChrom strips a leading "chr" prefix from a chromosome name.
// Both "M" and "MT" are accepted for the mitochondrion.
func NormalizeChrom(chrom string) string {
	return strings.TrimPrefix(strings.TrimPrefix(chrom, "chr"), "Chr")
}

// IsMitochondrial reports whether chrom names the mitochondrion.
func IsMitochondrial(chrom string) bool {
	return chrom == "M" || chrom == "MT"
}

// ParseCoordinates derives end, length and sub_category for a record.
// Positions are 1-based inclusive.
func ParseCoordinates(rec *vcf.Record, category string) (Coordinates, error) {
	c := Coordinates{}

	switch category {
	case models.CategorySV, models.CategoryCancerSV:
		svType := strings.ToLower(rec.InfoString("SVTYPE"))
		if svType == "" {
			return c, &vcf.ParseError{Message: "structural variant without SVTYPE"}
		}
		c.SubCategory = svType

		if svType == "bnd" {
			c.MateID = rec.InfoString("MATEID")
			c.EndChrom = parseBNDEndChrom(rec.Alt, rec.Chrom)
			c.Length = bndReach
			c.End = bndReach
			return c, nil
		}

		if svlen, ok := rec.InfoInt("SVLEN"); ok {
			if svlen < 0 {
				svlen = -svlen
			}
			c.Length = svlen
		} else {
			// -1 marks uncertain length
			c.Length = -1
		}
		if end, ok := rec.InfoInt("END"); ok {
			c.End = end
		} else {
			c.End = rec.Pos
		}
		return c, nil

	default:
		refLen := len(rec.Ref)
		altLen := len(rec.Alt)
		switch {
		case refLen == altLen:
			c.Length = altLen
			c.End = rec.Pos + altLen - 1
			if altLen == 1 {
				c.SubCategory = "snv"
			} else {
				c.SubCategory = "indel"
			}
		case refLen > altLen:
			c.Length = refLen - altLen
			c.End = rec.Pos + refLen - 1
			c.SubCategory = "indel"
		default:
			c.Length = altLen - refLen
			c.End = rec.Pos + altLen - 1
			c.SubCategory = "indel"
		}
		return c, nil
	}
}

// parseBNDEndChrom extracts the partner chromosome from a breakend alt
// like "N[2:321682[" or "]13:123456]T". Falls back to the record's own
// chromosome when the alt is not in breakend notation.
func parseBNDEndChrom(alt, chrom string) string {
	start := strings.IndexAny(alt, "[]")
	if start < 0 {
		return chrom
	}
	rest := alt[start+1:]
	end := strings.IndexByte(rest, ':')
	if end < 0 {
		return chrom
	}
	return NormalizeChrom(rest[:end])
}
