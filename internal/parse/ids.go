package parse

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

// MD5Key hashes the fields joined by single spaces. Every identifier
// derived here must be reproduced bit-identically by any structure
// referencing a variant, so the join format never changes.
func MD5Key(fields ...string) string {
	sum := md5.Sum([]byte(strings.Join(fields, " ")))
	return hex.EncodeToString(sum[:])
}

// VariantIDs holds the identifiers derived from a variant position.
type VariantIDs struct {
	SimpleID    string
	VariantID   string
	DisplayName string
	DocumentID  string
}

// NewVariantIDs constructs all identifiers for one variant.
//
// simple_id is a readable position reference, not unique. variant_id
// identifies the variant within one analysis type and survives reloads.
// document_id is scoped to the case and unique in the database.
func NewVariantIDs(chrom string, pos int, ref, alt, variantType, caseID string) VariantIDs {
	p := strconv.Itoa(pos)
	return VariantIDs{
		SimpleID:    strings.Join([]string{chrom, p, ref, alt}, "_"),
		VariantID:   MD5Key(chrom, p, ref, alt, variantType),
		DisplayName: strings.Join([]string{chrom, p, ref, alt, variantType}, "_"),
		DocumentID:  MD5Key(chrom, p, ref, alt, variantType, caseID),
	}
}

// PartnerVariantID computes the variant_id a compound partner would
// have, given its raw "chrom_pos_ref_alt" reference from genmod.
func PartnerVariantID(raw, variantType string) string {
	chrom, pos, ref, alt, ok := splitSimpleID(raw)
	if !ok {
		return ""
	}
	return MD5Key(chrom, pos, ref, alt, variantType)
}

// PartnerDocumentID computes the case-scoped document id of a compound
// partner, used to look up partners already persisted for the case.
func PartnerDocumentID(raw, variantType, caseID string) string {
	chrom, pos, ref, alt, ok := splitSimpleID(raw)
	if !ok {
		return ""
	}
	return MD5Key(chrom, pos, ref, alt, variantType, caseID)
}

func splitSimpleID(raw string) (chrom, pos, ref, alt string, ok bool) {
	parts := strings.Split(raw, "_")
	if len(parts) < 4 {
		return "", "", "", "", false
	}
	// Alleles may themselves contain underscores in symbolic alts, so
	// only the first three separators are structural.
	return parts[0], parts[1], parts[2], strings.Join(parts[3:], "_"), true
}
