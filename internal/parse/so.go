// Package parse turns annotated VCF records into variant documents.
package parse

// soTerm holds the severity rank and region tag of one sequence
// ontology consequence term. Lower rank means more severe.
type soTerm struct {
	Rank   int
	Region string
}

// Region tags used for coding-interval bucketing and gene annotation.
const (
	RegionExonic     = "exonic"
	RegionSplicing   = "splicing"
	RegionNcRNA      = "ncRNA_exonic"
	RegionIntronic   = "intronic"
	RegionIntergenic = "intergenic_variant"
)

// soTerms maps every valid consequence term to its severity rank and
// the genomic region it implies.
var soTerms = map[string]soTerm{
	"transcript_ablation":                {1, "exonic"},
	"splice_donor_variant":               {2, "splicing"},
	"splice_acceptor_variant":            {3, "splicing"},
	"stop_gained":                        {4, "exonic"},
	"frameshift_variant":                 {5, "exonic"},
	"stop_lost":                          {6, "exonic"},
	"start_lost":                         {7, "exonic"},
	"initiator_codon_variant":            {8, "exonic"},
	"inframe_insertion":                  {9, "exonic"},
	"inframe_deletion":                   {10, "exonic"},
	"missense_variant":                   {11, "exonic"},
	"protein_altering_variant":           {12, "exonic"},
	"transcript_amplification":           {13, "exonic"},
	"splice_region_variant":              {14, "splicing"},
	"incomplete_terminal_codon_variant":  {15, "exonic"},
	"synonymous_variant":                 {16, "exonic"},
	"stop_retained_variant":              {17, "exonic"},
	"coding_sequence_variant":            {18, "exonic"},
	"mature_miRNA_variant":               {19, "ncRNA_exonic"},
	"5_prime_UTR_variant":                {20, "5UTR"},
	"3_prime_UTR_variant":                {21, "3UTR"},
	"non_coding_transcript_exon_variant": {22, "ncRNA_exonic"},
	"non_coding_exon_variant":            {23, "ncRNA_exonic"},
	"non_coding_transcript_variant":      {24, "ncRNA_exonic"},
	"nc_transcript_variant":              {25, "ncRNA_exonic"},
	"intron_variant":                     {26, "intronic"},
	"NMD_transcript_variant":             {27, "ncRNA"},
	"upstream_gene_variant":              {28, "upstream"},
	"downstream_gene_variant":            {29, "downstream"},
	"TFBS_ablation":                      {30, "TFBS"},
	"TFBS_amplification":                 {31, "TFBS"},
	"TF_binding_site_variant":            {32, "TFBS"},
	"regulatory_region_ablation":         {33, "regulatory_region"},
	"regulatory_region_amplification":    {34, "regulatory_region"},
	"regulatory_region_variant":          {35, "regulatory_region"},
	"feature_elongation":                 {36, "genomic_feature"},
	"feature_truncation":                 {37, "genomic_feature"},
	"intergenic_variant":                 {38, "intergenic_variant"},
}

// soUnknownRank sorts unrecognised terms below every known one.
const soUnknownRank = 1 << 30

// SORank returns the severity rank of term. Unknown terms get
// soUnknownRank so they never win a most-severe comparison.
func SORank(term string) int {
	if so, ok := soTerms[term]; ok {
		return so.Rank
	}
	return soUnknownRank
}

// SORegion returns the region tag of term, or "" when unknown.
func SORegion(term string) string {
	return soTerms[term].Region
}
