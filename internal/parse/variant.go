package parse

import (
	"strconv"
	"strings"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/vcf"
)

// Context carries the per-file state a record needs to be parsed:
// the case, the analysis type, and the header-derived schemas.
type Context struct {
	Case                 *models.Case
	VariantType          string
	Category             string
	CSQFields            []string
	RankResultCategories []string

	// SamplePositions maps individual_id to the sample column index
	// of the VCF being read.
	SamplePositions map[string]int
}

// NewContext resolves the parse context for one VCF file, matching the
// case individuals against the file's sample columns.
func NewContext(p *vcf.Parser, c *models.Case, variantType, category string) *Context {
	positions := make(map[string]int, len(c.Individuals))
	for i, name := range p.SampleNames() {
		for _, ind := range c.Individuals {
			if ind.IndividualID == name {
				positions[ind.IndividualID] = i
			}
		}
	}
	return &Context{
		Case:                 c,
		VariantType:          variantType,
		Category:             category,
		CSQFields:            p.CSQFields(),
		RankResultCategories: p.RankResultCategories(),
		SamplePositions:      positions,
	}
}

// Variant parses one VCF record into an undecorated variant document.
// Catalog and panel decoration is applied later by the builder.
func (ctx *Context) Variant(rec *vcf.Record) (*models.Variant, error) {
	if strings.Contains(rec.Alt, ",") {
		return nil, &vcf.ParseError{
			Message: "multiallelic record, input must be decomposed and normalized",
		}
	}

	chrom := NormalizeChrom(rec.Chrom)
	alt := rec.Alt
	if alt == "" || alt == "." {
		if ctx.Category != models.CategorySTR {
			return nil, &vcf.ParseError{Message: "record without alternative allele"}
		}
		alt = "."
	}

	coords, err := ParseCoordinates(rec, ctx.Category)
	if err != nil {
		return nil, err
	}

	genmodKey := ctx.Case.GenmodKey()
	ids := NewVariantIDs(chrom, rec.Pos, rec.Ref, alt, ctx.VariantType, ctx.Case.ID)

	v := &models.Variant{
		ID:          ids.DocumentID,
		DocumentID:  ids.DocumentID,
		VariantID:   ids.VariantID,
		SimpleID:    ids.SimpleID,
		DisplayName: ids.DisplayName,
		CaseID:      ctx.Case.ID,
		VariantType: ctx.VariantType,
		Category:    ctx.Category,
		SubCategory: coords.SubCategory,
		Chromosome:  chrom,
		Position:    rec.Pos,
		End:         coords.End,
		Length:      &coords.Length,
		EndChrom:    coords.EndChrom,
		MateID:      coords.MateID,
		Reference:   rec.Ref,
		Alternative: alt,
		Quality:     rec.Qual,
	}

	if filters := rec.Filters(); filters != nil {
		v.Filters = models.StringArray(filters)
	} else {
		v.Filters = models.StringArray{"PASS"}
	}

	if rec.ID != "" && rec.ID != "." {
		v.DbsnpID = rec.ID
	}

	v.RankScore = ParseRankScore(rec.InfoString("RankScore"), genmodKey)
	v.RankScoreResults = ParseRankResult(rec.InfoString("RankResult"), ctx.RankResultCategories)
	if score, ok := rec.InfoFloat("FusionScore"); ok {
		if v.RankScoreResults == nil {
			v.RankScoreResults = models.FloatMap{}
		}
		v.RankScoreResults["fusion_score"] = score
	}
	if score, ok := rec.InfoFloat("SomaticScore"); ok {
		if v.RankScoreResults == nil {
			v.RankScoreResults = models.FloatMap{}
		}
		v.RankScoreResults["somatic_score"] = score
	}

	v.Compounds = ParseCompounds(rec.InfoString("Compounds"), genmodKey, ctx.VariantType)
	v.GeneticModels = parseGeneticModels(rec.InfoString("GeneticModels"), genmodKey)

	if n, ok := rec.InfoInt("AZLENGTH"); ok {
		v.AzLength = &n
	}
	if f, ok := rec.InfoFloat("AZQUAL"); ok {
		v.AzQual = &f
	}

	ctx.parseSTRFields(rec, v)

	csq := ParseCSQ(rec.InfoString("CSQ"), ctx.CSQFields)
	genes, truncated := ParseGenes(csq.Transcripts)
	v.Genes = genes
	v.MissingData = truncated
	for _, gene := range genes {
		v.HgncIDs = append(v.HgncIDs, gene.HgncID)
	}
	if v.DbsnpID == "" && len(csq.DbsnpIDs) > 0 {
		v.DbsnpID = strings.Join(csq.DbsnpIDs, ";")
	}
	for _, raw := range rec.InfoList("COSMIC") {
		if !strings.HasPrefix(raw, "COSM") {
			continue
		}
		if n, err := strconv.Atoi(raw[4:]); err == nil {
			csq.CosmicIDs = append(csq.CosmicIDs, n)
		}
	}
	v.CosmicIDs = models.IntArray(csq.CosmicIDs)

	v.Clnsig = ParseClnsig(rec)
	v.Frequencies = ParseFrequencies(rec)

	if n, ok := rec.InfoInt("Obs"); ok {
		v.LocalObsOld = &n
	}
	if n, ok := rec.InfoInt("Hom"); ok {
		v.LocalObsHomOld = &n
	}

	if f, ok := rec.InfoFloat("CADD"); ok {
		v.CaddScore = &f
	} else if f, ok := rec.InfoFloat("CADD_PHRED"); ok {
		v.CaddScore = &f
	}
	if f, ok := rec.InfoFloat("REVEL"); ok {
		v.Revel = &f
	}
	if f, ok := rec.InfoFloat("SPIDEX"); ok {
		v.Spidex = &f
	}

	conservations := ParseConservations(rec)
	v.GerpConservation = conservations.Gerp
	v.PhastConservation = conservations.Phast
	v.PhylopConservation = conservations.Phylop

	v.Callers = ParseCallers(rec, ctx.Category)
	v.Samples = ParseGenotypes(rec, ctx.Case.Individuals, ctx.SamplePositions)

	if ctx.Case.Track == models.TrackCancer {
		ctx.parseCancerSamples(rec, v)
	}

	return v, nil
}

// parseSTRFields reads the short tandem repeat annotations written by
// ExpansionHunter and stranger.
func (ctx *Context) parseSTRFields(rec *vcf.Record, v *models.Variant) {
	if ctx.Category != models.CategorySTR {
		return
	}
	v.StrRepID = rec.InfoString("REPID")
	v.StrRU = rec.InfoString("RU")
	v.StrStatus = rec.InfoString("STR_STATUS")
	if n, ok := rec.InfoInt("REF"); ok {
		v.StrRef = &n
	}
	if n, ok := rec.InfoInt("RL"); ok {
		v.StrLen = &n
	}
	if f, ok := rec.InfoFloat("SWEGENMEAN"); ok {
		v.StrSwegenMean = &f
	}
	if f, ok := rec.InfoFloat("SWEGENSTD"); ok {
		v.StrSwegenStd = &f
	}
}

// parseCancerSamples fills the top-level tumor and normal blocks from
// the individuals flagged as tumor in the case config.
func (ctx *Context) parseCancerSamples(rec *vcf.Record, v *models.Variant) {
	for _, ind := range ctx.Case.Individuals {
		pos, ok := ctx.SamplePositions[ind.IndividualID]
		if !ok {
			continue
		}
		metrics := ParseSampleMetrics(rec, ind, pos)
		if ind.IsTumor {
			v.Tumor = metrics
		} else {
			v.Normal = metrics
		}
	}
}

// parseGeneticModels extracts the inheritance models genmod annotated
// for one family, formatted "family:model1|model2".
func parseGeneticModels(raw, genmodKey string) models.StringArray {
	if raw == "" {
		return nil
	}
	var found models.StringArray
	for _, familyEntry := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(familyEntry, ":")
		if !ok || key != genmodKey {
			continue
		}
		for _, model := range strings.Split(value, "|") {
			if model != "" {
				found = append(found, model)
			}
		}
	}
	return found
}
