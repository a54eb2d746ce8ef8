package parse

import (
	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// maxGenesPerVariant caps the genes attached to one variant. Variants
// spanning more genes, typically large SVs, are truncated and flagged
// with missing_data.
const maxGenesPerVariant = 30

// ParseGenes groups transcript annotations by gene and picks the most
// severe transcript for each. Transcripts without any gene identifier
// are skipped. Returns the genes in first-seen order and whether the
// gene cap truncated the list.
func ParseGenes(transcripts []models.TranscriptAnnotation) ([]models.GeneAnnotation, bool) {
	var order []int
	byGene := map[int][]models.TranscriptAnnotation{}
	truncated := false

	for _, tx := range transcripts {
		if tx.HgncID == 0 {
			continue
		}
		if _, seen := byGene[tx.HgncID]; !seen {
			if len(order) >= maxGenesPerVariant {
				truncated = true
				continue
			}
			order = append(order, tx.HgncID)
		}
		byGene[tx.HgncID] = append(byGene[tx.HgncID], tx)
	}

	genes := make([]models.GeneAnnotation, 0, len(order))
	for _, hgncID := range order {
		genes = append(genes, summarizeGene(hgncID, byGene[hgncID]))
	}
	return genes, truncated
}

// summarizeGene finds the most severe consequence over all transcripts
// of one gene. Lower SO rank is more severe.
func summarizeGene(hgncID int, transcripts []models.TranscriptAnnotation) models.GeneAnnotation {
	gene := models.GeneAnnotation{
		HgncID:      hgncID,
		Transcripts: transcripts,
	}

	mostSevereRank := soUnknownRank

	for _, tx := range transcripts {
		if gene.HgncSymbol == "" {
			gene.HgncSymbol = tx.HgncSymbol
		}
		if gene.HgvsIdentifier == "" {
			gene.HgvsIdentifier = tx.CodingSequenceName
		}
		if gene.CanonicalTranscript == "" {
			gene.CanonicalTranscript = tx.TranscriptID
		}
		if gene.Exon == "" {
			gene.Exon = tx.Exon
		}

		for _, term := range tx.FunctionalAnnotations {
			rank := SORank(term)
			if rank > mostSevereRank {
				continue
			}
			mostSevereRank = rank
			gene.MostSevereConsequence = term
			gene.MostSevereSift = tx.SiftPrediction
			gene.MostSeverePolyphen = tx.PolyphenPrediction
			gene.RegionAnnotation = SORegion(term)
		}

		// The canonical transcript names the variant when it has a
		// coding sequence name.
		if tx.IsCanonical && tx.CodingSequenceName != "" {
			gene.HgvsIdentifier = tx.CodingSequenceName
			gene.CanonicalTranscript = tx.TranscriptID
			gene.Exon = tx.Exon
		}
	}

	return gene
}
