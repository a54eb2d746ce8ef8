package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

// DuckDBImporter reads a gene catalog from a DuckDB database and loads
// it into the document store. The path can be a local file or an S3
// URL (s3://bucket/catalog.duckdb).
type DuckDBImporter struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// NewDuckDBImporter opens the catalog database at path.
func NewDuckDBImporter(path string) (*DuckDBImporter, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	// S3 URLs need the httpfs extension.
	if strings.HasPrefix(path, "s3://") {
		if _, err := db.Exec("INSTALL httpfs; LOAD httpfs;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("load httpfs extension: %w", err)
		}
	}

	return &DuckDBImporter{db: db, path: path, logger: zap.NewNop()}, nil
}

// SetLogger sets the logger for progress messages.
func (i *DuckDBImporter) SetLogger(l *zap.Logger) {
	i.logger = l
}

// Close closes the database connection.
func (i *DuckDBImporter) Close() error {
	return i.db.Close()
}

// LoadGenes reads every catalog gene of one build, with transcripts.
func (i *DuckDBImporter) LoadGenes(build string) ([]*models.HgncGene, error) {
	rows, err := i.db.Query(`
		SELECT hgnc_id, hgnc_symbol, ensembl_gene_id, build, chrom, start, end_,
		       inheritance_models, phenotypes, description
		FROM genes
		WHERE build = ?
		ORDER BY chrom, start
	`, build)
	if err != nil {
		return nil, fmt.Errorf("query genes: %w", err)
	}
	defer rows.Close()

	var genes []*models.HgncGene
	for rows.Next() {
		gene, err := scanGene(rows)
		if err != nil {
			return nil, err
		}
		genes = append(genes, gene)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, gene := range genes {
		if err := i.loadTranscripts(gene); err != nil {
			return nil, err
		}
	}
	return genes, nil
}

func scanGene(rows *sql.Rows) (*models.HgncGene, error) {
	gene := &models.HgncGene{}
	var ensembl, inheritance, phenotypes, description sql.NullString
	err := rows.Scan(
		&gene.HgncID, &gene.HgncSymbol, &ensembl, &gene.Build,
		&gene.Chromosome, &gene.Start, &gene.End,
		&inheritance, &phenotypes, &description,
	)
	if err != nil {
		return nil, fmt.Errorf("scan gene: %w", err)
	}
	gene.EnsemblGeneID = ensembl.String
	gene.InheritanceModels = splitList(inheritance.String)
	gene.Phenotypes = splitList(phenotypes.String)
	gene.Description = description.String
	return gene, nil
}

func (i *DuckDBImporter) loadTranscripts(gene *models.HgncGene) error {
	rows, err := i.db.Query(`
		SELECT ensembl_transcript_id, start, end_, refseq_ids, is_primary
		FROM transcripts
		WHERE hgnc_id = ? AND build = ?
		ORDER BY start
	`, gene.HgncID, gene.Build)
	if err != nil {
		return fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx models.HgncTranscript
		var refseq sql.NullString
		if err := rows.Scan(&tx.EnsemblTranscriptID, &tx.Start, &tx.End, &refseq, &tx.IsPrimary); err != nil {
			return fmt.Errorf("scan transcript: %w", err)
		}
		tx.RefseqIDs = splitList(refseq.String)
		gene.Transcripts = append(gene.Transcripts, tx)
	}
	return rows.Err()
}

// Import replaces the store's gene catalog for one build with the
// DuckDB contents. Returns the number of imported genes.
func (i *DuckDBImporter) Import(ctx context.Context, s *store.Store, build string) (int, error) {
	genes, err := i.LoadGenes(build)
	if err != nil {
		return 0, err
	}
	if len(genes) == 0 {
		return 0, fmt.Errorf("no genes for build %s in %s", build, i.path)
	}

	dropped, err := s.DeleteGenes(ctx, build)
	if err != nil {
		return 0, err
	}
	if dropped > 0 {
		i.logger.Info("replaced existing gene catalog",
			zap.String("build", build),
			zap.Int("dropped", dropped))
	}

	if err := s.InsertGenes(ctx, genes); err != nil {
		return 0, err
	}

	i.logger.Info("gene catalog imported",
		zap.String("build", build),
		zap.String("source", i.path),
		zap.Int("genes", len(genes)))
	return len(genes), nil
}

// splitList splits a comma separated catalog list column.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
