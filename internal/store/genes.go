package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// geneInsertBatchSize bounds one bulk insert of catalog genes.
const geneInsertBatchSize = 1000

// InsertGenes bulk-loads catalog genes in batches.
func (s *Store) InsertGenes(ctx context.Context, genes []*models.HgncGene) error {
	for start := 0; start < len(genes); start += geneInsertBatchSize {
		end := start + geneInsertBatchSize
		if end > len(genes) {
			end = len(genes)
		}
		batch := genes[start:end]
		if _, err := s.db.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// GenesByBuild fetches the full gene catalog of one genome build.
func (s *Store) GenesByBuild(ctx context.Context, build string) ([]*models.HgncGene, error) {
	var genes []*models.HgncGene
	err := s.db.NewSelect().
		Model(&genes).
		Where("build = ?", build).
		OrderExpr("chromosome, start").
		Scan(ctx)
	return genes, err
}

// DeleteGenes drops the catalog of one build before a re-import.
func (s *Store) DeleteGenes(ctx context.Context, build string) (int, error) {
	res, err := s.db.NewDelete().
		Model((*models.HgncGene)(nil)).
		Where("build = ?", build).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// InsertGenePanel stores one panel version. The same (name, version)
// pair may only be created once.
func (s *Store) InsertGenePanel(ctx context.Context, panel *models.GenePanel) error {
	_, err := s.db.NewInsert().Model(panel).Exec(ctx)
	if isDuplicateKey(err) {
		return &IntegrityError{Message: "gene panel " + panel.PanelName + " already exists in this version"}
	}
	return err
}

// GenePanelByName fetches the newest version of one panel, or nil when
// the panel does not exist.
func (s *Store) GenePanelByName(ctx context.Context, name string) (*models.GenePanel, error) {
	panel := new(models.GenePanel)
	err := s.db.NewSelect().
		Model(panel).
		Where("panel_name = ?", name).
		OrderExpr("version DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return panel, nil
}
