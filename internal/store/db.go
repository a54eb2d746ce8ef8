package store

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

// Store wraps the document database. All methods take a context and
// return explicit errors; the logger defaults to a no-op.
type Store struct {
	db     *bun.DB
	logger *zap.Logger
}

// Open connects to the SQLite database at dsn. Use ":memory:" for an
// ephemeral store in tests. debug enables per-query logging.
func Open(dsn string, debug bool) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if _, err := db.Exec(`
        PRAGMA journal_mode = WAL;
        PRAGMA synchronous = NORMAL;
        PRAGMA foreign_keys = ON;
        PRAGMA cache_size = -64000;
    `); err != nil {
		return nil, err
	}

	return &Store{db: db, logger: zap.NewNop()}, nil
}

// SetLogger sets the logger for progress and warning messages.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// DB exposes the underlying handle for migration tooling.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Setup creates the schema and indexes if they do not exist.
func (s *Store) Setup(ctx context.Context) error {
	tables := []interface{}{
		(*models.Case)(nil),
		(*models.Variant)(nil),
		(*models.HgncGene)(nil),
		(*models.GenePanel)(nil),
		(*models.ManagedVariant)(nil),
		(*models.Event)(nil),
	}
	for _, table := range tables {
		if _, err := s.db.NewCreateTable().
			Model(table).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	indexes := []struct {
		name    string
		table   string
		columns string
	}{
		{"idx_variants_case_slice", "variants", "case_id, variant_type, category"},
		{"idx_variants_variant_id", "variants", "variant_id"},
		{"idx_variants_rank_score", "variants", "case_id, variant_type, category, rank_score"},
		{"idx_variants_coordinates", "variants", "case_id, chromosome, position"},
		{"idx_genes_build", "hgnc_genes", "build, hgnc_id"},
		{"idx_managed_build", "managed_variants", "build"},
		{"idx_events_verb", "events", "verb"},
	}
	for _, idx := range indexes {
		if _, err := s.db.NewCreateIndex().
			Index(idx.name).
			Table(idx.table).
			ColumnExpr(idx.columns).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
