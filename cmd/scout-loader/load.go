package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/casecfg"
	"github.com/Clinical-Genomics/scout-sub001/internal/catalog"
	"github.com/Clinical-Genomics/scout-sub001/internal/loader"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

func newLoadCmd() *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "load <case-config.yaml>",
		Short: "Load a case and its variant files",
		Long:  "Load parses a case configuration, upserts the case document and streams every configured VCF file into the variant store.",
		Example: `  scout-loader load 643594.config.yaml
  scout-loader load --update 643594.config.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, args[0], update)
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "Allow reloading a case that already exists")
	return cmd
}

func runLoad(cmd *cobra.Command, configPath string, update bool) error {
	cfg, err := casecfg.Load(configPath)
	if err != nil {
		return err
	}
	c := cfg.BuildCase()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.Setup(ctx); err != nil {
		return err
	}

	for _, panel := range c.Panels {
		known, err := s.GenePanelByName(ctx, panel.PanelName)
		if err != nil {
			return err
		}
		if known == nil {
			return &casecfg.ConfigError{Message: fmt.Sprintf(
				"gene panel %q does not exist", panel.PanelName)}
		}
	}

	if err := s.CreateCase(ctx, c, update); err != nil {
		var integrity *store.IntegrityError
		if errors.As(err, &integrity) {
			return fmt.Errorf("%w (pass --update to reload)", err)
		}
		return err
	}

	cat, err := catalog.Build(ctx, s, c.Build, logger)
	if err != nil {
		return err
	}
	if cat.GeneCount() == 0 {
		logger.Warn("gene catalog is empty, variants will not be gene-annotated",
			zap.String("build", c.Build))
	}

	l := loader.New(s, cat, logger)
	results, err := l.LoadCase(ctx, c)
	if err != nil {
		return err
	}

	for _, res := range results {
		fmt.Printf("%s/%s: %d variants inserted\n", res.VariantType, res.Category, res.Inserted)
	}
	logger.Info("case loaded", zap.String("case_id", c.ID), zap.Int("slices", len(results)))
	return nil
}
