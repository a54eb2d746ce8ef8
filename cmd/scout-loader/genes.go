package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Clinical-Genomics/scout-sub001/internal/catalog"
)

func newGenesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genes",
		Short: "Manage the gene catalog",
	}
	cmd.AddCommand(newGenesImportCmd())
	return cmd
}

func newGenesImportCmd() *cobra.Command {
	var build string

	cmd := &cobra.Command{
		Use:   "import <catalog.duckdb>",
		Short: "Import the gene catalog of one build from a DuckDB file",
		Long:  "Replaces the stored gene catalog of the build with the genes and transcripts read from the DuckDB catalog. Remote catalogs on s3:// are supported.",
		Example: `  scout-loader genes import genes.duckdb --build 37
  scout-loader genes import s3://reference/genes.duckdb --build 38`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer, err := catalog.NewDuckDBImporter(args[0])
			if err != nil {
				return err
			}
			defer importer.Close()
			importer.SetLogger(logger)

			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Setup(cmd.Context()); err != nil {
				return err
			}
			count, err := importer.Import(cmd.Context(), s, build)
			if err != nil {
				return err
			}
			fmt.Printf("%d genes imported for build %s\n", count, build)
			return nil
		},
	}
	cmd.Flags().StringVar(&build, "build", "37", "Genome build: 37 or 38")
	return cmd
}
