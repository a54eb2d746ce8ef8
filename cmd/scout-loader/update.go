package main

import (
	"github.com/spf13/cobra"

	"github.com/Clinical-Genomics/scout-sub001/internal/catalog"
	"github.com/Clinical-Genomics/scout-sub001/internal/loader"
	"github.com/Clinical-Genomics/scout-sub001/internal/models"
	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Recompute derived variant fields of a loaded case",
	}
	cmd.AddCommand(newUpdateCompoundsCmd())
	cmd.AddCommand(newUpdateRankCmd())
	return cmd
}

func newUpdateCompoundsCmd() *cobra.Command {
	var variantType, category string

	cmd := &cobra.Command{
		Use:   "compounds <case-id>",
		Short: "Re-resolve compound links across the whole case",
		Long:  "Walks every chromosome of the loaded slice in position order and resolves compound references that the streaming load could not see. Safe to run repeatedly.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, c, err := openStoreWithCase(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			cat, err := catalog.Build(cmd.Context(), s, c.Build, logger)
			if err != nil {
				return err
			}
			return loader.UpdateCaseCompounds(cmd.Context(), s, cat, c.ID, variantType, category, logger)
		},
	}
	cmd.Flags().StringVar(&variantType, "variant-type", "clinical", "Variant type: clinical or research")
	cmd.Flags().StringVar(&category, "category", "snv", "Variant category")
	return cmd
}

func newUpdateRankCmd() *cobra.Command {
	var variantType, category string

	cmd := &cobra.Command{
		Use:   "rank <case-id>",
		Short: "Reassign variant ranks by descending rank score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, c, err := openStoreWithCase(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			return loader.RankVariants(cmd.Context(), s, c.ID, variantType, category, logger)
		},
	}
	cmd.Flags().StringVar(&variantType, "variant-type", "clinical", "Variant type: clinical or research")
	cmd.Flags().StringVar(&category, "category", "snv", "Variant category")
	return cmd
}

// openStoreWithCase opens the store and resolves a case id, failing
// with DataNotFoundError when the case is unknown.
func openStoreWithCase(cmd *cobra.Command, caseID string) (*store.Store, *models.Case, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	c, err := s.CaseByID(cmd.Context(), caseID)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	if c == nil {
		s.Close()
		return nil, nil, &store.DataNotFoundError{Kind: "case", ID: caseID}
	}
	return s, c, nil
}
