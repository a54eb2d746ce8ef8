package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete cases or variant slices",
	}
	cmd.AddCommand(newDeleteCaseCmd())
	cmd.AddCommand(newDeleteVariantsCmd())
	return cmd
}

func newDeleteCaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "case <case-id>",
		Short: "Delete a case and all its variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteCase(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("case %s deleted\n", args[0])
			return nil
		},
	}
}

func newDeleteVariantsCmd() *cobra.Command {
	var variantType, category string

	cmd := &cobra.Command{
		Use:   "variants <case-id>",
		Short: "Delete one variant slice of a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, c, err := openStoreWithCase(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			deleted, err := s.DeleteVariants(cmd.Context(), c.ID, variantType, category)
			if err != nil {
				return err
			}
			err = s.CreateEvent(cmd.Context(), &models.Event{
				Verb:      models.VerbDeleteVariants,
				Institute: c.Owner,
				CaseID:    c.ID,
				Category:  category,
				Content:   fmt.Sprintf("%d %s variants deleted", deleted, variantType),
			})
			if err != nil {
				return err
			}
			fmt.Printf("%d variants deleted\n", deleted)
			return nil
		},
	}
	cmd.Flags().StringVar(&variantType, "variant-type", "clinical", "Variant type: clinical or research")
	cmd.Flags().StringVar(&category, "category", "snv", "Variant category")
	return cmd
}
