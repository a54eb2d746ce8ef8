package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Clinical-Genomics/scout-sub001/internal/models"
)

func newManagedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "managed",
		Short: "Maintain the managed-variant whitelist",
	}
	cmd.AddCommand(newManagedAddCmd())
	return cmd
}

func newManagedAddCmd() *cobra.Command {
	var (
		chromosome  string
		position    int
		reference   string
		alternative string
		category    string
		subCategory string
		build       string
		institute   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update one managed variant",
		Long:  "A managed variant is always admitted during a load, regardless of rank score. Adding the same position twice updates the description.",
		Example: `  scout-loader managed add --chromosome 7 --position 117175579 \
      --reference AT --alternative A --category snv --sub-category indel --build 37`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			mv := &models.ManagedVariant{
				ManagedID: models.ManagedVariantID(
					chromosome, position, reference, alternative,
					category, subCategory, build),
				Chromosome:  chromosome,
				Position:    position,
				Reference:   reference,
				Alternative: alternative,
				Category:    category,
				SubCategory: subCategory,
				Build:       build,
				Institute:   institute,
				Description: description,
			}
			if err := s.UpsertManagedVariant(cmd.Context(), mv); err != nil {
				return err
			}
			fmt.Printf("managed variant %s stored\n", mv.ManagedID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&chromosome, "chromosome", "", "Chromosome name")
	f.IntVar(&position, "position", 0, "1-based position")
	f.StringVar(&reference, "reference", "", "Reference allele")
	f.StringVar(&alternative, "alternative", "", "Alternative allele")
	f.StringVar(&category, "category", "snv", "Variant category")
	f.StringVar(&subCategory, "sub-category", "snv", "Variant sub-category")
	f.StringVar(&build, "build", "37", "Genome build")
	f.StringVar(&institute, "institute", "", "Owning institute")
	f.StringVar(&description, "description", "", "Free-text description")
	cmd.MarkFlagRequired("chromosome")
	cmd.MarkFlagRequired("position")
	cmd.MarkFlagRequired("reference")
	cmd.MarkFlagRequired("alternative")
	return cmd
}
