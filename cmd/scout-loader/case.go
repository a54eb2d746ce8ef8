package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Inspect and amend cases",
	}
	cmd.AddCommand(newCaseShowCmd())
	cmd.AddCommand(newCaseReportCmd())
	return cmd
}

func newCaseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <case-id>",
		Short: "Print a case document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, c, err := openStoreWithCase(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		},
	}
}

func newCaseReportCmd() *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "report <case-id> <report-path>",
		Short: "Attach a delivery report to a case",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.AttachReport(cmd.Context(), args[0], args[1], update); err != nil {
				return err
			}
			fmt.Printf("report attached to case %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "Overwrite an existing report")
	return cmd
}
