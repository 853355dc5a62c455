package main

import (
	"fmt"

	"github.com/jonathan/shorts-optimizer/internal/schemas"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema every optimization result must satisfy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), schemas.OptimizationResultSchema())
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
