package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise/internal/validator"
	"github.com/pathwise/pathwise/pkg/adapters/file"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dialogue graph for consistency",
	Long:  `Crawls the graph from the entry node and reports dangling choice targets, duplicate choice ids and unreachable nodes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	graphPath, _ := cmd.Flags().GetString("graph")
	entry, _ := cmd.Flags().GetString("entry")

	loader, err := file.LoadGraph(graphPath)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	report, err := validator.New(loader).Validate(entry)
	if err != nil {
		return err
	}

	for _, issue := range report.Issues {
		fmt.Println(issue)
	}
	if !report.OK() {
		return fmt.Errorf("%d error(s) in %d node(s)", len(report.Errors()), report.Nodes)
	}

	fmt.Printf("Graph is valid! %d node(s) checked.\n", report.Nodes)
	return nil
}
