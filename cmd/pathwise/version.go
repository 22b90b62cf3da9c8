package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pathwise",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pathwise version %s\n", pathwise.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
