package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathwise",
	Short: "Pathwise is a career-exploration dialogue engine",
	Long: `Pathwise runs branching narrative scenarios where every choice a player
makes is mined for evidence of real-world skills, then matched against a
career catalog.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("graph", "content/story.yaml", "Path to the dialogue graph YAML")
	rootCmd.PersistentFlags().String("scenes", "content/sceneskills.yaml", "Path to the scene-skill map YAML")
	rootCmd.PersistentFlags().String("careers", "", "Path to a career catalog YAML (default: built-in catalog)")
	rootCmd.PersistentFlags().String("entry", "start", "Entry node id")
	rootCmd.PersistentFlags().String("hub", "hub", "Hub node id used as fallback of last resort")
}
