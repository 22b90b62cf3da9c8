package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise"
	"github.com/pathwise/pathwise/pkg/adapters/file"
)

// engineFromFlags builds an engine from the persistent content flags,
// appending any extra options the command needs.
func engineFromFlags(cmd *cobra.Command, extra ...pathwise.Option) (*pathwise.Engine, error) {
	graphPath, _ := cmd.Flags().GetString("graph")
	scenesPath, _ := cmd.Flags().GetString("scenes")
	careersPath, _ := cmd.Flags().GetString("careers")
	entry, _ := cmd.Flags().GetString("entry")
	hub, _ := cmd.Flags().GetString("hub")

	opts := []pathwise.Option{
		pathwise.WithEntryNode(entry),
		pathwise.WithHubNode(hub),
	}

	if scenesPath != "" {
		scenes, err := file.LoadSceneSkillMap(scenesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene-skill map: %w", err)
		}
		opts = append(opts, pathwise.WithSceneSkills(scenes))
	}
	if careersPath != "" {
		careers, err := file.LoadCareerCatalog(careersPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load career catalog: %w", err)
		}
		opts = append(opts, pathwise.WithCareerPaths(careers))
	}
	opts = append(opts, extra...)

	return pathwise.New(graphPath, opts...)
}
