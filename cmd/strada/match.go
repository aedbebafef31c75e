package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strada-dev/strada/internal/config"
	"github.com/strada-dev/strada/pkg/router"
)

func matchCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Resolve a location against the route manifest",
		Long: `Resolve a location path against the compiled route tree and print
the winning branch's matches, root to leaf.

Examples:
  strada match /users/42
  strada match /users/42/settings --dir=./app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(dir, args[0])
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory containing strada.json")

	return cmd
}

func runMatch(dir, path string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	branches := router.CreateBranches(cfg.Definitions(), cfg.Base, nil)
	matches := router.GetRouteMatches(branches, path)
	if matches == nil {
		return fmt.Errorf("no route matches %q", path)
	}

	success("%s matched %d route(s)", path, len(matches))
	for _, m := range matches {
		info("%-40s consumed %s", m.Route.Pattern, m.Path)
		for k, v := range m.Params {
			info("    %s = %q", k, v)
		}
	}
	return nil
}
