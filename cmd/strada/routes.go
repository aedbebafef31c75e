package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/strada-dev/strada/internal/config"
	"github.com/strada-dev/strada/pkg/router"
)

func routesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the compiled route table",
		Long: `Compile the route manifest from strada.json and print the
resulting branches in match priority order.

Examples:
  strada routes
  strada routes --dir=./app`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory containing strada.json")

	return cmd
}

func runRoutes(dir string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	branches := router.CreateBranches(cfg.Definitions(), cfg.Base, nil)
	if len(branches) == 0 {
		warn("no routes defined in %s", config.ConfigFileName)
		return nil
	}

	success("%d branches (highest priority first)", len(branches))
	for _, b := range branches {
		patterns := make([]string, len(b.Routes))
		for i, route := range b.Routes {
			patterns[i] = route.Pattern
		}
		leaf := b.Routes[len(b.Routes)-1]
		info("%-40s score=%-8d chain: %s", leaf.Pattern, b.Score, strings.Join(patterns, " → "))
	}
	return nil
}
