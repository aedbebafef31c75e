package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌┬┐┬─┐┌─┐┌┬┐┌─┐
  ╚═╗ │ ├┬┘├─┤ ││├─┤
  ╚═╝ ┴ ┴└─┴ ┴─┴┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "strada",
		Short: "Route resolution and navigation for component-tree UIs",
		Long: `Strada is a client-side routing engine for Go-driven UIs.

It resolves locations against a declarative route tree and drives
navigation with redirect collapsing and loop protection:

  • Pattern matching with static > param > wildcard priority
  • Nested routes with per-segment params and data loaders
  • Redirect chains collapsed to a single history commit
  • Reactive location, query, and route contexts
  • Server-mode resolution for request/response hosts`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		routesCmd(),
		matchCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Strada ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
