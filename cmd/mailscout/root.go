// Package main provides the entry point for the mailscout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mailscout.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mailscout",
		Short: "Find contact email addresses on websites",
		Long: `mailscout finds contact email addresses on websites.

Given a start URL, it fetches the page and applies heuristics in order
of reliability: mailto links, the page text, pages behind contact-like
menu entries, and finally the other pages the site links to. The first
heuristic that yields addresses wins.`,
		Version:       resolveBuildMetadata().version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFindCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
