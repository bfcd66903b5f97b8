package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.Version=... -X main.GitCommit=...".
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of civilcalc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "civilcalc v%s (%s)\n", Version, GitCommit)
			fmt.Fprintln(cmd.OutOrStdout(), "Beam design to IS 456:2000")
		},
	}
}
