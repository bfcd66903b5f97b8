package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "civilcalc",
		Short: "Civil engineering calculators (IS 456)",
		Long: `civilcalc - CivilBot calculators on the command line

Designs simply supported RC beams to IS 456:2000, estimates bills of
quantities, and runs the site calculators (concrete mix, rebar weight,
unit conversion).`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		newBeamCmd(),
		newEstimateCmd(),
		newAreaCmd(),
		newMixCmd(),
		newRebarCmd(),
		newConvertCmd(),
		newVersionCmd(),
	)
	return root
}

const rule = "───────────────────────────────────────────────────────────────"

func section(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, rule)
}

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}
