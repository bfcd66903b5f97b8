package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"CivilBot/internal/calc/beam"
	"CivilBot/internal/calc/diagram"
)

func newBeamCmd() *cobra.Command {
	var (
		req    beam.Request
		policy beam.Policy
		output string
	)
	cmd := &cobra.Command{
		Use:   "beam",
		Short: "Design a simply supported RC beam",
		Long: `Design the tension steel of a simply supported rectangular beam
under a uniformly distributed load, with the shear check of IS 456 Table 20.

Examples:
  civilcalc beam --span 4 --udl 10 --concrete M25 --steel Fe415 -b 230 -d 400
  civilcalc beam --span 5 --udl 12 --auto-size --output bmd.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := req.Resolve()
			if err != nil {
				return err
			}
			res, err := beam.Design(in, policy)
			if err != nil {
				return err
			}
			printBeam(cmd, in, res)
			if output != "" {
				if err := diagram.Save(output, in.SpanM, in.UDLKNM); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nDiagrams written to %s\n", output)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&req.SpanM, "span", 0, "Clear span (m) [required]")
	f.Float64Var(&req.UDLKNM, "udl", 0, "Uniformly distributed load (kN/m) [required]")
	f.StringVar(&req.ConcreteGrade, "concrete", "M20", "Concrete grade")
	f.StringVar(&req.SteelGrade, "steel", "Fe415", "Steel grade")
	f.Float64VarP(&req.WidthMM, "width", "b", 0, "Beam width (mm)")
	f.Float64VarP(&req.EffectiveDepthMM, "depth", "d", 0, "Effective depth (mm)")
	f.BoolVar(&req.AutoSize, "auto-size", false, "Proportion a missing width or depth from the span")
	f.Float64Var(&policy.LoadFactor, "load-factor", 0, "Partial safety factor on load (default 1.5)")
	f.Float64Var(&policy.BarDiameterMM, "bar", 0, "Main bar diameter (mm, default 16)")
	f.StringVarP(&output, "output", "o", "", "Export BMD/SFD diagrams to file (png, svg, pdf)")
	cmd.MarkFlagRequired("span")
	cmd.MarkFlagRequired("udl")
	return cmd
}

func printBeam(cmd *cobra.Command, in beam.Input, res beam.Result) {
	out := cmd.OutOrStdout()
	section(out, "INPUT DATA:")
	w := table(out)
	fmt.Fprintf(w, "  Span:\t%.2f m\n", in.SpanM)
	fmt.Fprintf(w, "  Load:\t%.2f kN/m\n", in.UDLKNM)
	fmt.Fprintf(w, "  Section (b x d):\t%.0f x %.0f mm\n", in.WidthMM, in.EffectiveDepthMM)
	fmt.Fprintf(w, "  Materials:\t%s (fck %.0f MPa), %s (fy %.0f MPa)\n", res.ConcreteGrade, res.FckMPa, res.SteelGrade, res.FyMPa)
	w.Flush()

	section(out, "FLEXURE:")
	w = table(out)
	fmt.Fprintf(w, "  Mu:\t%.2f kN-m\n", res.DesignMomentKNM)
	fmt.Fprintf(w, "  Mu,lim:\t%.2f kN-m\n", res.LimitingMomentKNM)
	fmt.Fprintf(w, "  As required:\t%.2f mm²\n", res.AsRequiredMM2)
	fmt.Fprintf(w, "  As min / max:\t%.2f / %.2f mm²\n", res.AsMinMM2, res.AsMaxMM2)
	fmt.Fprintf(w, "  Bars:\t%d × %.0f mm (%.2f mm²)\n", res.Bars, res.BarDiameterMM, res.AsProvidedMM2)
	w.Flush()

	section(out, "SHEAR:")
	w = table(out)
	fmt.Fprintf(w, "  Vu:\t%.2f kN\n", res.DesignShearKN)
	fmt.Fprintf(w, "  τv / τc,max:\t%.3f / %.2f MPa\n", res.ShearStressMPa, res.ShearStressMaxMPa)
	w.Flush()

	section(out, "RESULT:")
	status := "ADEQUATE"
	if !res.Adequate || !res.OKShear {
		status = "NOT ADEQUATE"
	}
	fmt.Fprintf(out, "  %s (utilization %.2f)\n", status, res.Utilization)
	if res.Notes != "" {
		fmt.Fprintf(out, "  %s\n", res.Notes)
	}
}
