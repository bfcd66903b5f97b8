package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"CivilBot/internal/calc/mix"
	"CivilBot/internal/calc/rebar"
	"CivilBot/internal/calc/units"
)

func newMixCmd() *cobra.Command {
	var in mix.Input
	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Cement, sand, aggregate and water for a volume of concrete",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := mix.Calculate(in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			section(out, fmt.Sprintf("%s CONCRETE (%s), %.2f m³:", res.Grade, res.MixRatio, res.VolumeM3))
			w := table(out)
			fmt.Fprintf(w, "  Dry volume:\t%.3f m³\n", res.DryVolumeM3)
			fmt.Fprintf(w, "  Cement:\t%.2f kg (%.1f bags)\n", res.Cement.WeightKG, res.CementBags)
			fmt.Fprintf(w, "  Sand:\t%.3f m³ (%.2f kg)\n", res.Sand.VolumeM3, res.Sand.WeightKG)
			fmt.Fprintf(w, "  Aggregate:\t%.3f m³ (%.2f kg)\n", res.Aggregate.VolumeM3, res.Aggregate.WeightKG)
			fmt.Fprintf(w, "  Water:\t%.1f L\n", res.WaterLiters)
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&in.Grade, "grade", "M20", "Concrete grade")
	cmd.Flags().Float64Var(&in.VolumeM3, "volume", 0, "Concrete volume (m³) [required]")
	cmd.Flags().Float64Var(&in.WaterCementRatio, "wc", 0, "Water-cement ratio (default 0.5)")
	cmd.MarkFlagRequired("volume")
	return cmd
}

func newRebarCmd() *cobra.Command {
	var feet bool
	cmd := &cobra.Command{
		Use:   "rebar DIAxLENGTHxQTY...",
		Short: "Weigh reinforcement bars (D²/162 kg/m)",
		Example: `  civilcalc rebar 12x6x10 16x4.5x8
  civilcalc rebar --feet 10x20x5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bars := make([]rebar.Bar, 0, len(args))
			for _, a := range args {
				b, err := parseBar(a)
				if err != nil {
					return err
				}
				bars = append(bars, b)
			}
			res, err := rebar.Calculate(bars, feet)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			section(out, "REBAR WEIGHT:")
			w := table(out)
			fmt.Fprintln(w, "  Dia (mm)\tLength\tQty\tkg/bar\tTotal kg")
			for _, b := range res.Bars {
				fmt.Fprintf(w, "  %.0f\t%.2f\t%d\t%.3f\t%.3f\n", b.DiameterMM, b.Length, b.Quantity, b.WeightPerBarKG, b.TotalWeightKG)
			}
			fmt.Fprintf(w, "  Total\t\t%d\t\t%.3f\n", res.TotalBars, res.TotalWeightKG)
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&feet, "feet", false, "Lengths are in feet")
	return cmd
}

// parseBar reads "12x6x10" as a 12 mm bar, 6 long, 10 off.
func parseBar(s string) (rebar.Bar, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return rebar.Bar{}, fmt.Errorf("bar %q: want DIAxLENGTHxQTY", s)
	}
	d, err1 := strconv.ParseFloat(parts[0], 64)
	l, err2 := strconv.ParseFloat(parts[1], 64)
	q, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return rebar.Bar{}, fmt.Errorf("bar %q: want DIAxLENGTHxQTY", s)
	}
	return rebar.Bar{DiameterMM: d, Length: l, Quantity: q}, nil
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert KIND VALUE FROM TO",
		Short: "Convert between units (length, weight, area, volume, pressure)",
		Example: `  civilcalc convert length 10 m ft
  civilcalc convert pressure 25 mpa psi`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("value %q is not a number", args[1])
			}
			res, err := units.Convert(units.Kind(args[0]), v, args[2], args[3])
			if err != nil {
				return fmt.Errorf("%w (known: %s)", err, strings.Join(units.Units(units.Kind(args[0])), ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g %s = %.6g %s\n", res.Value, res.From, res.Out, res.To)
			return nil
		},
	}
}
