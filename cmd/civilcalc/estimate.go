package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"CivilBot/internal/calc/boq"
	"CivilBot/internal/calc/report"
)

func newEstimateCmd() *cobra.Command {
	var xlsx string
	cmd := &cobra.Command{
		Use:   "estimate FILE",
		Short: "Estimate a bill of quantities from a JSON file of elements",
		Long: `Read a JSON file holding an array of elements, or an object with an
"elements" array and optional "rates" and "labour_percent", and print the
aggregated bill of quantities.

Example element:
  {"name":"B1","shape":"beam","length_m":4,"width_m":0.23,"depth_m":0.45,
   "count":2,"concrete_grade":"M20","steel_grade":"Fe415"}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readEstimate(args[0])
			if err != nil {
				return err
			}
			bill, err := boq.Estimate(req.Elements, req.Options(boq.DefaultOptions()))
			if err != nil {
				return err
			}
			printBill(cmd, bill)
			if xlsx != "" {
				data, err := report.BOQWorkbook(report.Meta{}, bill)
				if err != nil {
					return err
				}
				if err := os.WriteFile(xlsx, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", xlsx, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook written to %s\n", xlsx)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "Also export the bill to an xlsx workbook")
	return cmd
}

func newAreaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "area TYPE AREA",
		Short: "Estimate materials for an area of one construction type",
		Long: `Estimate thumb-rule materials for brick_wall, concrete_slab, plaster or
flooring given an area in m², or for a strip foundation given its running
length in m.`,
		Example: "  civilcalc area brick_wall 12.5",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("area %q: %w", args[1], err)
			}
			est, err := boq.EstimateArea(boq.AreaInput{Type: boq.ConstructionType(args[0]), Area: area}, boq.DefaultOptions())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %g %s\n", est.Description, est.Area, est.Unit)
			printBill(cmd, est.Bill)
			return nil
		},
	}
}

func readEstimate(path string) (boq.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return boq.Request{}, err
	}
	var req boq.Request
	if err := json.Unmarshal(data, &req.Elements); err == nil {
		return req, nil
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return boq.Request{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return req, nil
}

func printBill(cmd *cobra.Command, bill boq.BillOfQuantities) {
	out := cmd.OutOrStdout()
	section(out, "BILL OF QUANTITIES:")
	w := table(out)
	fmt.Fprintln(w, "  #\tItem\tQuantity\tUnit\tAmount")
	for i, it := range bill.Items {
		fmt.Fprintf(w, "  %d\t%s\t%.3f\t%s\t%s\n", i+1, it.Description, it.Quantity, it.Unit, report.FormatINR(it.Amount))
	}
	w.Flush()

	section(out, "TOTALS:")
	w = table(out)
	fmt.Fprintf(w, "  Material:\t%s\n", report.FormatINR(bill.MaterialCost))
	fmt.Fprintf(w, "  Labour:\t%s\n", report.FormatINR(bill.LabourCost))
	fmt.Fprintf(w, "  Total:\t%s\n", report.FormatINR(bill.TotalCost))
	w.Flush()
}
