package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"archcost/internal/config"
	"archcost/internal/estimate"
	"archcost/internal/logging"
	"archcost/internal/pricing"
	"archcost/internal/recommend"
)

// estimateInput is the file format accepted by the estimate command:
// the same service list the API takes, with an optional region label.
type estimateInput struct {
	Services []estimate.Service `json:"services"`
	Region   string             `json:"region"`
}

func newEstimateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <services.json>",
		Short: "Estimate monthly cost for a service list",
		Long: `Reads a JSON file describing identified services and prints the
monthly cost breakdown with recommendations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			return runEstimate(cfg, args[0], cmd.OutOrStdout())
		},
	}
}

func runEstimate(cfg config.Config, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading services file: %w", err)
	}

	var input estimateInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parsing services file %s: %w", path, err)
	}

	region := input.Region
	if region == "" {
		region = cfg.Server.Region
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	calc := estimate.NewCalculator(pricing.NewClient(logger), logger)
	b := calc.Calculate(input.Services, region)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Service\tResource\tQty\tUnit\tMonthly\n")
	for _, item := range b.Details {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t$%s\n",
			item.Service, item.Resource,
			humanize.CommafWithDigits(item.Quantity, 2),
			humanize.FormatFloat("#,###.##", item.UnitCost),
			humanize.FormatFloat("#,###.##", item.TotalCost),
		)
	}
	fmt.Fprintf(w, "\t\t\t\t\n")
	fmt.Fprintf(w, "Compute\t\t\t\t$%s\n", humanize.FormatFloat("#,###.##", b.Compute))
	fmt.Fprintf(w, "Storage\t\t\t\t$%s\n", humanize.FormatFloat("#,###.##", b.Storage))
	fmt.Fprintf(w, "Network\t\t\t\t$%s\n", humanize.FormatFloat("#,###.##", b.Network))
	fmt.Fprintf(w, "Database\t\t\t\t$%s\n", humanize.FormatFloat("#,###.##", b.Database))
	fmt.Fprintf(w, "Total (%s)\t\t\t\t$%s\n", b.Region, humanize.FormatFloat("#,###.##", b.Total))
	if err := w.Flush(); err != nil {
		return err
	}

	if recs := recommend.Recommend(b); len(recs) > 0 {
		fmt.Fprintf(out, "\nRecommendations:\n")
		for _, r := range recs {
			fmt.Fprintf(out, "  - %s\n", r)
		}
		fmt.Fprintf(out, "\nEstimated annual savings: $%s\n",
			humanize.FormatFloat("#,###.##", recommend.AnnualSavings(b.Total)))
	}
	return nil
}
