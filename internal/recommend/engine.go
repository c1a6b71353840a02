// Package recommend derives cost-optimization suggestions from a
// computed breakdown using fixed threshold rules.
package recommend

import "archcost/internal/estimate"

// Threshold fractions and the absolute spend gate for the rules below.
const (
	computeHeavyShare = 0.60
	storageHeavyShare = 0.30
	networkHeavyShare = 0.25
	totalSpendGateUSD = 500.0

	// savingsRate is the flat heuristic applied to annualized spend; it
	// is independent of which rules fired.
	savingsRate = 0.20

	monthsPerYear = 12
)

// thresholdRule emits its suggestions when the breakdown trips its
// condition. Rules are independent: every rule that applies fires.
type thresholdRule struct {
	applies     func(b estimate.Breakdown) bool
	suggestions []string
}

// rules fire in a fixed sequence so the output order is stable:
// compute-heavy, storage-heavy, network-heavy, then the absolute spend
// gate.
var rules = []thresholdRule{
	{
		applies: func(b estimate.Breakdown) bool { return b.Compute > computeHeavyShare*b.Total },
		suggestions: []string{
			"Consider Reserved Instances or Savings Plans for steady compute workloads (up to 72% off on-demand)",
			"Enable Auto Scaling so instance capacity follows actual demand",
		},
	},
	{
		applies: func(b estimate.Breakdown) bool { return b.Storage > storageHeavyShare*b.Total },
		suggestions: []string{
			"Move infrequently accessed objects to S3 Standard-IA or Glacier tiers",
			"Add S3 lifecycle policies to archive or expire aging data automatically",
		},
	},
	{
		applies: func(b estimate.Breakdown) bool { return b.Network > networkHeavyShare*b.Total },
		suggestions: []string{
			"Serve static content through CloudFront to cut origin data transfer",
			"Evaluate Direct Connect for steady high-volume transfer instead of internet egress",
		},
	},
	{
		applies: func(b estimate.Breakdown) bool { return b.Total > totalSpendGateUSD },
		suggestions: []string{
			"Enable Cost Explorer and budget alerts to catch spend drift early",
			"Review Compute Savings Plans for a commitment discount across services",
		},
	},
}

// Recommend evaluates the threshold rules against a breakdown and
// returns the fired suggestions in rule order. A zero-total breakdown
// returns nothing: the share comparisons are guarded so an empty
// architecture can never divide by zero or trip a percentage rule.
func Recommend(b estimate.Breakdown) []string {
	if b.Total <= 0 {
		return nil
	}

	var out []string
	for _, r := range rules {
		if r.applies(b) {
			out = append(out, r.suggestions...)
		}
	}
	return out
}

// AnnualSavings estimates yearly savings from acting on the
// recommendations as a flat 20% of annualized monthly spend.
func AnnualSavings(monthlyCost float64) float64 {
	if monthlyCost <= 0 {
		return 0
	}
	return monthlyCost * monthsPerYear * savingsRate
}
