package docgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// TemplateGenerator produces documents offline from the analysis and
// breakdown alone. It is the default generator: useful output without a
// model dependency, and the shape a model-backed generator replaces.
type TemplateGenerator struct{}

// NewTemplateGenerator returns the offline content generator.
func NewTemplateGenerator() TemplateGenerator { return TemplateGenerator{} }

func (TemplateGenerator) GenerateContent(_ context.Context, req Request) (string, error) {
	switch req.Type {
	case TypePricing:
		return pricingDocument(req), nil
	case TypeSolution:
		return solutionDocument(req), nil
	case TypeDeployment:
		return deploymentDocument(req), nil
	case TypeMonitoring:
		return monitoringDocument(req), nil
	default:
		return "", fmt.Errorf("unknown document type %q", req.Type)
	}
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func docTitle(req Request, what string) string {
	name := req.ProjectName
	if name == "" {
		name = "Architecture"
	}
	return fmt.Sprintf("# %s — %s\n\n", name, what)
}

func pricingDocument(req Request) string {
	var b strings.Builder
	b.WriteString(docTitle(req, "Monthly Cost Estimate"))

	fmt.Fprintf(&b, "Estimated monthly total: **%s** (%s, %s)\n\n",
		money(req.Breakdown.Total), req.Breakdown.Currency, req.Breakdown.Region)

	b.WriteString("| Category | Monthly Cost |\n|---|---|\n")
	fmt.Fprintf(&b, "| Compute | %s |\n", money(req.Breakdown.Compute))
	fmt.Fprintf(&b, "| Storage | %s |\n", money(req.Breakdown.Storage))
	fmt.Fprintf(&b, "| Network | %s |\n", money(req.Breakdown.Network))
	fmt.Fprintf(&b, "| Database | %s |\n\n", money(req.Breakdown.Database))

	if len(req.Breakdown.Details) > 0 {
		b.WriteString("## Line Items\n\n| Service | Resource | Quantity | Unit | Total |\n|---|---|---|---|---|\n")
		for _, item := range req.Breakdown.Details {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				item.Service, item.Resource,
				humanize.CommafWithDigits(item.Quantity, 2),
				money(item.UnitCost), money(item.TotalCost))
		}
	}
	return b.String()
}

func solutionDocument(req Request) string {
	var b strings.Builder
	b.WriteString(docTitle(req, "Solution Overview"))

	if req.Analysis != nil && len(req.Analysis.Patterns) > 0 {
		b.WriteString("## Architecture Patterns\n\n")
		for _, p := range req.Analysis.Patterns {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Identified Services\n\n")
	if req.Analysis == nil || len(req.Analysis.Services) == 0 {
		b.WriteString("No services were identified.\n")
		return b.String()
	}
	for _, svc := range req.Analysis.Services {
		line := fmt.Sprintf("- **%s**", svc.Name)
		if svc.Count > 1 {
			line += fmt.Sprintf(" × %d", svc.Count)
		}
		if svc.InstanceType != "" {
			line += fmt.Sprintf(" (%s)", svc.InstanceType)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func deploymentDocument(req Request) string {
	var b strings.Builder
	b.WriteString(docTitle(req, "Deployment Guide"))
	b.WriteString("## Rollout Order\n\n")
	steps := []string{
		"Provision networking (VPC, subnets, security groups)",
		"Create data stores before the services that depend on them",
		"Deploy compute and attach load balancing",
		"Wire DNS and CDN last, after health checks pass",
	}
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	fmt.Fprintf(&b, "\nBudget guardrail: alert when monthly spend approaches %s.\n",
		money(req.Breakdown.Total*1.2))
	return b.String()
}

func monitoringDocument(req Request) string {
	var b strings.Builder
	b.WriteString(docTitle(req, "Monitoring Plan"))
	b.WriteString("## Baseline Alarms\n\n")
	b.WriteString("- CPU utilization above 80% for 15 minutes on any compute instance\n")
	b.WriteString("- 5xx rate above 1% at the load balancer\n")
	b.WriteString("- Database connection count approaching the class limit\n")
	fmt.Fprintf(&b, "- Billing alarm at %s (current estimate plus 20%%)\n",
		money(req.Breakdown.Total*1.2))
	return b.String()
}
