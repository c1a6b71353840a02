package docgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archcost/internal/analysis"
	"archcost/internal/estimate"
)

func contentRequest(dt DocumentType) Request {
	return Request{
		Type:        dt,
		ProjectName: "Web Shop",
		Analysis: &analysis.Analysis{
			Services: []estimate.Service{
				{Name: "EC2", Count: 2, InstanceType: "t3.medium"},
				{Name: "S3", StorageSizeGB: 100},
			},
			Patterns: []string{"three-tier web application"},
		},
		Breakdown: estimate.Breakdown{
			Region:   "us-east-1",
			Currency: "USD",
			Compute:  1200.50,
			Storage:  2.30,
			Total:    1202.80,
			Details: []estimate.LineItem{
				{Service: "EC2", Resource: "t3.medium", Quantity: 2, UnitCost: 30.37, TotalCost: 60.74},
			},
		},
	}
}

func TestTemplateGenerator_AllTypes(t *testing.T) {
	gen := NewTemplateGenerator()

	for _, dt := range AllDocumentTypes() {
		t.Run(string(dt), func(t *testing.T) {
			content, err := gen.GenerateContent(context.Background(), contentRequest(dt))
			require.NoError(t, err)
			assert.Contains(t, content, "# Web Shop")
			assert.NotEmpty(t, content)
		})
	}
}

func TestTemplateGenerator_PricingTable(t *testing.T) {
	content, err := NewTemplateGenerator().GenerateContent(context.Background(), contentRequest(TypePricing))
	require.NoError(t, err)

	assert.Contains(t, content, "$1,202.80")
	assert.Contains(t, content, "$1,200.50")
	assert.Contains(t, content, "t3.medium")
}

func TestTemplateGenerator_SolutionListsServices(t *testing.T) {
	content, err := NewTemplateGenerator().GenerateContent(context.Background(), contentRequest(TypeSolution))
	require.NoError(t, err)

	assert.Contains(t, content, "**EC2** × 2 (t3.medium)")
	assert.Contains(t, content, "three-tier web application")
}

func TestTemplateGenerator_UnknownType(t *testing.T) {
	_, err := NewTemplateGenerator().GenerateContent(context.Background(), Request{Type: DocumentType("invoice")})
	assert.Error(t, err)
}
