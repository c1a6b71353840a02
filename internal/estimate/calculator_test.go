package estimate

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archcost/internal/pricing"
)

func newTestCalculator() *Calculator {
	logger := zerolog.Nop()
	return NewCalculator(pricing.NewClient(logger), logger)
}

func TestCalculate_EC2WithoutStorage(t *testing.T) {
	c := newTestCalculator()

	b := c.Calculate([]Service{
		{Name: "EC2", Count: 2, InstanceType: "t3.medium"},
	}, "us-east-1")

	require.Len(t, b.Details, 1, "no storage size means no EBS line")
	item := b.Details[0]
	assert.Equal(t, BucketCompute, item.Bucket)
	assert.InDelta(t, 2*30.37, item.TotalCost, 1e-9)
	assert.InDelta(t, 30.37, item.UnitCost, 1e-9)
	assert.InDelta(t, b.Total, b.Compute, 1e-9)
	assert.Zero(t, b.Storage)
}

func TestCalculate_EC2WithEBS(t *testing.T) {
	c := newTestCalculator()

	b := c.Calculate([]Service{
		{Name: "EC2", Count: 1, InstanceType: "t3.medium", StorageSizeGB: 50},
	}, "us-east-1")

	require.Len(t, b.Details, 2)

	compute := b.Details[0]
	assert.Equal(t, BucketCompute, compute.Bucket)
	assert.InDelta(t, 30.37, compute.TotalCost, 1e-9)

	ebs := b.Details[1]
	assert.Equal(t, BucketStorage, ebs.Bucket)
	assert.InDelta(t, 50*pricing.EBSGP3PerGBMonth, ebs.TotalCost, 1e-9)
	assert.InDelta(t, b.Storage, ebs.TotalCost, 1e-9)
}

func TestCalculate_UnknownServiceFlatFallback(t *testing.T) {
	c := newTestCalculator()

	b := c.Calculate([]Service{
		{Name: "FooBarService", Count: 3},
	}, "us-east-1")

	require.Len(t, b.Details, 1)
	item := b.Details[0]
	assert.Equal(t, BucketCompute, item.Bucket)
	assert.InDelta(t, 75.0, item.TotalCost, 1e-9)
	assert.InDelta(t, 75.0, b.Compute, 1e-9)
	assert.Zero(t, b.Storage)
	assert.Zero(t, b.Network)
	assert.Zero(t, b.Database)
}

func TestCalculate_BucketAssignment(t *testing.T) {
	c := newTestCalculator()

	tests := []struct {
		name       string
		service    Service
		wantBucket Bucket
	}{
		{"EC2 to compute", Service{Name: "EC2"}, BucketCompute},
		{"ECS to compute", Service{Name: "Amazon ECS"}, BucketCompute},
		{"S3 to storage", Service{Name: "Amazon S3"}, BucketStorage},
		{"RDS to database", Service{Name: "Amazon RDS"}, BucketDatabase},
		{"ElastiCache to database", Service{Name: "ElastiCache"}, BucketDatabase},
		{"ALB to network", Service{Name: "Application Load Balancer"}, BucketNetwork},
		{"CloudFront to network", Service{Name: "CloudFront"}, BucketNetwork},
		{"WAF to network", Service{Name: "AWS WAF"}, BucketNetwork},
		{"NAT to network", Service{Name: "NAT Gateway"}, BucketNetwork},
		{"CloudWatch to network", Service{Name: "CloudWatch"}, BucketNetwork},
		{"CloudTrail to network", Service{Name: "CloudTrail"}, BucketNetwork},
		{"SNS to network", Service{Name: "SNS"}, BucketNetwork},
		{"unknown to compute", Service{Name: "Mystery"}, BucketCompute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := c.Calculate([]Service{tt.service}, "us-east-1")
			require.NotEmpty(t, b.Details)
			assert.Equal(t, tt.wantBucket, b.Details[0].Bucket)
		})
	}
}

func TestCalculate_Formulas(t *testing.T) {
	c := newTestCalculator()

	tests := []struct {
		name      string
		service   Service
		wantTotal float64
	}{
		{
			"S3 defaults to 100 GB",
			Service{Name: "S3"},
			100 * pricing.S3StandardPerGBMonth,
		},
		{
			"S3 explicit size",
			Service{Name: "S3", StorageSizeGB: 500},
			500 * pricing.S3StandardPerGBMonth,
		},
		{
			"ALB base plus fixed LCU block",
			Service{Name: "ALB", Count: 2},
			pricing.ALBMonthlyBase*2 + pricing.ALBLCUHourly*24*30*2,
		},
		{
			"CloudFront defaults to 1000 GB transfer",
			Service{Name: "CloudFront"},
			1000 * pricing.CloudFrontPerGBTransfer,
		},
		{
			"WAF flat",
			Service{Name: "AWS WAF", Count: 4},
			pricing.WAFMonthlyBase + pricing.WAFPerMillionRequests,
		},
		{
			"NAT Gateway base plus processed data",
			Service{Name: "NAT Gateway", Count: 2, BandwidthGB: 800},
			pricing.NATMonthlyBase*2 + 800*pricing.NATDataPerGB,
		},
		{
			"NAT Gateway defaults to 500 GB processed",
			Service{Name: "NAT Gateway", Count: 1},
			pricing.NATMonthlyBase + 500*pricing.NATDataPerGB,
		},
		{
			"ECS is free on EC2 launch type",
			Service{Name: "Amazon ECS", Count: 5},
			0,
		},
		{
			"ElastiCache node rate times count",
			Service{Name: "ElastiCache", Count: 2, InstanceType: "cache.t3.micro"},
			2 * 12.41,
		},
		{
			"CloudWatch flat regardless of count",
			Service{Name: "CloudWatch", Count: 9},
			pricing.CloudWatchMonthlyBasic,
		},
		{
			"RDS unknown class falls back flat",
			Service{Name: "RDS", Count: 1, InstanceType: "db.z99.mega"},
			pricing.RDSFallbackMonthly,
		},
		{
			"EC2 unknown type falls back flat",
			Service{Name: "EC2", Count: 2, InstanceType: "z99.mega"},
			2 * pricing.EC2FallbackMonthly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := c.Calculate([]Service{tt.service}, "us-east-1")
			assert.InDelta(t, tt.wantTotal, b.Total, 1e-9)
		})
	}
}

func TestCalculate_UnitCostBackComputed(t *testing.T) {
	c := newTestCalculator()

	b := c.Calculate([]Service{{Name: "NAT Gateway", Count: 2, BandwidthGB: 800}}, "us-east-1")
	require.Len(t, b.Details, 1)
	item := b.Details[0]
	assert.InDelta(t, item.TotalCost/item.Quantity, item.UnitCost, 1e-9)
}

// TestCalculate_SumInvariant pins total == compute+storage+network+database
// over a mixed architecture.
func TestCalculate_SumInvariant(t *testing.T) {
	c := newTestCalculator()

	services := []Service{
		{Name: "EC2", Count: 3, InstanceType: "m5.large", StorageSizeGB: 100},
		{Name: "Amazon RDS", Count: 2, InstanceType: "db.t3.medium"},
		{Name: "S3", StorageSizeGB: 500},
		{Name: "CloudFront", BandwidthGB: 2000},
		{Name: "NAT Gateway", Count: 2},
		{Name: "Application Load Balancer", Count: 1},
		{Name: "DynamoDB"},
		{Name: "Lambda", Count: 4},
		{Name: "CloudWatch"},
	}

	b := c.Calculate(services, "us-east-1")

	assert.InDelta(t, b.Compute+b.Storage+b.Network+b.Database, b.Total, 1e-9)
	assert.Positive(t, b.Total)
	assert.GreaterOrEqual(t, len(b.Details), len(services))
}

// TestCalculate_Deterministic pins the pure-function property: same
// input, same output, no state between calls.
func TestCalculate_Deterministic(t *testing.T) {
	c := newTestCalculator()

	services := []Service{
		{Name: "EC2", Count: 2, InstanceType: "t3.large", StorageSizeGB: 80},
		{Name: "SomethingNew", Count: 7},
	}

	first := c.Calculate(services, "eu-west-1")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Calculate(services, "eu-west-1"))
	}
}

// TestCalculate_ClassifierGapPreserved pins the deliberate asymmetry:
// categories with rich UI configs but no pricing formula take the flat
// generic rate.
func TestCalculate_ClassifierGapPreserved(t *testing.T) {
	c := newTestCalculator()

	for _, name := range []string{"DynamoDB", "Lambda", "Amazon SES", "Kinesis", "SageMaker"} {
		b := c.Calculate([]Service{{Name: name, Count: 1}}, "us-east-1")
		require.Len(t, b.Details, 1, name)
		assert.InDelta(t, pricing.GenericServiceMonthly, b.Details[0].TotalCost, 1e-9, name)
		assert.Equal(t, BucketCompute, b.Details[0].Bucket, name)
	}
}

func TestCalculate_CountNormalization(t *testing.T) {
	c := newTestCalculator()

	for _, count := range []int{0, -3} {
		b := c.Calculate([]Service{{Name: "EC2", Count: count, InstanceType: "t3.medium"}}, "us-east-1")
		require.Len(t, b.Details, 1)
		assert.InDelta(t, 30.37, b.Details[0].TotalCost, 1e-9, "count %d clamps to 1", count)
	}
}

func TestCalculate_EmptyInput(t *testing.T) {
	c := newTestCalculator()

	b := c.Calculate(nil, "us-east-1")
	assert.Zero(t, b.Total)
	assert.Empty(t, b.Details)
	assert.Equal(t, "USD", b.Currency)
}

func TestNormalizeCount(t *testing.T) {
	assert.Equal(t, 1, NormalizeCount(0))
	assert.Equal(t, 1, NormalizeCount(-5))
	assert.Equal(t, 1, NormalizeCount(1))
	assert.Equal(t, 12, NormalizeCount(12))
}

func TestCoerceCount(t *testing.T) {
	assert.Equal(t, 3, CoerceCount(float64(3)))
	assert.Equal(t, 1, CoerceCount(float64(0)))
	assert.Equal(t, 4, CoerceCount("4"))
	assert.Equal(t, 1, CoerceCount("lots"))
	assert.Equal(t, 1, CoerceCount(nil))
	assert.Equal(t, 1, CoerceCount(map[string]any{}))
}

func TestCoerceGB(t *testing.T) {
	assert.Equal(t, 50.0, CoerceGB(float64(50)))
	assert.Equal(t, 25.5, CoerceGB("25.5"))
	assert.Equal(t, 0.0, CoerceGB(-10.0))
	assert.Equal(t, 0.0, CoerceGB("many"))
	assert.Equal(t, 0.0, CoerceGB(nil))
}
