// Package pricing holds the static monthly rate tables used for
// rule-based cost estimation. Rates approximate us-east-1 on-demand
// pricing and are deliberately embedded rather than fetched: the
// estimator must produce a number with no network access.
package pricing

const (
	// EBSGP3PerGBMonth is the per-GB-month rate for gp3 volumes.
	EBSGP3PerGBMonth = 0.08

	// S3StandardPerGBMonth is the per-GB-month rate for S3 Standard storage.
	S3StandardPerGBMonth = 0.023

	// CloudFrontPerGBTransfer is the per-GB data transfer out rate.
	CloudFrontPerGBTransfer = 0.085

	// ALBMonthlyBase is the fixed monthly charge for one Application
	// Load Balancer ($0.0225/hr over a 720-hour month).
	ALBMonthlyBase = 16.20

	// ALBLCUHourly is the per-LCU-hour rate for an Application Load Balancer.
	ALBLCUHourly = 0.008

	// WAFMonthlyBase is the monthly charge for one web ACL.
	WAFMonthlyBase = 5.00

	// WAFPerMillionRequests is the request charge, booked as a single
	// million-request block per month.
	WAFPerMillionRequests = 0.60

	// NATMonthlyBase is the fixed monthly charge for one NAT Gateway
	// ($0.045/hr over a 720-hour month).
	NATMonthlyBase = 32.40

	// NATDataPerGB is the per-GB data processing rate for NAT Gateways.
	NATDataPerGB = 0.045

	// CloudWatchMonthlyBasic is the assumed monthly spend for basic-tier
	// CloudWatch usage (dashboards, a handful of alarms and custom metrics).
	CloudWatchMonthlyBasic = 10.00

	// CloudTrailMonthly is the assumed monthly spend for a single trail
	// beyond the free management-event tier.
	CloudTrailMonthly = 2.00

	// SNSMonthly is the assumed monthly spend for basic SNS usage.
	SNSMonthly = 0.50

	// ECSEC2LaunchMonthly is the ECS control-plane charge for the EC2
	// launch type. ECS itself is free; Fargate pricing is not modeled.
	ECSEC2LaunchMonthly = 0.0

	// GenericServiceMonthly is the flat per-resource rate applied to any
	// service without a dedicated pricing formula.
	GenericServiceMonthly = 25.00
)

// Defaults applied when a service arrives without an instance type, and
// flat fallbacks for instance types missing from the tables. Unknown
// types never fail a lookup; the estimate degrades to the fallback.
const (
	DefaultEC2InstanceType = "t3.medium"
	EC2FallbackMonthly     = 30.0

	DefaultRDSInstanceClass = "db.t3.medium"
	RDSFallbackMonthly      = 50.0

	DefaultCacheNodeType       = "cache.t3.micro"
	ElastiCacheFallbackMonthly = 12.41
)

// ec2MonthlyRates maps EC2 instance types to on-demand monthly cost
// (Linux, shared tenancy, 730 hrs/month).
var ec2MonthlyRates = map[string]float64{
	"t3.micro":   7.59,
	"t3.small":   15.18,
	"t3.medium":  30.37,
	"t3.large":   60.74,
	"t3.xlarge":  121.47,
	"t3.2xlarge": 242.94,
	"m5.large":   70.08,
	"m5.xlarge":  140.16,
	"m5.2xlarge": 280.32,
	"c5.large":   62.05,
	"c5.xlarge":  124.10,
	"c5.2xlarge": 248.20,
	"r5.large":   91.98,
	"r5.xlarge":  183.96,
}

// rdsMonthlyRates maps RDS instance classes to on-demand monthly cost
// (Single-AZ, license-included engines averaged).
var rdsMonthlyRates = map[string]float64{
	"db.t3.micro":  12.41,
	"db.t3.small":  24.82,
	"db.t3.medium": 49.64,
	"db.t3.large":  99.28,
	"db.m5.large":  125.56,
	"db.m5.xlarge": 251.12,
	"db.r5.large":  175.20,
	"db.r5.xlarge": 350.40,
}

// elastiCacheMonthlyRates maps ElastiCache node types to on-demand
// monthly cost.
var elastiCacheMonthlyRates = map[string]float64{
	"cache.t3.micro":  12.41,
	"cache.t3.small":  24.82,
	"cache.t3.medium": 49.64,
	"cache.m5.large":  113.15,
	"cache.m5.xlarge": 226.30,
	"cache.r5.large":  156.95,
}
