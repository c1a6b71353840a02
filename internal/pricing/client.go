package pricing

import (
	"sort"

	"github.com/rs/zerolog"
)

// Client provides lookups over the embedded rate tables.
type Client interface {
	// Currency returns the currency code (always "USD").
	Currency() string

	// EC2MonthlyRate returns the monthly rate for an EC2 instance type.
	// Returns (rate, true) if found, (0, false) if not found.
	EC2MonthlyRate(instanceType string) (float64, bool)

	// RDSMonthlyRate returns the monthly rate for an RDS instance class.
	// Returns (rate, true) if found, (0, false) if not found.
	RDSMonthlyRate(instanceClass string) (float64, bool)

	// ElastiCacheMonthlyRate returns the monthly rate for a cache node type.
	// Returns (rate, true) if found, (0, false) if not found.
	ElastiCacheMonthlyRate(nodeType string) (float64, bool)

	// EC2MonthlyRateOrDefault resolves an EC2 instance type to a monthly
	// rate, substituting the default type when empty and the flat fallback
	// when unknown. Never fails.
	EC2MonthlyRateOrDefault(instanceType string) float64

	// RDSMonthlyRateOrDefault resolves an RDS instance class the same way.
	RDSMonthlyRateOrDefault(instanceClass string) float64

	// ElastiCacheMonthlyRateOrDefault resolves a cache node type the same way.
	ElastiCacheMonthlyRateOrDefault(nodeType string) float64

	// EC2InstanceTypes returns the known EC2 instance types, sorted.
	EC2InstanceTypes() []string

	// RDSInstanceClasses returns the known RDS instance classes, sorted.
	RDSInstanceClasses() []string
}

// tableClient implements Client over the package-level rate tables.
type tableClient struct {
	logger zerolog.Logger
}

// NewClient returns a Client backed by the embedded rate tables. The
// logger is used for fallback diagnostics when an unknown instance type
// is substituted with a flat rate.
func NewClient(logger zerolog.Logger) Client {
	return &tableClient{logger: logger}
}

func (c *tableClient) Currency() string {
	return "USD"
}

func (c *tableClient) EC2MonthlyRate(instanceType string) (float64, bool) {
	rate, ok := ec2MonthlyRates[instanceType]
	return rate, ok
}

func (c *tableClient) RDSMonthlyRate(instanceClass string) (float64, bool) {
	rate, ok := rdsMonthlyRates[instanceClass]
	return rate, ok
}

func (c *tableClient) ElastiCacheMonthlyRate(nodeType string) (float64, bool) {
	rate, ok := elastiCacheMonthlyRates[nodeType]
	return rate, ok
}

func (c *tableClient) EC2MonthlyRateOrDefault(instanceType string) float64 {
	return c.rateOrDefault("EC2", instanceType, DefaultEC2InstanceType, EC2FallbackMonthly, ec2MonthlyRates)
}

func (c *tableClient) RDSMonthlyRateOrDefault(instanceClass string) float64 {
	return c.rateOrDefault("RDS", instanceClass, DefaultRDSInstanceClass, RDSFallbackMonthly, rdsMonthlyRates)
}

func (c *tableClient) ElastiCacheMonthlyRateOrDefault(nodeType string) float64 {
	return c.rateOrDefault("ElastiCache", nodeType, DefaultCacheNodeType, ElastiCacheFallbackMonthly, elastiCacheMonthlyRates)
}

// rateOrDefault implements the shared never-fail lookup policy: an empty
// instance type resolves to the service default, an unknown one to the
// flat fallback rate.
func (c *tableClient) rateOrDefault(service, instanceType, defaultType string, fallback float64, table map[string]float64) float64 {
	if instanceType == "" {
		instanceType = defaultType
	}
	if rate, ok := table[instanceType]; ok {
		return rate
	}
	c.logger.Debug().
		Str("service", service).
		Str("instance_type", instanceType).
		Float64("fallback_monthly", fallback).
		Msg("instance type not in rate table, using flat fallback")
	return fallback
}

func (c *tableClient) EC2InstanceTypes() []string {
	return sortedKeys(ec2MonthlyRates)
}

func (c *tableClient) RDSInstanceClasses() []string {
	return sortedKeys(rdsMonthlyRates)
}

func sortedKeys(table map[string]float64) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
