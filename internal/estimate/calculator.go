package estimate

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"archcost/internal/pricing"
)

// Usage assumptions applied when a service arrives without the numbers
// its formula needs. Estimation never fails for lack of input.
const (
	// DefaultS3StorageGB is assumed when an S3 service has no size.
	DefaultS3StorageGB = 100.0

	// DefaultCloudFrontTransferGB is assumed monthly transfer out.
	DefaultCloudFrontTransferGB = 1000.0

	// DefaultNATProcessedGB is assumed monthly NAT-processed data.
	DefaultNATProcessedGB = 500.0

	// ALBAssumedLCUs is the fixed LCU consumption assumed per estimate,
	// regardless of load balancer count.
	ALBAssumedLCUs = 2.0

	// lcuHoursPerMonth is the 24×30 hour month used by the LCU formula.
	lcuHoursPerMonth = 24.0 * 30.0
)

// Calculator turns service lists into monthly cost breakdowns using the
// embedded rate tables. It is stateless and safe for concurrent use.
type Calculator struct {
	rates  pricing.Client
	logger zerolog.Logger
}

// NewCalculator returns a Calculator backed by the given rate tables.
func NewCalculator(rates pricing.Client, logger zerolog.Logger) *Calculator {
	return &Calculator{rates: rates, logger: logger}
}

// costRule binds uppercase name tags to a pricing function. Rules are
// evaluated in order and the first match prices the service, so tags
// that could occur inside other rule names must come first. This table
// is deliberately coarser than the classifier in internal/catalog: only
// services with a numeric formula appear here, everything else falls to
// the generic flat rate.
type costRule struct {
	tags  []string
	price func(*Calculator, Service) []LineItem
}

var costRules = []costRule{
	{tags: []string{"EC2"}, price: (*Calculator).priceEC2},
	{tags: []string{"RDS"}, price: (*Calculator).priceRDS},
	{tags: []string{"S3"}, price: (*Calculator).priceS3},
	{tags: []string{"APPLICATION LOAD BALANCER", "ALB"}, price: (*Calculator).priceALB},
	{tags: []string{"CLOUDFRONT"}, price: (*Calculator).priceCloudFront},
	{tags: []string{"AWS WAF", "WAF"}, price: (*Calculator).priceWAF},
	{tags: []string{"NAT GATEWAY"}, price: (*Calculator).priceNATGateway},
	{tags: []string{"ELASTIC CONTAINER SERVICE", "ECS"}, price: (*Calculator).priceECS},
	{tags: []string{"ELASTICACHE"}, price: (*Calculator).priceElastiCache},
	{tags: []string{"CLOUDWATCH"}, price: (*Calculator).priceCloudWatch},
	{tags: []string{"CLOUDTRAIL"}, price: (*Calculator).priceCloudTrail},
	{tags: []string{"SIMPLE NOTIFICATION SERVICE", "SNS"}, price: (*Calculator).priceSNS},
}

// Calculate produces a fresh breakdown for the given services. Each
// service is priced independently by the first matching rule (or the
// generic fallback), its lines are routed into exactly one bucket each,
// and the buckets sum to Total. The region is carried as metadata only;
// the rate tables are single-region.
func (c *Calculator) Calculate(services []Service, region string) Breakdown {
	b := Breakdown{
		Region:   region,
		Currency: c.rates.Currency(),
		Details:  make([]LineItem, 0, len(services)),
	}

	for _, svc := range services {
		for _, item := range c.priceService(svc) {
			switch item.Bucket {
			case BucketCompute:
				b.Compute += item.TotalCost
			case BucketStorage:
				b.Storage += item.TotalCost
			case BucketNetwork:
				b.Network += item.TotalCost
			case BucketDatabase:
				b.Database += item.TotalCost
			}
			b.Details = append(b.Details, item)
		}
	}

	b.Total = b.Compute + b.Storage + b.Network + b.Database

	c.logger.Debug().
		Str("region", region).
		Int("services", len(services)).
		Int("line_items", len(b.Details)).
		Float64("total_monthly", b.Total).
		Msg("breakdown calculated")

	return b
}

// priceService dispatches one service through the rule table.
func (c *Calculator) priceService(svc Service) []LineItem {
	upper := strings.ToUpper(svc.Name)
	for _, rule := range costRules {
		for _, tag := range rule.tags {
			if strings.Contains(upper, tag) {
				return rule.price(c, svc)
			}
		}
	}
	return c.priceGeneric(svc)
}

func (c *Calculator) priceEC2(svc Service) []LineItem {
	count := NormalizeCount(svc.Count)
	instanceType := svc.InstanceType
	if instanceType == "" {
		instanceType = pricing.DefaultEC2InstanceType
	}
	rate := c.rates.EC2MonthlyRateOrDefault(instanceType)

	items := []LineItem{{
		Service:   svc.Name,
		Resource:  fmt.Sprintf("%d × %s on-demand instance", count, instanceType),
		Bucket:    BucketCompute,
		Quantity:  float64(count),
		UnitCost:  rate,
		TotalCost: rate * float64(count),
	}}

	if svc.StorageSizeGB > 0 {
		totalGB := svc.StorageSizeGB * float64(count)
		items = append(items, LineItem{
			Service:   svc.Name + " (EBS)",
			Resource:  fmt.Sprintf("%.0f GB gp3 EBS storage", totalGB),
			Bucket:    BucketStorage,
			Quantity:  totalGB,
			UnitCost:  pricing.EBSGP3PerGBMonth,
			TotalCost: totalGB * pricing.EBSGP3PerGBMonth,
		})
	}

	return items
}

func (c *Calculator) priceRDS(svc Service) []LineItem {
	count := NormalizeCount(svc.Count)
	instanceClass := svc.InstanceType
	if instanceClass == "" {
		instanceClass = pricing.DefaultRDSInstanceClass
	}
	rate := c.rates.RDSMonthlyRateOrDefault(instanceClass)

	return []LineItem{{
		Service:   svc.Name,
		Resource:  fmt.Sprintf("%d × %s Single-AZ instance", count, instanceClass),
		Bucket:    BucketDatabase,
		Quantity:  float64(count),
		UnitCost:  rate,
		TotalCost: rate * float64(count),
	}}
}

func (c *Calculator) priceS3(svc Service) []LineItem {
	sizeGB := svc.StorageSizeGB
	if sizeGB <= 0 {
		sizeGB = DefaultS3StorageGB
	}

	return []LineItem{{
		Service:   svc.Name,
		Resource:  fmt.Sprintf("%.0f GB Standard storage", sizeGB),
		Bucket:    BucketStorage,
		Quantity:  sizeGB,
		UnitCost:  pricing.S3StandardPerGBMonth,
		TotalCost: sizeGB * pricing.S3StandardPerGBMonth,
	}}
}

// priceALB combines the fixed per-balancer charge with a usage charge
// for an assumed 2 LCUs over a 24×30 hour month. The usage charge does
// not scale with count, so the unit cost is back-computed from the
// total for display.
func (c *Calculator) priceALB(svc Service) []LineItem {
	count := NormalizeCount(svc.Count)
	lcuCost := pricing.ALBLCUHourly * lcuHoursPerMonth * ALBAssumedLCUs
	total := pricing.ALBMonthlyBase*float64(count) + lcuCost

	return []LineItem{{
		Service:   svc.Name,
		Resource:  fmt.Sprintf("%d × Application Load Balancer, %.0f LCUs assumed", count, ALBAssumedLCUs),
		Bucket:    BucketNetwork,
		Quantity:  float64(count),
		UnitCost:  total / float64(count),
		TotalCost: total,
	}}
}

func (c *Calculator) priceCloudFront(svc Service) []LineItem {
	transferGB := svc.BandwidthGB
	if transferGB <= 0 {
		transferGB = DefaultCloudFrontTransferGB
	}

	return []LineItem{{
		Service:   svc.Name,
		Resource:  fmt.Sprintf("%.0f GB data transfer out", transferGB),
		Bucket:    BucketNetwork,
		Quantity:  transferGB,
		UnitCost:  pricing.CloudFrontPerGBTransfer,
		TotalCost: transferGB * pricing.CloudFrontPerGBTransfer,
	}}
}

// priceWAF books one web ACL and a single million-request block;
// request volume is not parameterized.
func (c *Calculator) priceWAF(svc Service) []LineItem {
	total := pricing.WAFMonthlyBase + pricing.WAFPerMillionRequests

	return []LineItem{{
		Service:   svc.Name,
		Resource:  "1 web ACL, 1M requests assumed",
		Bucket:    BucketNetwork,
		Quantity:  1,
		UnitCost:  total,
		TotalCost: total,
	}}
}

func (c *Calculator) priceNATGateway(svc Service) []LineItem {
	count := NormalizeCount(svc.Count)
	processedGB := svc.BandwidthGB
	if processedGB <= 0 {
		processedGB = DefaultNATProcessedGB
	}
	total := pricing.NATMonthlyBase*float64(count) + processedGB*pricing.NATDataPerGB

	return []LineItem{{
		Service:   svc.Name,
		Resource:  fmt.Sprintf("%d × NAT Gateway, %.0f GB processed", count, processedGB),
		Bucket:    BucketNetwork,
		Quantity:  float64(count),
		UnitCost:  total / float64(count),
		TotalCost: total,
	}}
}

// priceECS assumes the EC2 launch type, which carries no control-plane
// charge. Fargate pricing is not modeled.
func (c *Calculator) priceECS(svc Service) []LineItem {
	return []LineItem{{
		Service:   svc.Name,
		Resource:  "EC2 launch type, no control-plane charge",
		Bucket:    BucketCompute,
		Quantity:  float64(NormalizeCount(svc.Count)),
		UnitCost:  pricing.ECSEC2LaunchMonthly,
		TotalCost: pricing.ECSEC2LaunchMonthly,
	}}
}

func (c *Calculator) priceElastiCache(svc Service) []LineItem {
	count := NormalizeCount(svc.Count)
	nodeType := svc.InstanceType
	if nodeType == "" {
		nodeType = pricing.DefaultCacheNodeType
	}
	rate := c.rates.ElastiCacheMonthlyRateOrDefault(nodeType)

	return []LineItem{{
		Service:   svc.Name,
		Resource:  fmt.Sprintf("%d × %s cache node", count, nodeType),
		Bucket:    BucketDatabase,
		Quantity:  float64(count),
		UnitCost:  rate,
		TotalCost: rate * float64(count),
	}}
}

func (c *Calculator) priceCloudWatch(svc Service) []LineItem {
	return c.flatLine(svc, "basic monitoring tier", pricing.CloudWatchMonthlyBasic)
}

func (c *Calculator) priceCloudTrail(svc Service) []LineItem {
	return c.flatLine(svc, "one trail beyond free tier", pricing.CloudTrailMonthly)
}

func (c *Calculator) priceSNS(svc Service) []LineItem {
	return c.flatLine(svc, "basic notification volume", pricing.SNSMonthly)
}

// flatLine books a count-independent monthly constant to the network
// bucket, the catch-all for operational services in the bucket map.
func (c *Calculator) flatLine(svc Service, detail string, monthly float64) []LineItem {
	return []LineItem{{
		Service:   svc.Name,
		Resource:  detail,
		Bucket:    BucketNetwork,
		Quantity:  1,
		UnitCost:  monthly,
		TotalCost: monthly,
	}}
}

// priceGeneric is the terminal fallback: a flat per-resource rate
// booked to compute. Rich classifier categories without a formula
// (Lambda, DynamoDB, SES, Kinesis, ...) land here on purpose.
func (c *Calculator) priceGeneric(svc Service) []LineItem {
	count := NormalizeCount(svc.Count)

	return []LineItem{{
		Service:   svc.Name,
		Resource:  fmt.Sprintf("%d × managed service (flat estimate)", count),
		Bucket:    BucketCompute,
		Quantity:  float64(count),
		UnitCost:  pricing.GenericServiceMonthly,
		TotalCost: float64(count) * pricing.GenericServiceMonthly,
	}}
}
