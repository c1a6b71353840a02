// Package estimate computes rule-based monthly cost breakdowns from
// lists of identified services. The calculation is pure: no network
// calls, no shared state, and every input produces a number — missing
// or malformed fields degrade to documented defaults instead of errors.
package estimate

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Service is one identified cloud resource from an architecture
// analysis. The upstream producer is a vision model, so every field is
// best-effort: the name is free text with no enum guarantee and the
// numeric fields may be absent.
type Service struct {
	// Name is the free-text service label, e.g. "EC2" or "Amazon RDS".
	Name string `json:"name"`

	// Type is a free-text category hint, e.g. "compute". It is only a
	// fallback classification signal.
	Type string `json:"type,omitempty"`

	// Count is the number of resource instances. Zero or negative counts
	// are treated as 1 during calculation (see NormalizeCount).
	Count int `json:"count,omitempty"`

	// InstanceType is meaningful for EC2-, RDS- and ElastiCache-like
	// services, e.g. "t3.medium" or "db.t3.micro".
	InstanceType string `json:"instance_type,omitempty"`

	// StorageSizeGB is attached or object storage in GB. Interpretation
	// depends on the service family (EBS for EC2, bucket volume for S3).
	StorageSizeGB float64 `json:"storage_size,omitempty"`

	// BandwidthGB is monthly data volume in GB (CloudFront transfer out,
	// NAT Gateway processed data).
	BandwidthGB float64 `json:"bandwidth,omitempty"`

	// CustomConfig carries category-specific usage fields collected by
	// the configuration UI. It is display/collection data only and does
	// not feed the pricing formulas.
	CustomConfig map[string]ConfigValue `json:"customConfig,omitempty"`
}

// ValueKind tags the payload type held by a ConfigValue.
type ValueKind string

const (
	// NumberValue holds a numeric usage figure.
	NumberValue ValueKind = "number"
	// TextValue holds free text or an enum selection.
	TextValue ValueKind = "text"
)

// ConfigValue is a tagged union over the value types a custom usage
// field can hold. JSON numbers decode as NumberValue, everything else
// as TextValue, so arbitrary upstream payloads never fail to decode.
type ConfigValue struct {
	Kind   ValueKind
	Number float64
	Text   string
}

// NumberConfig returns a numeric ConfigValue.
func NumberConfig(n float64) ConfigValue {
	return ConfigValue{Kind: NumberValue, Number: n}
}

// TextConfig returns a textual ConfigValue.
func TextConfig(s string) ConfigValue {
	return ConfigValue{Kind: TextValue, Text: s}
}

// UnmarshalJSON accepts a JSON number, string, or bool.
func (v *ConfigValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberConfig(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextConfig(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = TextConfig(fmt.Sprintf("%t", b))
		return nil
	}
	return fmt.Errorf("custom config value %s is neither number, string, nor bool", string(data))
}

// MarshalJSON emits the tagged payload back in its natural JSON form.
func (v ConfigValue) MarshalJSON() ([]byte, error) {
	if v.Kind == NumberValue {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// Bucket is one of the four cost-aggregation dimensions.
type Bucket string

const (
	BucketCompute  Bucket = "compute"
	BucketStorage  Bucket = "storage"
	BucketNetwork  Bucket = "network"
	BucketDatabase Bucket = "database"
)

// LineItem is one priced aspect of a service in the breakdown.
// TotalCost is the authoritative figure; UnitCost is back-computed as
// TotalCost/Quantity for display, because services with a fixed fee
// plus a usage add-on (ALB, NAT Gateway) have no meaningful standalone
// unit price.
type LineItem struct {
	Service   string  `json:"service"`
	Resource  string  `json:"resource"`
	Bucket    Bucket  `json:"bucket"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	TotalCost float64 `json:"total_cost"`
}

// Breakdown is a complete monthly cost estimate. It is recomputed in
// full on every calculation; Total always equals the sum of the four
// buckets.
type Breakdown struct {
	Region   string  `json:"region"`
	Currency string  `json:"currency"`
	Compute  float64 `json:"compute"`
	Storage  float64 `json:"storage"`
	Network  float64 `json:"network"`
	Database float64 `json:"database"`
	Total    float64 `json:"total"`

	// Details holds one or more line items per input service, in input
	// order.
	Details []LineItem `json:"details"`
}
