package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_KnownServices(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		serviceType string
		wantKey     string
	}{
		{"plain EC2", "EC2", "", "ec2"},
		{"full EC2 name", "Amazon Elastic Compute Cloud", "compute", "ec2"},
		{"RDS short name", "RDS", "", "rds"},
		{"RDS vendor name", "Amazon RDS", "database", "rds"},
		{"RDS spelled out", "Relational Database Service", "", "rds"},
		{"Aurora maps to RDS", "Aurora PostgreSQL", "", "rds"},
		{"Lambda", "AWS Lambda", "serverless", "lambda"},
		{"S3", "Amazon S3", "storage", "s3"},
		{"ElastiCache", "ElastiCache for Redis", "", "elasticache"},
		{"CloudFront", "CloudFront", "cdn", "cloudfront"},
		{"ALB", "Application Load Balancer", "", "elb"},
		{"NAT Gateway", "NAT Gateway", "networking", "natgateway"},
		{"Firehose beats Kinesis", "Kinesis Data Firehose", "", "firehose"},
		{"Kinesis Streams", "Amazon Kinesis", "streaming", "kinesis"},
		{"SES", "Amazon SES", "", "ses"},
		{"SageMaker", "SageMaker", "ml", "sagemaker"},
		{"WorkSpaces", "Amazon WorkSpaces", "", "workspaces"},
		{"Secrets Manager", "AWS Secrets Manager", "security", "secretsmanager"},
		{"Step Functions", "Step Functions", "", "stepfunctions"},
		{"mixed case", "aMaZoN dYnAmOdB", "", "dynamodb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Classify(tt.serviceName, tt.serviceType)
			assert.Equal(t, tt.wantKey, cfg.Key)
		})
	}
}

// TestClassify_SpecificBeatsGeneric pins the ordering property: names
// that also contain a generic family token must resolve to the specific
// service, never the family fallback.
func TestClassify_SpecificBeatsGeneric(t *testing.T) {
	tests := []struct {
		serviceName string
		serviceType string
		wantKey     string
	}{
		{"Amazon DynamoDB", "database", "dynamodb"},
		{"Amazon DocumentDB", "database", "documentdb"},
		{"Redshift data warehouse", "database", "redshift"},
		{"EBS storage volumes", "storage", "ebs"},
		{"Elastic Compute Cloud", "compute", "ec2"},
	}

	for _, tt := range tests {
		t.Run(tt.serviceName, func(t *testing.T) {
			cfg := Classify(tt.serviceName, tt.serviceType)
			assert.Equal(t, tt.wantKey, cfg.Key)
		})
	}
}

// TestClassify_SESOrdering pins the substring hazard: "ses" occurs
// inside "databases", so the SES rule must never capture database-ish
// names.
func TestClassify_SESOrdering(t *testing.T) {
	cfg := Classify("User Databases", "database")
	assert.Equal(t, "database", cfg.Key)

	cfg = Classify("Relational Databases", "")
	assert.Equal(t, "rds", cfg.Key)

	cfg = Classify("SES", "")
	assert.Equal(t, "ses", cfg.Key)
}

func TestClassify_TypeIsFallbackOnly(t *testing.T) {
	// The type hint is consulted only by the late generic family rules.
	cfg := Classify("SomeNewService", "database")
	assert.Equal(t, "database", cfg.Key)

	cfg = Classify("SomeNewService", "storage")
	assert.Equal(t, "storage", cfg.Key)
}

func TestClassify_UnknownFallsThrough(t *testing.T) {
	cfg := Classify("FooBarService", "")
	assert.Equal(t, "generic", cfg.Key)
	assert.True(t, cfg.ShowCount)
	require.Len(t, cfg.CustomFields, 1)
	assert.Equal(t, InputText, cfg.CustomFields[0].Kind)

	// Empty input is not an error either.
	assert.Equal(t, "generic", Classify("", "").Key)
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("Amazon RDS", "database")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify("Amazon RDS", "database"))
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)

	// Keys are unique and the catch-all comes last.
	seen := make(map[string]bool)
	for _, c := range cats {
		assert.False(t, seen[c.Key], "duplicate category key %q", c.Key)
		seen[c.Key] = true
	}
	assert.Equal(t, "generic", cats[len(cats)-1].Key)

	// The headline families are present.
	for _, key := range []string{"ec2", "rds", "s3", "lambda", "dynamodb", "cloudwatch"} {
		assert.True(t, seen[key], "missing category %q", key)
	}
}

// TestRules_KeywordsAreLowercase guards the normalization contract:
// match keywords are compared against lowercased input, so an uppercase
// keyword could never match.
func TestRules_KeywordsAreLowercase(t *testing.T) {
	for _, r := range classificationRules {
		for _, kw := range append(append([]string{}, r.nameKeywords...), r.typeKeywords...) {
			assert.Equal(t, strings.ToLower(kw), kw, "rule %q has non-lowercase keyword", r.config.Key)
		}
	}
}
