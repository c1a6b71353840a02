package catalog

// rule binds a set of match keywords to a category configuration.
// nameKeywords are tested against the normalized service name;
// typeKeywords additionally against the free-text type hint, which is
// only a fallback signal and therefore only used by the late generic
// family rules.
type rule struct {
	nameKeywords []string
	typeKeywords []string
	config       CategoryConfig
}

// classificationRules is evaluated top to bottom; the first matching
// rule wins. Ordering is load-bearing because keywords overlap:
// specific service names must precede the generic family tokens
// ("database", "storage", "compute"), and short tokens that occur
// inside longer words ("ses" inside "databases", "config" inside
// "configuration") must sit after every rule they could shadow.
var classificationRules = []rule{
	// Compute
	{
		nameKeywords: []string{"ec2", "elastic compute"},
		config: CategoryConfig{
			Key:                 "ec2",
			DisplayName:         "Amazon EC2",
			ShowCount:           true,
			CountLabel:          "Instance count",
			ShowInstanceType:    true,
			InstanceTypeOptions: ec2InstanceTypeMenu,
			CustomFields: []FieldSpec{
				numberField("storage_size", "EBS storage (GB)", "e.g. 50"),
			},
			PricingNote: "On-demand monthly rate per instance, plus gp3 EBS storage when sized",
		},
	},
	{
		nameKeywords: []string{"lambda"},
		config: CategoryConfig{
			Key:         "lambda",
			DisplayName: "AWS Lambda",
			CustomFields: []FieldSpec{
				numberField("invocations_per_month", "Invocations per month", "e.g. 1000000"),
				selectField("memory_mb", "Memory (MB)", "128", "256", "512", "1024", "2048"),
				numberField("avg_duration_ms", "Average duration (ms)", "e.g. 200"),
			},
			PricingNote: "Priced per request and GB-second; usage collected for sizing, not yet priced",
		},
	},
	{
		nameKeywords: []string{"fargate", "elastic container service", "ecs"},
		config: CategoryConfig{
			Key:         "ecs",
			DisplayName: "Amazon ECS",
			ShowCount:   true,
			CountLabel:  "Service count",
			CustomFields: []FieldSpec{
				selectField("launch_type", "Launch type", "EC2", "Fargate"),
			},
			PricingNote: "No control-plane charge on the EC2 launch type; Fargate not modeled",
		},
	},
	{
		nameKeywords: []string{"eks", "kubernetes"},
		config: CategoryConfig{
			Key:         "eks",
			DisplayName: "Amazon EKS",
			ShowCount:   true,
			CountLabel:  "Cluster count",
			CustomFields: []FieldSpec{
				numberField("node_count", "Worker node count", "e.g. 3"),
			},
			PricingNote: "Control plane billed hourly per cluster; worker nodes priced as EC2",
		},
	},
	{
		nameKeywords: []string{"batch"},
		config: CategoryConfig{
			Key:         "batch",
			DisplayName: "AWS Batch",
			CustomFields: []FieldSpec{
				numberField("vcpu_hours", "vCPU-hours per month", "e.g. 500"),
			},
			PricingNote: "No charge for Batch itself; underlying compute priced separately",
		},
	},

	// Storage
	{
		nameKeywords: []string{"s3", "simple storage"},
		config: CategoryConfig{
			Key:         "s3",
			DisplayName: "Amazon S3",
			CustomFields: []FieldSpec{
				numberField("storage_size", "Storage (GB)", "e.g. 100"),
				selectField("storage_class", "Storage class", "Standard", "Standard-IA", "Glacier", "Glacier Deep Archive"),
			},
			PricingNote: "Standard-class per-GB-month rate; request charges not modeled",
		},
	},
	{
		nameKeywords: []string{"ebs", "elastic block"},
		config: CategoryConfig{
			Key:         "ebs",
			DisplayName: "Amazon EBS",
			ShowCount:   true,
			CountLabel:  "Volume count",
			CustomFields: []FieldSpec{
				numberField("storage_size", "Volume size (GB)", "e.g. 100"),
				selectField("volume_type", "Volume type", "gp3", "gp2", "io1", "st1"),
			},
			PricingNote: "gp3 per-GB-month rate",
		},
	},
	{
		nameKeywords: []string{"efs", "elastic file"},
		config: CategoryConfig{
			Key:         "efs",
			DisplayName: "Amazon EFS",
			CustomFields: []FieldSpec{
				numberField("storage_size", "Storage (GB)", "e.g. 50"),
			},
			PricingNote: "Per-GB-month standard storage; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"fsx"},
		config: CategoryConfig{
			Key:         "fsx",
			DisplayName: "Amazon FSx",
			CustomFields: []FieldSpec{
				selectField("file_system_type", "File system", "Windows File Server", "Lustre", "NetApp ONTAP"),
				numberField("storage_size", "Storage (GB)", "e.g. 300"),
			},
			PricingNote: "Per-GB-month by file system type; usage collected, not yet priced",
		},
	},

	// Databases. Specific engines sit before the generic "database" rule
	// so that e.g. DynamoDB is never swallowed by it.
	{
		nameKeywords: []string{"dynamodb"},
		config: CategoryConfig{
			Key:         "dynamodb",
			DisplayName: "Amazon DynamoDB",
			CustomFields: []FieldSpec{
				selectField("billing_mode", "Billing mode", "On-demand", "Provisioned"),
				numberField("read_capacity_units", "Read capacity units", "e.g. 25"),
				numberField("write_capacity_units", "Write capacity units", "e.g. 25"),
				numberField("storage_gb", "Table storage (GB)", "e.g. 20"),
			},
			PricingNote: "Per-request or provisioned throughput; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"documentdb", "docdb"},
		config: CategoryConfig{
			Key:         "documentdb",
			DisplayName: "Amazon DocumentDB",
			ShowCount:   true,
			CountLabel:  "Instance count",
			CustomFields: []FieldSpec{
				selectField("instance_class", "Instance class", "db.t3.medium", "db.r5.large", "db.r5.xlarge"),
			},
			PricingNote: "Instance-hours plus storage; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"elasticache", "memcached", "redis"},
		config: CategoryConfig{
			Key:                 "elasticache",
			DisplayName:         "Amazon ElastiCache",
			ShowCount:           true,
			CountLabel:          "Node count",
			ShowInstanceType:    true,
			InstanceTypeOptions: cacheNodeTypeMenu,
			CustomFields: []FieldSpec{
				selectField("engine", "Engine", "Redis", "Memcached"),
			},
			PricingNote: "On-demand monthly rate per cache node",
		},
	},
	{
		nameKeywords: []string{"redshift"},
		config: CategoryConfig{
			Key:         "redshift",
			DisplayName: "Amazon Redshift",
			ShowCount:   true,
			CountLabel:  "Node count",
			CustomFields: []FieldSpec{
				selectField("node_type", "Node type", "dc2.large", "ra3.xlplus", "ra3.4xlarge"),
			},
			PricingNote: "Node-hours by node type; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"rds", "aurora", "relational database"},
		config: CategoryConfig{
			Key:                 "rds",
			DisplayName:         "Amazon RDS",
			ShowCount:           true,
			CountLabel:          "Instance count",
			ShowInstanceType:    true,
			InstanceTypeOptions: rdsInstanceClassMenu,
			CustomFields: []FieldSpec{
				selectField("engine", "Engine", "MySQL", "PostgreSQL", "MariaDB", "Oracle", "SQL Server"),
				selectField("deployment", "Deployment", "Single-AZ", "Multi-AZ"),
			},
			PricingNote: "Single-AZ on-demand monthly rate per instance",
		},
	},

	// Networking and content delivery
	{
		nameKeywords: []string{"nat gateway", "nat"},
		config: CategoryConfig{
			Key:         "natgateway",
			DisplayName: "NAT Gateway",
			ShowCount:   true,
			CountLabel:  "Gateway count",
			CustomFields: []FieldSpec{
				numberField("bandwidth", "Data processed (GB/month)", "e.g. 500"),
			},
			PricingNote: "Fixed monthly charge per gateway plus per-GB data processing",
		},
	},
	{
		nameKeywords: []string{"cloudfront", "cdn"},
		config: CategoryConfig{
			Key:         "cloudfront",
			DisplayName: "Amazon CloudFront",
			CustomFields: []FieldSpec{
				numberField("bandwidth", "Data transfer out (GB/month)", "e.g. 1000"),
				numberField("requests_millions", "Requests (millions/month)", "e.g. 10"),
			},
			PricingNote: "Per-GB data transfer out; request charges not modeled",
		},
	},
	{
		nameKeywords: []string{"route 53", "route53", "dns"},
		config: CategoryConfig{
			Key:         "route53",
			DisplayName: "Amazon Route 53",
			CustomFields: []FieldSpec{
				numberField("hosted_zones", "Hosted zones", "e.g. 2"),
				numberField("queries_millions", "Queries (millions/month)", "e.g. 50"),
			},
			PricingNote: "Per hosted zone and per million queries; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"application load balancer", "load balancer", "alb", "nlb", "elb"},
		config: CategoryConfig{
			Key:         "elb",
			DisplayName: "Elastic Load Balancing",
			ShowCount:   true,
			CountLabel:  "Load balancer count",
			CustomFields: []FieldSpec{
				selectField("lb_type", "Type", "Application", "Network", "Gateway", "Classic"),
				numberField("processed_gb", "Processed data (GB/month)", "e.g. 100"),
			},
			PricingNote: "Fixed monthly charge per load balancer plus an assumed 2-LCU usage charge",
		},
	},
	{
		nameKeywords: []string{"api gateway", "apigateway"},
		config: CategoryConfig{
			Key:         "apigateway",
			DisplayName: "Amazon API Gateway",
			CustomFields: []FieldSpec{
				selectField("api_type", "API type", "REST", "HTTP", "WebSocket"),
				numberField("requests_millions", "Requests (millions/month)", "e.g. 5"),
			},
			PricingNote: "Per million requests by API type; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"direct connect"},
		config: CategoryConfig{
			Key:         "directconnect",
			DisplayName: "AWS Direct Connect",
			CustomFields: []FieldSpec{
				selectField("port_speed", "Port speed", "1 Gbps", "10 Gbps", "100 Gbps"),
				numberField("data_transfer_gb", "Data transfer out (GB/month)", "e.g. 1000"),
			},
			PricingNote: "Port-hours plus data transfer out; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"vpc", "virtual private cloud"},
		config: CategoryConfig{
			Key:         "vpc",
			DisplayName: "Amazon VPC",
			CustomFields: []FieldSpec{
				numberField("nat_gateways", "NAT gateways", "e.g. 2"),
				numberField("vpn_connections", "VPN connections", "e.g. 1"),
			},
			PricingNote: "VPC itself is free; attached gateways and endpoints carry the cost",
		},
	},

	// Security, identity and governance. WAF precedes the messaging block
	// because "web application firewall" names are common model output.
	{
		nameKeywords: []string{"waf", "web application firewall"},
		config: CategoryConfig{
			Key:         "waf",
			DisplayName: "AWS WAF",
			CustomFields: []FieldSpec{
				numberField("web_acls", "Web ACLs", "e.g. 1"),
				numberField("managed_rules", "Rules", "e.g. 10"),
			},
			PricingNote: "Monthly web ACL charge plus a one-million-request block",
		},
	},
	{
		nameKeywords: []string{"cognito"},
		config: CategoryConfig{
			Key:         "cognito",
			DisplayName: "Amazon Cognito",
			CustomFields: []FieldSpec{
				numberField("monthly_active_users", "Monthly active users", "e.g. 10000"),
			},
			PricingNote: "Per monthly active user beyond the free tier; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"kms", "key management"},
		config: CategoryConfig{
			Key:         "kms",
			DisplayName: "AWS KMS",
			CustomFields: []FieldSpec{
				numberField("customer_keys", "Customer managed keys", "e.g. 5"),
				numberField("requests_millions", "Requests (millions/month)", "e.g. 1"),
			},
			PricingNote: "Per key-month plus per-request charges; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"secrets manager", "secretsmanager"},
		config: CategoryConfig{
			Key:         "secretsmanager",
			DisplayName: "AWS Secrets Manager",
			CustomFields: []FieldSpec{
				numberField("secrets", "Stored secrets", "e.g. 20"),
			},
			PricingNote: "Per secret-month plus API calls; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"iam", "identity and access"},
		config: CategoryConfig{
			Key:         "iam",
			DisplayName: "AWS IAM",
			PricingNote: "No charge",
		},
	},

	// Messaging and integration
	{
		nameKeywords: []string{"sns", "simple notification"},
		config: CategoryConfig{
			Key:         "sns",
			DisplayName: "Amazon SNS",
			CustomFields: []FieldSpec{
				numberField("notifications_millions", "Notifications (millions/month)", "e.g. 1"),
			},
			PricingNote: "Flat basic-tier monthly assumption",
		},
	},
	{
		nameKeywords: []string{"sqs", "simple queue"},
		config: CategoryConfig{
			Key:         "sqs",
			DisplayName: "Amazon SQS",
			CustomFields: []FieldSpec{
				selectField("queue_type", "Queue type", "Standard", "FIFO"),
				numberField("requests_millions", "Requests (millions/month)", "e.g. 10"),
			},
			PricingNote: "Per million requests beyond the free tier; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"eventbridge", "event bridge"},
		config: CategoryConfig{
			Key:         "eventbridge",
			DisplayName: "Amazon EventBridge",
			CustomFields: []FieldSpec{
				numberField("events_millions", "Events (millions/month)", "e.g. 5"),
			},
			PricingNote: "Per million published events; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"step functions", "stepfunctions"},
		config: CategoryConfig{
			Key:         "stepfunctions",
			DisplayName: "AWS Step Functions",
			CustomFields: []FieldSpec{
				numberField("state_transitions", "State transitions per month", "e.g. 100000"),
			},
			PricingNote: "Per state transition; usage collected, not yet priced",
		},
	},

	// Analytics and streaming. Firehose precedes Kinesis because
	// "Kinesis Data Firehose" contains both tokens.
	{
		nameKeywords: []string{"firehose"},
		config: CategoryConfig{
			Key:         "firehose",
			DisplayName: "Amazon Kinesis Data Firehose",
			CustomFields: []FieldSpec{
				numberField("ingestion_gb", "Data ingested (GB/month)", "e.g. 500"),
			},
			PricingNote: "Per-GB ingestion; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"kinesis"},
		config: CategoryConfig{
			Key:         "kinesis",
			DisplayName: "Amazon Kinesis Data Streams",
			CustomFields: []FieldSpec{
				numberField("shard_count", "Shards", "e.g. 4"),
				numberField("data_gb", "Data ingested (GB/month)", "e.g. 200"),
			},
			PricingNote: "Shard-hours plus PUT payload units; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"emr", "elastic mapreduce"},
		config: CategoryConfig{
			Key:                 "emr",
			DisplayName:         "Amazon EMR",
			ShowCount:           true,
			CountLabel:          "Node count",
			ShowInstanceType:    true,
			InstanceTypeOptions: ec2InstanceTypeMenu,
			PricingNote:         "EMR surcharge on top of EC2 node-hours; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"athena"},
		config: CategoryConfig{
			Key:         "athena",
			DisplayName: "Amazon Athena",
			CustomFields: []FieldSpec{
				numberField("data_scanned_tb", "Data scanned (TB/month)", "e.g. 2"),
			},
			PricingNote: "Per TB scanned; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"glue"},
		config: CategoryConfig{
			Key:         "glue",
			DisplayName: "AWS Glue",
			CustomFields: []FieldSpec{
				numberField("dpu_hours", "DPU-hours per month", "e.g. 100"),
			},
			PricingNote: "Per DPU-hour; usage collected, not yet priced",
		},
	},

	// Machine learning
	{
		nameKeywords: []string{"sagemaker"},
		config: CategoryConfig{
			Key:         "sagemaker",
			DisplayName: "Amazon SageMaker",
			CustomFields: []FieldSpec{
				selectField("instance_type", "Instance type", "ml.t3.medium", "ml.m5.xlarge", "ml.p3.2xlarge"),
				numberField("training_hours", "Training hours per month", "e.g. 50"),
			},
			PricingNote: "Instance-hours for notebooks, training and endpoints; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"comprehend"},
		config: CategoryConfig{
			Key:         "comprehend",
			DisplayName: "Amazon Comprehend",
			CustomFields: []FieldSpec{
				numberField("units_millions", "Text units (millions/month)", "e.g. 1"),
			},
			PricingNote: "Per text unit; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"rekognition"},
		config: CategoryConfig{
			Key:         "rekognition",
			DisplayName: "Amazon Rekognition",
			CustomFields: []FieldSpec{
				numberField("images_processed", "Images processed per month", "e.g. 100000"),
			},
			PricingNote: "Per image or video-minute; usage collected, not yet priced",
		},
	},

	// Monitoring and management
	{
		nameKeywords: []string{"cloudwatch"},
		config: CategoryConfig{
			Key:         "cloudwatch",
			DisplayName: "Amazon CloudWatch",
			CustomFields: []FieldSpec{
				numberField("custom_metrics", "Custom metrics", "e.g. 20"),
				numberField("logs_ingested_gb", "Logs ingested (GB/month)", "e.g. 10"),
			},
			PricingNote: "Flat basic-tier monthly assumption",
		},
	},
	{
		nameKeywords: []string{"cloudtrail"},
		config: CategoryConfig{
			Key:         "cloudtrail",
			DisplayName: "AWS CloudTrail",
			CustomFields: []FieldSpec{
				numberField("trails", "Trails", "e.g. 1"),
			},
			PricingNote: "Flat monthly assumption for one trail beyond the free tier",
		},
	},

	// End-user computing
	{
		nameKeywords: []string{"workspaces"},
		config: CategoryConfig{
			Key:         "workspaces",
			DisplayName: "Amazon WorkSpaces",
			ShowCount:   true,
			CountLabel:  "WorkSpace count",
			CustomFields: []FieldSpec{
				selectField("bundle", "Bundle", "Value", "Standard", "Performance", "Power"),
			},
			PricingNote: "Per WorkSpace-month by bundle; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"appstream"},
		config: CategoryConfig{
			Key:         "appstream",
			DisplayName: "Amazon AppStream 2.0",
			CustomFields: []FieldSpec{
				numberField("streaming_hours", "Streaming hours per month", "e.g. 200"),
			},
			PricingNote: "Streaming instance-hours; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"backup"},
		config: CategoryConfig{
			Key:         "backup",
			DisplayName: "AWS Backup",
			CustomFields: []FieldSpec{
				numberField("backup_storage_gb", "Backup storage (GB)", "e.g. 500"),
			},
			PricingNote: "Per-GB-month backup storage; usage collected, not yet priced",
		},
	},

	// Generic family rules: the free-text type hint is consulted only
	// here, once every specific service name has had its chance.
	{
		nameKeywords: []string{"database"},
		typeKeywords: []string{"database"},
		config: CategoryConfig{
			Key:                 "database",
			DisplayName:         "Managed database",
			ShowCount:           true,
			CountLabel:          "Instance count",
			ShowInstanceType:    true,
			InstanceTypeOptions: rdsInstanceClassMenu,
			PricingNote:         "Treated as RDS-class database pricing",
		},
	},
	{
		nameKeywords: []string{"storage"},
		typeKeywords: []string{"storage"},
		config: CategoryConfig{
			Key:         "storage",
			DisplayName: "Managed storage",
			CustomFields: []FieldSpec{
				numberField("storage_size", "Storage (GB)", "e.g. 100"),
			},
			PricingNote: "Treated as S3-class per-GB storage pricing",
		},
	},
	{
		nameKeywords: []string{"compute"},
		typeKeywords: []string{"compute"},
		config: CategoryConfig{
			Key:                 "compute",
			DisplayName:         "Managed compute",
			ShowCount:           true,
			CountLabel:          "Instance count",
			ShowInstanceType:    true,
			InstanceTypeOptions: ec2InstanceTypeMenu,
			PricingNote:         "Treated as EC2-class instance pricing",
		},
	},
	{
		nameKeywords: []string{"network"},
		typeKeywords: []string{"network", "networking"},
		config: CategoryConfig{
			Key:         "network",
			DisplayName: "Networking",
			PricingNote: "Attached gateways and transfer carry the cost",
		},
	},

	// Short tokens that occur inside longer words come last, after every
	// rule they could shadow: "ses" is a substring of "databases", and
	// "config" of "configuration".
	{
		nameKeywords: []string{"simple email", "ses"},
		config: CategoryConfig{
			Key:         "ses",
			DisplayName: "Amazon SES",
			CustomFields: []FieldSpec{
				numberField("emails_per_month", "Emails per month", "e.g. 50000"),
				numberField("attachment_gb", "Attachment data (GB/month)", "e.g. 5"),
			},
			PricingNote: "Per thousand emails plus attachment data; usage collected, not yet priced",
		},
	},
	{
		nameKeywords: []string{"config"},
		config: CategoryConfig{
			Key:         "config",
			DisplayName: "AWS Config",
			CustomFields: []FieldSpec{
				numberField("config_items", "Configuration items per month", "e.g. 10000"),
			},
			PricingNote: "Per configuration item recorded; usage collected, not yet priced",
		},
	},
}

// genericConfig is the catch-all for services no rule recognizes.
// Classification never fails; unknown services get a count input and a
// free-text usage metric.
var genericConfig = CategoryConfig{
	Key:         "generic",
	DisplayName: "Managed service",
	ShowCount:   true,
	CountLabel:  "Resource count",
	CustomFields: []FieldSpec{
		textField("usage_metric", "Primary usage metric", "e.g. requests/month"),
	},
	PricingNote: "Flat managed-service monthly rate per resource",
}
