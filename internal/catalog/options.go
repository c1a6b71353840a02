package catalog

// Fixed instance-type menus offered by the configuration UI. These are
// the menus the user picks from; the rate tables in internal/pricing
// resolve whatever lands in the estimate, including types outside these
// lists, via the flat fallbacks.
var (
	ec2InstanceTypeMenu = []string{
		"t3.micro",
		"t3.small",
		"t3.medium",
		"t3.large",
		"t3.xlarge",
		"m5.large",
		"m5.xlarge",
		"c5.large",
		"c5.xlarge",
		"r5.large",
	}

	rdsInstanceClassMenu = []string{
		"db.t3.micro",
		"db.t3.small",
		"db.t3.medium",
		"db.t3.large",
		"db.m5.large",
		"db.r5.large",
	}

	cacheNodeTypeMenu = []string{
		"cache.t3.micro",
		"cache.t3.small",
		"cache.t3.medium",
		"cache.m5.large",
		"cache.r5.large",
	}
)
