package catalog

import "strings"

// Classify resolves a service's free-text name and type hint to exactly
// one category configuration. Matching is case-insensitive substring
// containment over the ordered rule table; the first matching rule wins
// and unmatched services resolve to the generic managed-service config.
// Classify is pure and never fails.
func Classify(name, serviceType string) CategoryConfig {
	lname := strings.ToLower(strings.TrimSpace(name))
	ltype := strings.ToLower(strings.TrimSpace(serviceType))

	for _, r := range classificationRules {
		if matches(lname, r.nameKeywords) || matches(ltype, r.typeKeywords) {
			return r.config
		}
	}
	return genericConfig
}

// Generic returns the catch-all configuration applied to services no
// rule recognizes.
func Generic() CategoryConfig {
	return genericConfig
}

// Categories returns every category configuration the classifier can
// produce, in rule-precedence order, with the generic catch-all last.
// Family aliases that reuse an earlier category's key are collapsed.
func Categories() []CategoryConfig {
	seen := make(map[string]bool, len(classificationRules)+1)
	out := make([]CategoryConfig, 0, len(classificationRules)+1)
	for _, r := range classificationRules {
		if seen[r.config.Key] {
			continue
		}
		seen[r.config.Key] = true
		out = append(out, r.config)
	}
	out = append(out, genericConfig)
	return out
}

func matches(haystack string, keywords []string) bool {
	if haystack == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
