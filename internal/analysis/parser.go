package analysis

import (
	"strings"

	"github.com/goccy/go-json"

	"archcost/internal/estimate"
)

// rawService mirrors the loose shape the model actually emits: numbers
// arrive as numbers or strings, counts go missing, and extra keys
// appear. Coercion to the typed Service happens after decode.
type rawService struct {
	Name         string                          `json:"name"`
	Type         string                          `json:"type"`
	Count        any                             `json:"count"`
	InstanceType string                          `json:"instance_type"`
	StorageSize  any                             `json:"storage_size"`
	Bandwidth    any                             `json:"bandwidth"`
	CustomConfig map[string]estimate.ConfigValue `json:"customConfig"`
}

type rawAnalysis struct {
	Services        *[]rawService `json:"services"`
	Patterns        []string      `json:"architecture_patterns"`
	Recommendations []string      `json:"recommendations"`
	Confidence      *float64      `json:"confidence"`
}

// ParseModelResponse turns a raw model reply into a validated Analysis.
// Markdown code fences around the JSON body are tolerated. A reply
// that is not JSON, or that lacks a services array, fails with
// *MalformedResponseError; individual service entries are coerced, not
// validated, so a sloppy entry degrades to defaults instead of failing
// the whole analysis.
func ParseModelResponse(raw []byte) (*Analysis, error) {
	body := stripCodeFence(raw)

	var decoded rawAnalysis
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &MalformedResponseError{Reason: "response is not valid JSON: " + err.Error()}
	}
	if decoded.Services == nil {
		return nil, &MalformedResponseError{Reason: "response has no services array"}
	}

	a := &Analysis{
		Services:        make([]estimate.Service, 0, len(*decoded.Services)),
		Patterns:        decoded.Patterns,
		Recommendations: decoded.Recommendations,
		Confidence:      clampConfidence(decoded.Confidence),
	}

	for _, rs := range *decoded.Services {
		name := strings.TrimSpace(rs.Name)
		if name == "" {
			// A nameless entry carries no signal; drop it rather than
			// producing an unlabeled line item.
			continue
		}
		a.Services = append(a.Services, estimate.Service{
			Name:          name,
			Type:          strings.TrimSpace(rs.Type),
			Count:         estimate.CoerceCount(rs.Count),
			InstanceType:  strings.TrimSpace(rs.InstanceType),
			StorageSizeGB: estimate.CoerceGB(rs.StorageSize),
			BandwidthGB:   estimate.CoerceGB(rs.Bandwidth),
			CustomConfig:  rs.CustomConfig,
		})
	}

	return a, nil
}

// stripCodeFence removes a surrounding markdown code fence if present.
// Vision models frequently wrap their JSON in ```json fences despite
// instructions not to.
func stripCodeFence(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return raw
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		// Drop the language tag line ("json").
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}

func clampConfidence(c *float64) float64 {
	if c == nil {
		return 0
	}
	switch {
	case *c < 0:
		return 0
	case *c > 1:
		return 1
	default:
		return *c
	}
}
