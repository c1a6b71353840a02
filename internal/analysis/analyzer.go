// Package analysis defines the vision-model boundary: the collaborator
// that turns an architecture-diagram image into a list of identified
// services, and the parsing that makes its output safe to consume.
package analysis

import (
	"context"
	"fmt"

	"archcost/internal/estimate"
)

// Analysis is the structured result of one diagram analysis.
type Analysis struct {
	// Services are the identified cloud resources, already normalized
	// (counts clamped, numeric fields coerced).
	Services []estimate.Service `json:"services"`

	// Patterns are architecture patterns the model recognized, e.g.
	// "three-tier web application".
	Patterns []string `json:"architecture_patterns,omitempty"`

	// Recommendations are free-text design suggestions from the model.
	Recommendations []string `json:"recommendations,omitempty"`

	// Confidence is the model's self-reported confidence, clamped to
	// [0, 1] during parsing.
	Confidence float64 `json:"confidence"`
}

// Analyzer is the vision-model collaborator. Implementations make
// network calls and may fail; callers surface failures as an analysis
// status rather than estimating anyway.
type Analyzer interface {
	// AnalyzeDiagram identifies cloud services in a diagram image.
	AnalyzeDiagram(ctx context.Context, image []byte) (*Analysis, error)
}

// MalformedResponseError reports a model response that could not be
// parsed into the expected shape. It is terminal: malformed output is
// never retried, the analysis fails fast.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed analysis response: %s", e.Reason)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, image []byte) (*Analysis, error)

func (f AnalyzerFunc) AnalyzeDiagram(ctx context.Context, image []byte) (*Analysis, error) {
	return f(ctx, image)
}
