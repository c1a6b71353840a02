// Package docgen generates the document set that accompanies an
// analysis: pricing, solution, deployment, and monitoring documents.
// Content comes from a model-backed generator; rendering to a
// downloadable format is a separate concern behind its own interface.
package docgen

import (
	"context"
	"fmt"

	"archcost/internal/analysis"
	"archcost/internal/estimate"
)

// DocumentType identifies one of the fixed document kinds.
type DocumentType string

const (
	TypePricing    DocumentType = "pricing"
	TypeSolution   DocumentType = "solution"
	TypeDeployment DocumentType = "deployment"
	TypeMonitoring DocumentType = "monitoring"
)

// AllDocumentTypes returns the document kinds in generation order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{TypePricing, TypeSolution, TypeDeployment, TypeMonitoring}
}

// ParseDocumentType validates a user-supplied type string.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case TypePricing, TypeSolution, TypeDeployment, TypeMonitoring:
		return DocumentType(s), nil
	default:
		return "", fmt.Errorf("unknown document type %q", s)
	}
}

// Status is the per-document outcome of a batch run.
type Status string

const (
	// StatusCompleted means content was generated and rendered.
	StatusCompleted Status = "completed"

	// StatusFailed means a terminal error; the document is skipped and
	// the batch moves on.
	StatusFailed Status = "failed"

	// StatusRateLimited means the generator kept throttling past the
	// retry ceiling. Callers may rerun the batch later.
	StatusRateLimited Status = "rate_limited"
)

// Request carries everything a generator needs to write one document.
type Request struct {
	Type      DocumentType
	Analysis  *analysis.Analysis
	Breakdown estimate.Breakdown

	// ProjectName labels the document; optional.
	ProjectName string
}

// ContentGenerator produces the body of a single document. Implementations
// call a model and may fail transiently (throttling) or terminally.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req Request) (string, error)
}

// Renderer converts generated content into the downloadable artifact.
type Renderer interface {
	Render(docType DocumentType, content string) ([]byte, string, error)
}

// Result is one document's outcome within a batch.
type Result struct {
	Type    DocumentType `json:"type"`
	Status  Status       `json:"status"`
	Content string       `json:"-"`

	// Artifact and Filename are set when rendering succeeded.
	Artifact []byte `json:"-"`
	Filename string `json:"filename,omitempty"`

	// Err describes why a failed or rate_limited document stopped.
	Err error `json:"-"`

	// Attempts counts generator calls made for this document.
	Attempts int `json:"attempts"`
}

// markdownRenderer passes content through as a .md artifact. It is the
// default renderer; content generators already emit markdown.
type markdownRenderer struct{}

// NewMarkdownRenderer returns a Renderer that stores generated markdown
// verbatim under a type-derived filename.
func NewMarkdownRenderer() Renderer {
	return markdownRenderer{}
}

func (markdownRenderer) Render(docType DocumentType, content string) ([]byte, string, error) {
	return []byte(content), fmt.Sprintf("%s.md", docType), nil
}
