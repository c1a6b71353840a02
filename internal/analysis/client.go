package analysis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// HTTPAnalyzer calls a remote diagram-analysis service: the image is
// posted as the request body and the response body is the model's JSON
// reply, parsed with ParseModelResponse.
type HTTPAnalyzer struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewHTTPAnalyzer builds an analyzer against the given endpoint. A nil
// client falls back to http.DefaultClient; timeouts come from the
// caller's context.
func NewHTTPAnalyzer(endpoint string, client *http.Client, logger zerolog.Logger) *HTTPAnalyzer {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAnalyzer{endpoint: endpoint, client: client, logger: logger}
}

func (a *HTTPAnalyzer) AnalyzeDiagram(ctx context.Context, image []byte) (*Analysis, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("building analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling analysis service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading analysis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	result, err := ParseModelResponse(body)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Int("services", len(result.Services)).
		Float64("confidence", result.Confidence).
		Msg("diagram analyzed")
	return result, nil
}

// Unconfigured returns an Analyzer that always fails with a clear
// message. The server uses it when no analysis endpoint is set so the
// estimation endpoints keep working standalone.
func Unconfigured() Analyzer {
	return AnalyzerFunc(func(context.Context, []byte) (*Analysis, error) {
		return nil, fmt.Errorf("diagram analysis endpoint is not configured")
	})
}
