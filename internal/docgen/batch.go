package docgen

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// BatchConfig tunes the batch generator's retry and pacing behavior.
type BatchConfig struct {
	// MaxAttempts is the total generator calls allowed per document,
	// including the first.
	MaxAttempts int

	// BaseDelay is the wait before the first retry; it doubles on each
	// subsequent throttled attempt.
	BaseDelay time.Duration

	// InterDocDelay separates consecutive documents so a batch does not
	// hammer the model endpoint.
	InterDocDelay time.Duration

	// CallTimeout bounds a single generator call.
	CallTimeout time.Duration
}

// DefaultBatchConfig matches the pacing the generation endpoint ships
// with: three attempts, 2s base backoff, 1s between documents.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxAttempts:   3,
		BaseDelay:     2 * time.Second,
		InterDocDelay: 1 * time.Second,
		CallTimeout:   60 * time.Second,
	}
}

// BatchGenerator runs a set of document generations sequentially with
// per-document retry on throttling. One document's failure never aborts
// the rest of the batch.
type BatchGenerator struct {
	generator ContentGenerator
	renderer  Renderer
	cfg       BatchConfig
	logger    zerolog.Logger

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewBatchGenerator wires a batch runner. A zero-value cfg field falls
// back to its DefaultBatchConfig value.
func NewBatchGenerator(g ContentGenerator, r Renderer, cfg BatchConfig, logger zerolog.Logger) *BatchGenerator {
	def := DefaultBatchConfig()
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = def.BaseDelay
	}
	if cfg.InterDocDelay < 0 {
		cfg.InterDocDelay = def.InterDocDelay
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	return &BatchGenerator{
		generator: g,
		renderer:  r,
		cfg:       cfg,
		logger:    logger,
		sleep:     sleepCtx,
	}
}

// GenerateAll produces one Result per requested type, in request order.
// When ctx is done, documents not yet started are marked failed with the
// context error and no further generator calls are issued.
func (bg *BatchGenerator) GenerateAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, 0, len(reqs))

	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Type: req.Type, Status: StatusFailed, Err: err})
			continue
		}
		if i > 0 && bg.cfg.InterDocDelay > 0 {
			if err := bg.sleep(ctx, bg.cfg.InterDocDelay); err != nil {
				results = append(results, Result{Type: req.Type, Status: StatusFailed, Err: err})
				continue
			}
		}

		res := bg.generateOne(ctx, req)
		bg.logger.Info().
			Str("document_type", string(req.Type)).
			Str("status", string(res.Status)).
			Int("attempts", res.Attempts).
			Msg("document generation finished")
		results = append(results, res)
	}

	return results
}

// generateOne retries throttled calls with exponential backoff and
// renders on success. Non-throttle errors are terminal immediately.
func (bg *BatchGenerator) generateOne(ctx context.Context, req Request) Result {
	res := Result{Type: req.Type}
	delay := bg.cfg.BaseDelay

	for attempt := 1; attempt <= bg.cfg.MaxAttempts; attempt++ {
		res.Attempts = attempt

		content, err := bg.callGenerator(ctx, req)
		if err == nil {
			artifact, filename, rerr := bg.renderer.Render(req.Type, content)
			if rerr != nil {
				res.Status = StatusFailed
				res.Err = rerr
				return res
			}
			res.Status = StatusCompleted
			res.Content = content
			res.Artifact = artifact
			res.Filename = filename
			res.Err = nil
			return res
		}

		if !isThrottle(err) {
			res.Status = StatusFailed
			res.Err = err
			return res
		}

		res.Err = err
		if attempt == bg.cfg.MaxAttempts {
			break
		}

		bg.logger.Warn().
			Str("document_type", string(req.Type)).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("generator throttled, backing off")

		if serr := bg.sleep(ctx, delay); serr != nil {
			res.Status = StatusFailed
			res.Err = serr
			return res
		}
		delay *= 2
	}

	res.Status = StatusRateLimited
	return res
}

func (bg *BatchGenerator) callGenerator(ctx context.Context, req Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, bg.cfg.CallTimeout)
	defer cancel()
	return bg.generator.GenerateContent(callCtx, req)
}

// throttleIndicators are the substrings that mark an error as a
// rate-limit response worth retrying.
var throttleIndicators = []string{
	"throttl",
	"429",
	"too many requests",
	"rate exceeded",
}

// isThrottle classifies an error by message because generator
// implementations wrap vendor errors whose types we do not control.
func isThrottle(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, ind := range throttleIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
