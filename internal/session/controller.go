package session

import (
	"context"
	"time"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/logger"
	"github.com/yildizm/ingredient-copilot/internal/service"
)

// Service is the remote analysis collaborator
type Service interface {
	FetchSamples(ctx context.Context) ([]common.SampleProduct, error)
	Analyze(ctx context.Context, req *common.AnalysisRequest) (*common.AnalysisResult, error)
}

// Controller drives a Store against a Service
type Controller struct {
	store *Store
	svc   Service
	log   *logger.Logger
}

// NewController creates a controller. A nil logger discards output.
func NewController(store *Store, svc Service, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		store: store,
		svc:   svc,
		log:   log.WithComponent("session"),
	}
}

// Store returns the controlled store
func (c *Controller) Store() *Store {
	return c.store
}

// LoadSamples fetches the sample list into the store. Any failure, or an
// empty list, installs the built-in fallback set instead. The returned flag
// reports whether the service list was used.
func (c *Controller) LoadSamples(ctx context.Context) ([]common.SampleProduct, bool) {
	start := time.Now()
	samples, err := c.svc.FetchSamples(ctx)

	switch {
	case err != nil:
		c.log.WarnWithFields("sample list unavailable, using built-in samples", []logger.Field{
			logger.Error(err),
			logger.Duration(time.Since(start)),
		})
		samples = common.FallbackSamples()
		c.store.SetSamples(samples)
		return samples, false
	case len(samples) == 0:
		c.log.Warn("service returned no samples, using built-in samples")
		samples = common.FallbackSamples()
		c.store.SetSamples(samples)
		return samples, false
	}

	c.log.DebugWithFields("samples loaded", []logger.Field{
		logger.Count(len(samples)),
		logger.Duration(time.Since(start)),
	})
	c.store.SetSamples(samples)
	return samples, true
}

// Analyze performs the request for sub. It does not touch the store; pass
// the outcome to Store.Apply.
func (c *Controller) Analyze(sub *Submission) Outcome {
	result, err := c.svc.Analyze(sub.Context(), sub.Request())
	out := Outcome{
		SubmissionID: sub.ID,
		Result:       result,
		Err:          err,
		Elapsed:      time.Since(sub.StartedAt),
	}

	fields := []logger.Field{
		logger.F("submission", sub.ID),
		logger.Duration(out.Elapsed),
	}
	if err != nil {
		out.Result = nil
		out.Message = service.UserMessage(err)
		c.log.WarnWithFields("analysis failed", append(fields, logger.Error(err)))
		return out
	}
	c.log.DebugWithFields("analysis finished", fields)
	return out
}

// Submit begins a submission for text, waits for it and applies the outcome
func (c *Controller) Submit(text string) (Outcome, error) {
	sub, err := c.store.Begin(text)
	if err != nil {
		return Outcome{}, err
	}
	out := c.Analyze(sub)
	c.store.Apply(out)
	return out, nil
}
