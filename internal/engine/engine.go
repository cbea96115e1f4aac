// Package engine runs the full revenue-operations calculation pass behind a
// content-addressed result cache.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"revops-engine/internal/domain"
	"revops-engine/internal/health"
	"revops-engine/internal/idhash"
	"revops-engine/internal/observability"
)

// Engine validates inputs and computes Results, reusing results for inputs it
// has already seen. Safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	metrics     *observability.Metrics // optional
	evaluator   *health.Evaluator
	workingDays float64
	cache       *resultCache
}

// New creates an engine with default settings and a discarding logger.
func New() *Engine {
	return &Engine{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		evaluator:   health.NewEvaluator(),
		workingDays: DefaultWorkingDays,
		cache:       newResultCache(DefaultCacheSize),
	}
}

// WithLogger sets the structured logger.
func (e *Engine) WithLogger(logger *slog.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// WithMetrics enables Prometheus instrumentation.
func (e *Engine) WithMetrics(m *observability.Metrics) *Engine {
	e.metrics = m
	return e
}

// WithCacheSize replaces the result cache with one holding up to n entries.
// Zero disables caching.
func (e *Engine) WithCacheSize(n int) *Engine {
	e.cache = newResultCache(n)
	return e
}

// WithWorkingDays sets the selling days per month used for daily commission.
// Cached results computed with the previous value are dropped.
func (e *Engine) WithWorkingDays(days float64) *Engine {
	if days > 0 && days != e.workingDays {
		e.workingDays = days
		e.cache.purge()
	}
	return e
}

// WithHealthThresholds overrides the health gate limits.
func (e *Engine) WithHealthThresholds(t health.Thresholds) *Engine {
	e.evaluator = health.NewEvaluatorWithThresholds(t)
	e.cache.purge()
	return e
}

// WorkingDays returns the configured selling days per month.
func (e *Engine) WorkingDays() float64 {
	return e.workingDays
}

// CacheLen returns the number of cached results.
func (e *Engine) CacheLen() int {
	return e.cache.len()
}

// Calculate validates in and returns its Results.
// Identical inputs are computed once; concurrent callers share the computation.
// The returned Results are owned by the caller.
func (e *Engine) Calculate(ctx context.Context, in domain.Inputs) (*Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := in.Validate(); err != nil {
		e.metrics.RecordValidationFailure(err)
		e.logger.Warn("inputs rejected",
			slog.String("kind", observability.FailureKind(err)),
			slog.String("error", err.Error()))
		return nil, err
	}

	key, err := idhash.InputsKey(in)
	if err != nil {
		return nil, fmt.Errorf("hash inputs: %w", err)
	}

	if r, ok := e.cache.get(key); ok {
		e.metrics.RecordCacheHit()
		return r.Clone(), nil
	}

	v, _, shared := e.cache.group.Do(key, func() (any, error) {
		if r, ok := e.cache.get(key); ok {
			return r, nil
		}
		start := time.Now()
		r := Compute(in.Clone(), e.workingDays, e.evaluator)
		e.cache.put(key, r)

		elapsed := time.Since(start)
		e.metrics.RecordCalculation("calculate", elapsed)
		e.metrics.RecordCacheMiss(e.cache.len())
		e.logger.Debug("results computed",
			slog.String("key", key[:12]),
			slog.Int("channels", len(in.Channels)),
			slog.Duration("elapsed", elapsed))
		return r, nil
	})
	if shared {
		e.logger.Debug("computation shared", slog.String("key", key[:12]))
	}

	return v.(*Results).Clone(), nil
}
