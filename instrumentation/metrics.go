package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all metric instruments for the tokenmint library
type Metrics struct {
	// Generation metrics
	TokensGenerated    metric.Int64Counter
	TokensFailed       metric.Int64Counter
	GenerationDuration metric.Float64Histogram

	// Cache metrics
	CacheHits   metric.Int64Counter
	CacheMisses metric.Int64Counter

	// Security metrics
	EntropyFailures   metric.Int64Counter
	ConfigClamps      metric.Int64Counter
	SigningDowngrades metric.Int64Counter
	RateLimitExceeded metric.Int64Counter
}

// newMetrics creates and registers all metric instruments
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	meter := inst.Meter("generator")

	var err error
	m.TokensGenerated, err = meter.Int64Counter(
		"tokenmint.tokens.generated.total",
		metric.WithDescription("Total number of tokens produced"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokens.generated.total counter: %w", err)
	}

	m.TokensFailed, err = meter.Int64Counter(
		"tokenmint.tokens.failed.total",
		metric.WithDescription("Total number of tokens that could not be produced"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokens.failed.total counter: %w", err)
	}

	m.GenerationDuration, err = meter.Float64Histogram(
		"tokenmint.generation.duration",
		metric.WithDescription("Token generation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation.duration histogram: %w", err)
	}

	cacheMeter := inst.Meter("cache")

	m.CacheHits, err = cacheMeter.Int64Counter(
		"tokenmint.cache.hits.total",
		metric.WithDescription("TTL cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache.hits.total counter: %w", err)
	}

	m.CacheMisses, err = cacheMeter.Int64Counter(
		"tokenmint.cache.misses.total",
		metric.WithDescription("TTL cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache.misses.total counter: %w", err)
	}

	securityMeter := inst.Meter("security")

	m.EntropyFailures, err = securityMeter.Int64Counter(
		"tokenmint.entropy.failures.total",
		metric.WithDescription("CSPRNG failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create entropy.failures.total counter: %w", err)
	}

	m.ConfigClamps, err = securityMeter.Int64Counter(
		"tokenmint.config.clamps.total",
		metric.WithDescription("Configuration values clamped or demoted at resolution"),
		metric.WithUnit("{clamp}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create config.clamps.total counter: %w", err)
	}

	m.SigningDowngrades, err = securityMeter.Int64Counter(
		"tokenmint.signing.downgrades.total",
		metric.WithDescription("Metadata tokens emitted unsigned"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create signing.downgrades.total counter: %w", err)
	}

	m.RateLimitExceeded, err = securityMeter.Int64Counter(
		"tokenmint.rate_limit.exceeded.total",
		metric.WithDescription("Throttled token issuance requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate_limit.exceeded.total counter: %w", err)
	}

	return m, nil
}

// RecordTokenGenerated records a produced token (nil-safe)
func (m *Metrics) RecordTokenGenerated(ctx context.Context, token, format string, cached bool, durationMs float64) {
	if m == nil {
		return
	}
	m.TokensGenerated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("token", token),
		attribute.String("format", format),
		attribute.Bool("cached", cached),
	))
	m.GenerationDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("token", token),
	))
}

// RecordTokenFailed records a token that was not produced (nil-safe)
func (m *Metrics) RecordTokenFailed(ctx context.Context, token, code string) {
	if m == nil {
		return
	}
	m.TokensFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("token", token),
		attribute.String("code", code),
	))
}

// RecordCacheHit records a TTL cache hit (nil-safe)
func (m *Metrics) RecordCacheHit(ctx context.Context, token string) {
	if m == nil {
		return
	}
	m.CacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("token", token)))
}

// RecordCacheMiss records a TTL cache miss (nil-safe)
func (m *Metrics) RecordCacheMiss(ctx context.Context, token string) {
	if m == nil {
		return
	}
	m.CacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("token", token)))
}

// RecordEntropyFailure records a CSPRNG failure (nil-safe)
func (m *Metrics) RecordEntropyFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.EntropyFailures.Add(ctx, 1)
}

// RecordConfigClamp records a clamped configuration value (nil-safe)
func (m *Metrics) RecordConfigClamp(ctx context.Context, token, field string) {
	if m == nil {
		return
	}
	m.ConfigClamps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("token", token),
		attribute.String("field", field),
	))
}

// RecordSigningDowngrade records a metadata token emitted unsigned (nil-safe)
func (m *Metrics) RecordSigningDowngrade(ctx context.Context, token string) {
	if m == nil {
		return
	}
	m.SigningDowngrades.Add(ctx, 1, metric.WithAttributes(attribute.String("token", token)))
}

// RecordRateLimitExceeded records a throttled issuance request (nil-safe)
func (m *Metrics) RecordRateLimitExceeded(ctx context.Context) {
	if m == nil {
		return
	}
	m.RateLimitExceeded.Add(ctx, 1)
}
