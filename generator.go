package tokenmint

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quayside/tokenmint/encode"
	"github.com/quayside/tokenmint/instrumentation"
	"github.com/quayside/tokenmint/security"
)

// Config holds the Generator's collaborators. The zero value is usable:
// production byte source, wall clock, default logger, no instrumentation.
type Config struct {
	// Logger for structured logging (optional, uses slog.Default if nil)
	Logger *slog.Logger

	// Source is the CSPRNG byte source. Defaults to security.CryptoSource.
	Source security.ByteSource

	// Clock returns the current time. Defaults to time.Now. One sample is
	// taken per token generation and shared between the timestamp prefix
	// and the cache-write instant.
	Clock func() time.Time

	// Auditor records security events (optional).
	Auditor *security.Auditor

	// Instrumentation provides OTEL metrics and tracing (optional).
	Instrumentation *instrumentation.Instrumentation
}

// Generator produces the configured tokens for units of work. It is
// stateless apart from the cache slots owned by the token specs and is
// safe for concurrent use.
type Generator struct {
	logger  *slog.Logger
	source  security.ByteSource
	clock   func() time.Time
	auditor *security.Auditor
	metrics *instrumentation.Metrics
	tracer  trace.Tracer
}

// New creates a Generator from cfg, applying defaults for absent
// collaborators.
func New(cfg Config) *Generator {
	g := &Generator{
		logger:  cfg.Logger,
		source:  cfg.Source,
		clock:   cfg.Clock,
		auditor: cfg.Auditor,
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.source == nil {
		g.source = security.CryptoSource{}
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if cfg.Instrumentation != nil {
		g.metrics = cfg.Instrumentation.Metrics()
		g.tracer = cfg.Instrumentation.Tracer("generator")
	}
	return g
}

// Generate produces one output per token spec in ec, in list order, for
// one unit of work. subject is the request subject (typically the URL
// path) checked against the context's URL filter; a non-matching subject
// yields no outputs and no side effects.
//
// A CSPRNG failure aborts only the affected spec's output (Err set);
// processing continues with the remaining specs. All other degradations
// (clamped config, missing signing key, disabled cache) still produce a
// usable token.
func (g *Generator) Generate(ctx context.Context, ec *Context, subject string) []Output {
	if ec == nil || len(ec.Tokens) == 0 {
		return nil
	}
	if ec.URLPattern != nil && !ec.URLPattern.MatchString(subject) {
		return nil
	}

	var span trace.Span
	if g.tracer != nil {
		ctx, span = g.tracer.Start(ctx, "tokenmint.generate")
		instrumentation.SetSpanAttributes(span,
			attribute.String(instrumentation.AttrSubject, subject),
			attribute.Int(instrumentation.AttrTokenCount, len(ec.Tokens)),
		)
		defer span.End()
	}

	outputs := make([]Output, 0, len(ec.Tokens))
	for _, spec := range ec.Tokens {
		outputs = append(outputs, g.generateOne(ctx, ec, spec, subject))
	}

	if span != nil {
		instrumentation.SetSpanSuccess(span)
	}
	return outputs
}

// generateOne runs the full pipeline for a single spec: resolve, cache
// read, byte generation, encoding, timestamp, metadata wrapping,
// prefix/suffix, cache write.
func (g *Generator) generateOne(ctx context.Context, ec *Context, spec *TokenSpec, subject string) Output {
	var span trace.Span
	if g.tracer != nil {
		ctx, span = g.tracer.Start(ctx, "tokenmint.generate_token")
		defer span.End()
	}

	started := g.clock()

	eff, warnings := Resolve(spec, ec)
	if len(warnings) > 0 {
		instrumentation.SetSpanAttributes(span,
			attribute.Int(instrumentation.AttrWarningCount, len(warnings)))
	}
	for _, w := range warnings {
		g.logger.Warn("token config adjusted at resolution",
			"token", w.Token,
			"field", w.Field,
			"configured", w.Configured,
			"effective", w.Effective,
			"reason", w.Reason,
		)
		g.metrics.RecordConfigClamp(ctx, w.Token, w.Field)
		g.auditor.LogConfigClamped(w.Token, w.Field, w.Configured, w.Effective)
	}

	out := Output{Name: eff.Name, Header: eff.Header}

	// Cache read. The slot mutex covers only the copy-out; generation
	// below happens outside any lock.
	if eff.TTL > 0 {
		if eff.slot == nil {
			g.logger.Debug("token spec has no cache slot, caching disabled",
				"token", eff.Name, "ttl", eff.TTL)
		} else if value, ok := eff.slot.Get(started, eff.TTL); ok {
			g.metrics.RecordCacheHit(ctx, eff.Name)
			g.metrics.RecordTokenGenerated(ctx, eff.Name, eff.Format.String(), true, g.sinceMs(started))
			g.auditor.LogTokenIssued(eff.Name, subject, value, true)
			instrumentation.AddGenerationAttributes(span, eff.Name, eff.Format.String(), eff.Length, true)
			instrumentation.SetSpanSuccess(span)
			out.Value = value
			out.Cached = true
			return out
		} else {
			g.metrics.RecordCacheMiss(ctx, eff.Name)
		}
	}

	raw, err := g.source.ReadBytes(eff.Length)
	if err != nil {
		// Never substitute predictable bytes; this token is not produced.
		g.logger.Error("CSPRNG failure, token not generated",
			"token", eff.Name, "error", err)
		g.metrics.RecordEntropyFailure(ctx)
		g.metrics.RecordTokenFailed(ctx, eff.Name, ErrorCodeEntropyUnavailable)
		g.auditor.LogEntropyFailure(eff.Name, subject, err)
		out.Err = NewTokenError(ErrorCodeEntropyUnavailable, eff.Name, err)
		instrumentation.RecordError(span, out.Err)
		return out
	}

	value := g.encodeBytes(raw, eff)

	if eff.Timestamp {
		value = strconv.FormatInt(started.Unix(), 10) + "-" + value
	}

	if eff.EncodeMetadata && eff.Expiry > 0 {
		if len(eff.SigningKey) == 0 {
			g.logger.Warn("metadata encoding without signing key, emitting unsigned token",
				"token", eff.Name)
			g.metrics.RecordSigningDowngrade(ctx, eff.Name)
			g.auditor.LogSigningDowngraded(eff.Name, "no signing key configured")
		}
		value = security.EncodeWithMetadata(value, eff.Expiry, eff.SigningKey, started)
	}

	if eff.Prefix != "" || eff.Suffix != "" {
		value = eff.Prefix + value + eff.Suffix
	}

	// Write-through with the same time sample used for the timestamp
	// prefix, so the cached instant and the embedded timestamp agree.
	if eff.TTL > 0 {
		eff.slot.Put(value, started)
	}

	g.metrics.RecordTokenGenerated(ctx, eff.Name, eff.Format.String(), false, g.sinceMs(started))
	g.auditor.LogTokenIssued(eff.Name, subject, value, false)
	instrumentation.AddGenerationAttributes(span, eff.Name, eff.Format.String(), eff.Length, false)
	instrumentation.SetSpanSuccess(span)

	out.Value = value
	return out
}

// encodeBytes applies the resolved output encoding.
func (g *Generator) encodeBytes(raw []byte, eff Effective) string {
	switch eff.Format {
	case FormatHex:
		return encode.Hex(raw)
	case FormatBase64URL:
		return encode.Base64URL(raw)
	case FormatCustom:
		return eff.Alphabet.Encode(raw, eff.Grouping)
	default:
		return encode.Base64(raw)
	}
}

func (g *Generator) sinceMs(started time.Time) float64 {
	return float64(g.clock().Sub(started)) / float64(time.Millisecond)
}
