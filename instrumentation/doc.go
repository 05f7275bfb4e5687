// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for
// the tokenmint library.
//
// It exposes metrics and traces for the token generation pipeline: how many
// tokens were generated or failed, cache hit rates, entropy failures, and
// configuration clamps.
//
// # Quick Start
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-service",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
// # Available Metrics
//
// Generation:
//   - tokenmint.tokens.generated.total{token, format, cached} - tokens produced
//   - tokenmint.tokens.failed.total{token, code} - tokens not produced
//   - tokenmint.generation.duration{token} - generation duration in milliseconds
//
// Cache:
//   - tokenmint.cache.hits.total{token} - TTL cache hits
//   - tokenmint.cache.misses.total{token} - TTL cache misses
//
// Security:
//   - tokenmint.entropy.failures.total - CSPRNG failures
//   - tokenmint.config.clamps.total{token, field} - configuration values clamped
//   - tokenmint.signing.downgrades.total{token} - metadata tokens emitted unsigned
//   - tokenmint.rate_limit.exceeded.total - throttled issuance requests
//
// # Security Considerations
//
// Traces and metrics must never carry token values, signing keys, or any
// other credential material. Only metadata (token names, formats, cache
// outcomes, durations) is recorded; observability data is typically
// persisted longer and visible to a wider audience than the tokens it
// describes.
//
// # Performance
//
// When disabled, the package installs no-op providers: no allocations, no
// latency impact. All operations are safe for concurrent use.
package instrumentation
