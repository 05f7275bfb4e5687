// Package testutil provides testing utilities, mock implementations, and test fixtures
// for the tokenmint library. It includes deterministic byte sources, assertions,
// and mock time providers for deterministic testing.
package testutil
