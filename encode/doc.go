// Package encode provides the output encodings for generated token bytes:
// lowercase hex, standard base64, unpadded URL-safe base64, and a generic
// custom-alphabet codec that bit-packs the byte stream into an arbitrary
// symbol set with optional grouping separators.
//
// All encoders are pure functions of their inputs and handle zero-length
// input without error.
package encode
