package tokenmint

// Merge combines a parent and child Context into a new Context. Neither
// input is modified; the result shares no token specs with either, so a
// child scope can never alias a parent's live cache slots.
//
// Fields the child explicitly set win; unset fields inherit from the
// parent. Token lists concatenate, parent's specs first, truncated at
// MaxTokens. Cache slots are never inherited: every spec in the merged
// context starts with an empty slot.
func Merge(parent, child *Context) *Context {
	if parent == nil {
		parent = &Context{}
	}
	if child == nil {
		child = &Context{}
	}

	merged := &Context{
		Length:    child.Length.or(parent.Length),
		Format:    child.Format.or(parent.Format),
		Timestamp: child.Timestamp.or(parent.Timestamp),
		Prefix:    child.Prefix.or(parent.Prefix),
		Suffix:    child.Suffix.or(parent.Suffix),
		TTL:       child.TTL.or(parent.TTL),

		Alphabet: child.Alphabet.or(parent.Alphabet),
		Grouping: child.Grouping.or(parent.Grouping),

		Expiry:         child.Expiry.or(parent.Expiry),
		EncodeMetadata: child.EncodeMetadata.or(parent.EncodeMetadata),
	}

	merged.SigningKey = child.SigningKey
	if merged.SigningKey == nil {
		merged.SigningKey = parent.SigningKey
	}

	merged.URLPattern = child.URLPattern
	if merged.URLPattern == nil {
		merged.URLPattern = parent.URLPattern
	}

	capacity := len(parent.Tokens) + len(child.Tokens)
	if capacity > MaxTokens {
		capacity = MaxTokens
	}
	merged.Tokens = make([]*TokenSpec, 0, capacity)

	for _, spec := range parent.Tokens {
		if len(merged.Tokens) >= MaxTokens {
			break
		}
		merged.Tokens = append(merged.Tokens, spec.clone())
	}
	for _, spec := range child.Tokens {
		if len(merged.Tokens) >= MaxTokens {
			break
		}
		merged.Tokens = append(merged.Tokens, spec.clone())
	}

	return merged
}
