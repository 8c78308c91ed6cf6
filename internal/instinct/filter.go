package instinct

// Filter selects instincts. Zero-valued criteria match everything.
type Filter struct {
	// Domain matches EffectiveDomain exactly when non-empty.
	Domain string
	// MinConfidence, when non-nil, keeps records whose EffectiveConfidence
	// is at least the value.
	MinConfidence *float64
}

// Match reports whether inst satisfies every set criterion.
func (f Filter) Match(inst Instinct) bool {
	if f.Domain != "" && inst.EffectiveDomain() != f.Domain {
		return false
	}
	if f.MinConfidence != nil && inst.EffectiveConfidence() < *f.MinConfidence {
		return false
	}
	return true
}

// Apply returns the matching instincts in their original order.
func (f Filter) Apply(instincts []Instinct) []Instinct {
	out := make([]Instinct, 0, len(instincts))
	for _, inst := range instincts {
		if f.Match(inst) {
			out = append(out, inst)
		}
	}
	return out
}
