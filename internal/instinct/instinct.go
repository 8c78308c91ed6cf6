package instinct

const (
	// DefaultTrigger is reported for records without a trigger field.
	DefaultTrigger = "unknown trigger"
	// DefaultConfidence is used for records without a confidence field.
	DefaultConfidence = 0.5
	// DefaultDomain is reported for records without a domain field.
	DefaultDomain = "general"
)

// Recognized frontmatter keys.
const (
	KeyID         = "id"
	KeyTrigger    = "trigger"
	KeyConfidence = "confidence"
	KeyDomain     = "domain"
	KeySource     = "source"
	KeySourceRepo = "source_repo"
	// KeyImportedFrom records the location an imported record was read
	// from. It is kept in Extra.
	KeyImportedFrom = "imported_from"
)

// Instinct is a single parsed record.
//
// String fields are empty when the key was absent. Confidence is only
// meaningful when HasConfidence is set; use EffectiveConfidence for the
// defaulted value.
type Instinct struct {
	ID            string            `json:"id"`
	Trigger       string            `json:"trigger,omitempty"`
	Confidence    float64           `json:"confidence"`
	HasConfidence bool              `json:"confidence_set"`
	Domain        string            `json:"domain,omitempty"`
	Source        string            `json:"source,omitempty"`
	SourceRepo    string            `json:"source_repo,omitempty"`
	Content       string            `json:"content,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`

	// Provenance attached by the collection loader. Never serialized.
	SourceFile string `json:"source_file,omitempty"`
	SourceType string `json:"source_type,omitempty"`
}

// New returns an instinct with an id and an explicit confidence.
func New(id string, confidence float64) Instinct {
	return Instinct{ID: id, Confidence: confidence, HasConfidence: true}
}

// WithConfidence returns a copy of inst with confidence set.
func (inst Instinct) WithConfidence(value float64) Instinct {
	inst.Confidence = value
	inst.HasConfidence = true
	return inst
}

// EffectiveConfidence returns the record confidence or DefaultConfidence.
func (inst Instinct) EffectiveConfidence() float64 {
	if !inst.HasConfidence {
		return DefaultConfidence
	}
	return inst.Confidence
}

// EffectiveTrigger returns the trigger or DefaultTrigger.
func (inst Instinct) EffectiveTrigger() string {
	if inst.Trigger == "" {
		return DefaultTrigger
	}
	return inst.Trigger
}

// EffectiveDomain returns the domain or DefaultDomain.
func (inst Instinct) EffectiveDomain() string {
	if inst.Domain == "" {
		return DefaultDomain
	}
	return inst.Domain
}

// Field returns the string value stored under key and whether it is set.
// Confidence is not reported here; it is numeric.
func (inst Instinct) Field(key string) (string, bool) {
	var value string
	switch key {
	case KeyID:
		value = inst.ID
	case KeyTrigger:
		value = inst.Trigger
	case KeyDomain:
		value = inst.Domain
	case KeySource:
		value = inst.Source
	case KeySourceRepo:
		value = inst.SourceRepo
	default:
		v, ok := inst.Extra[key]
		return v, ok
	}
	return value, value != ""
}

func (inst *Instinct) setField(key, value string) {
	switch key {
	case KeyID:
		inst.ID = value
	case KeyTrigger:
		inst.Trigger = value
	case KeyDomain:
		inst.Domain = value
	case KeySource:
		inst.Source = value
	case KeySourceRepo:
		inst.SourceRepo = value
	default:
		if inst.Extra == nil {
			inst.Extra = make(map[string]string)
		}
		inst.Extra[key] = value
	}
}
