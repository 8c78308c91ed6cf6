package instinct

import (
	"strconv"
	"strings"
)

// fieldOrder is the fixed order Render emits recognized keys in.
var fieldOrder = []string{KeyID, KeyTrigger, KeyConfidence, KeyDomain, KeySource, KeySourceRepo}

// Render serializes instincts to the delimited text format. Only fields set
// on a record are written; trigger is always quoted. Extra keys and
// provenance are not written.
func Render(instincts []Instinct) string {
	return RenderWith(instincts)
}

// RenderWith is Render plus the named Extra keys, written quoted after the
// standard fields for records that carry them.
func RenderWith(instincts []Instinct, extraKeys ...string) string {
	var b strings.Builder
	for _, inst := range instincts {
		writeRecord(&b, inst, extraKeys)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, inst Instinct, extraKeys []string) {
	b.WriteString(delimiter)
	b.WriteByte('\n')
	for _, key := range fieldOrder {
		if key == KeyConfidence {
			if inst.HasConfidence {
				b.WriteString(key)
				b.WriteString(": ")
				b.WriteString(FormatConfidence(inst.Confidence))
				b.WriteByte('\n')
			}
			continue
		}
		value, ok := inst.Field(key)
		if !ok {
			continue
		}
		b.WriteString(key)
		b.WriteString(": ")
		if key == KeyTrigger {
			b.WriteByte('"')
			b.WriteString(value)
			b.WriteByte('"')
		} else {
			b.WriteString(value)
		}
		b.WriteByte('\n')
	}
	for _, key := range extraKeys {
		if value, ok := inst.Extra[key]; ok {
			b.WriteString(key)
			b.WriteString(`: "`)
			b.WriteString(value)
			b.WriteString("\"\n")
		}
	}
	b.WriteString(delimiter)
	b.WriteString("\n\n")
	b.WriteString(inst.Content)
	b.WriteString("\n\n")
}

// FormatConfidence renders a confidence value the way Parse reads it back.
func FormatConfidence(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
