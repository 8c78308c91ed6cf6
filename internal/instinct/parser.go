package instinct

import (
	"errors"
	"strconv"
	"strings"
)

const delimiter = "---"

type parseMode int

const (
	// modeBody is also the initial mode: the first delimiter opens a record.
	modeBody parseMode = iota
	modeFrontmatter
)

// parser accumulates one record at a time.
type parser struct {
	mode    parseMode
	current *Instinct
	body    []string
	out     []Instinct
}

// Parse decodes text into instincts in encounter order.
//
// Records without an id are dropped. A non-numeric confidence value aborts
// the parse with a *ParseError.
func Parse(text string) ([]Instinct, error) {
	p := &parser{mode: modeBody}
	for i, line := range strings.Split(text, "\n") {
		if err := p.feed(i+1, line); err != nil {
			return nil, err
		}
	}
	p.finish()

	result := p.out[:0]
	for _, inst := range p.out {
		if inst.ID == "" {
			continue
		}
		result = append(result, inst)
	}
	return result, nil
}

func (p *parser) feed(lineNo int, line string) error {
	if strings.TrimSpace(line) == delimiter {
		p.toggle()
		return nil
	}
	switch p.mode {
	case modeFrontmatter:
		return p.field(lineNo, line)
	default:
		p.body = append(p.body, line)
	}
	return nil
}

// toggle applies the delimiter transition for the current mode.
func (p *parser) toggle() {
	switch p.mode {
	case modeFrontmatter:
		p.mode = modeBody
		p.body = p.body[:0]
	default:
		p.flush()
		p.current = &Instinct{}
		p.body = p.body[:0]
		p.mode = modeFrontmatter
	}
}

func (p *parser) field(lineNo int, line string) error {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	value = unquote(strings.TrimSpace(value))

	if key == KeyConfidence {
		// Out-of-range values keep the ±Inf or 0 ParseFloat returns.
		f, err := strconv.ParseFloat(value, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return &ParseError{Line: lineNo, Key: key, Value: value, Err: err}
		}
		p.current.Confidence = f
		p.current.HasConfidence = true
		return nil
	}
	p.current.setField(key, value)
	return nil
}

// flush closes out the record in progress, if any.
func (p *parser) flush() {
	if p.current == nil {
		return
	}
	p.current.Content = strings.TrimSpace(strings.Join(p.body, "\n"))
	p.out = append(p.out, *p.current)
	p.current = nil
}

func (p *parser) finish() {
	p.flush()
}

// unquote strips one layer of matching single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
