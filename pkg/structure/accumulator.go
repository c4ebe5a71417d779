package structure

import (
	"strings"
	"unicode"
)

// State is the header context of an Accumulator
type State int

const (
	NoSection State = iota
	InSection
	InSubsection
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case InSection:
		return "in-section"
	case InSubsection:
		return "in-subsection"
	default:
		return "no-section"
	}
}

// Accumulator groups consecutive body lines into paragraphs. It is fed one
// page's lines in order; a header closes the open paragraph with the headers
// that were active before it.
type Accumulator struct {
	classifier *Classifier
	section    *string
	subSection *string
	buffer     []string
	paragraphs []Paragraph
	flushes    int
}

// NewAccumulator creates an accumulator. A nil classifier means DefaultRules.
func NewAccumulator(classifier *Classifier) *Accumulator {
	if classifier == nil {
		classifier = defaultClassifier
	}
	return &Accumulator{classifier: classifier}
}

// State reports the current header context
func (a *Accumulator) State() State {
	switch {
	case a.subSection != nil:
		return InSubsection
	case a.section != nil:
		return InSection
	default:
		return NoSection
	}
}

// Section returns the active section header, or nil
func (a *Accumulator) Section() *string {
	return a.section
}

// SubSection returns the active subsection header, or nil
func (a *Accumulator) SubSection() *string {
	return a.subSection
}

// Feed classifies one line and applies the transition
func (a *Accumulator) Feed(line string) LineKind {
	kind := a.classifier.Classify(line)
	switch kind {
	case SectionHeader:
		a.flush()
		a.section = StringPtr(line)
		a.subSection = nil
	case SubsectionHeader:
		a.flush()
		a.subSection = StringPtr(line)
	default:
		a.buffer = append(a.buffer, line+" ")
	}
	return kind
}

// Finish closes the open paragraph and returns every paragraph emitted since
// the last Reset
func (a *Accumulator) Finish() []Paragraph {
	a.flush()
	return a.paragraphs
}

// Flushes returns the number of flushes that emitted a paragraph
func (a *Accumulator) Flushes() int {
	return a.flushes
}

// Reset clears headers, the buffer and emitted paragraphs
func (a *Accumulator) Reset() {
	a.section = nil
	a.subSection = nil
	a.buffer = nil
	a.paragraphs = nil
	a.flushes = 0
}

func (a *Accumulator) flush() {
	if len(a.buffer) == 0 {
		return
	}
	text := strings.TrimFunc(strings.Join(a.buffer, ""), isSpace)
	a.buffer = a.buffer[:0]
	if text == "" {
		return
	}
	a.paragraphs = append(a.paragraphs, NewParagraph(a.section, a.subSection, text))
	a.flushes++
}

// isSpace matches the whitespace set of str.strip-style trimming, which adds
// the ASCII information separators to unicode.IsSpace
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Segment splits text on "\n" and runs every line through a fresh accumulator
// using DefaultRules
func Segment(text string) []Paragraph {
	return segment(defaultClassifier, text)
}

func segment(classifier *Classifier, text string) []Paragraph {
	acc := NewAccumulator(classifier)
	for _, line := range strings.Split(text, "\n") {
		acc.Feed(line)
	}
	return acc.Finish()
}
