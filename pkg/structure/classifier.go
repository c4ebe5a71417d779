// Package structure turns the plain text and raw tables of PDF pages into a
// document of sections, subsections, paragraphs and tables.
package structure

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// LineKind is the classification of a single line of page text
type LineKind int

const (
	BodyLine LineKind = iota
	SectionHeader
	SubsectionHeader
)

// String returns the name of the kind
func (k LineKind) String() string {
	switch k {
	case SectionHeader:
		return "section"
	case SubsectionHeader:
		return "subsection"
	default:
		return "body"
	}
}

// Rule maps lines matching a predicate to a kind
type Rule struct {
	Name  string
	Kind  LineKind
	Match func(line string) bool
}

// Rule precedences understood by RulesFor
const (
	PrecedenceDefault         = "default"
	PrecedenceSubsectionFirst = "subsection-first"
)

// whitespace is the set of runes Python-style "\s" accepts, wider than RE2's
const whitespace = `[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]`

var (
	headingPattern     = regexp.MustCompile(`^#+` + whitespace)
	deepHeadingPattern = regexp.MustCompile(`^###+` + whitespace)
)

// DefaultRules returns the rule list used by Classify:
//
//  1. "### heading" (three or more #, then whitespace) is a subsection
//  2. an upper-case line is a section
//  3. "# heading" (one or more #, then whitespace) is a section
//  4. a line shorter than 50 runes ending with ':' is a section
//
// Everything else is body text.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "deep-heading", Kind: SubsectionHeader, Match: IsDeepHeading},
		{Name: "upper-case", Kind: SectionHeader, Match: IsUpper},
		{Name: "heading", Kind: SectionHeader, Match: IsHeading},
		{Name: "short-label", Kind: SectionHeader, Match: IsShortLabel},
	}
}

// SubsectionFirstRules returns the rule list that checks every subsection
// rule before any section rule. Under it a short upper-case line is always a
// subsection, so documents without "###" headings never get a section from
// an upper-case line.
func SubsectionFirstRules() []Rule {
	return []Rule{
		{Name: "deep-heading", Kind: SubsectionHeader, Match: IsDeepHeading},
		{Name: "short-upper-case", Kind: SubsectionHeader, Match: func(line string) bool {
			return utf8.RuneCountInString(line) < 100 && IsUpper(line)
		}},
		{Name: "upper-case", Kind: SectionHeader, Match: IsUpper},
		{Name: "heading", Kind: SectionHeader, Match: IsHeading},
		{Name: "short-label", Kind: SectionHeader, Match: IsShortLabel},
	}
}

// RulesFor returns the rule list for a precedence name
func RulesFor(precedence string) ([]Rule, error) {
	switch precedence {
	case "", PrecedenceDefault:
		return DefaultRules(), nil
	case PrecedenceSubsectionFirst:
		return SubsectionFirstRules(), nil
	}
	return nil, fmt.Errorf("unknown rule precedence %q", precedence)
}

// Classifier assigns a LineKind to lines using an ordered rule list; the
// first matching rule wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier. Without rules it uses DefaultRules.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns a copy of the classifier's rules in evaluation order
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify returns the kind of the first rule matching line, or BodyLine
func (c *Classifier) Classify(line string) LineKind {
	kind, _ := c.match(line)
	return kind
}

// Explain returns the kind of line and the name of the rule that decided it.
// The name is empty for body lines.
func (c *Classifier) Explain(line string) (LineKind, string) {
	return c.match(line)
}

func (c *Classifier) match(line string) (LineKind, string) {
	for _, rule := range c.rules {
		if rule.Match(line) {
			return rule.Kind, rule.Name
		}
	}
	return BodyLine, ""
}

var defaultClassifier = NewClassifier()

// Classify classifies line with DefaultRules
func Classify(line string) LineKind {
	return defaultClassifier.Classify(line)
}

// IsUpper reports whether line has at least one cased rune and no lower-case
// or title-case runes. Digits, punctuation and uncased scripts are ignored.
func IsUpper(line string) bool {
	cased := false
	for _, r := range line {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r), unicode.Is(unicode.Other_Lowercase, r):
			return false
		case unicode.IsUpper(r), unicode.Is(unicode.Other_Uppercase, r):
			cased = true
		}
	}
	return cased
}

// IsHeading reports whether line starts with one or more '#' followed by whitespace
func IsHeading(line string) bool {
	return headingPattern.MatchString(line)
}

// IsDeepHeading reports whether line starts with three or more '#' followed by whitespace
func IsDeepHeading(line string) bool {
	return deepHeadingPattern.MatchString(line)
}

// IsShortLabel reports whether line is shorter than 50 runes and ends with ':'
func IsShortLabel(line string) bool {
	return utf8.RuneCountInString(line) < 50 && len(line) > 0 && line[len(line)-1] == ':'
}
