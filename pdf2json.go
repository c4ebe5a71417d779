// Package pdf2json converts PDF documents into JSON: page text is split into
// paragraphs tagged with their section and subsection headers, and tables are
// extracted as grids of cells.
package pdf2json

import (
	"github.com/pyhub-apps/pdf2json/pkg/convert"
	"github.com/pyhub-apps/pdf2json/pkg/pdf"
	"github.com/pyhub-apps/pdf2json/pkg/structure"
)

// Re-export types for the public API
type (
	Document    = structure.Document
	Page        = structure.Page
	ContentItem = structure.ContentItem
	Paragraph   = structure.Paragraph
	Table       = structure.Table
	PageSource  = structure.PageSource
	RawTable    = structure.RawTable
	Classifier  = structure.Classifier
	LineKind    = structure.LineKind
	Option      = convert.Option
)

// Re-export constructors and options
var (
	Build          = structure.Build
	Classify       = structure.Classify
	Segment        = structure.Segment
	NewClassifier  = structure.NewClassifier
	WithBackend    = pdf.WithBackend
	WithPassword   = pdf.WithPassword
	WithClassifier = convert.WithClassifier
	WithLogger     = convert.WithLogger
)

// ErrDecode is wrapped by errors caused by an unreadable or corrupt PDF
var ErrDecode = pdf.ErrDecode

// ConvertFile reads the PDF at path and returns its structured document
func ConvertFile(path string, opts ...Option) (*Document, error) {
	return convert.New(opts...).ConvertFile(path)
}

// ConvertToFile converts the PDF at input and writes indented JSON to output
func ConvertToFile(input, output string, opts ...Option) error {
	_, err := convert.New(opts...).ConvertToFile(input, output)
	return err
}

// WithOpenOptions sets the pdf.Open options, such as WithBackend and WithPassword
func WithOpenOptions(opts ...pdf.OpenOption) Option {
	return convert.WithOpenOptions(opts...)
}
