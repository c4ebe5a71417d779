// Package convert runs the PDF to JSON pipeline: it decodes pages with
// pkg/pdf and structures their text and tables with pkg/structure.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pyhub-apps/pdf2json/internal/logger"
	"github.com/pyhub-apps/pdf2json/pkg/pdf"
	"github.com/pyhub-apps/pdf2json/pkg/structure"
)

// Option configures a Converter
type Option func(*Converter)

// Converter turns PDF documents into structured documents
type Converter struct {
	openOpts   []pdf.OpenOption
	textOpts   []pdf.TextExtractionOption
	tableOpts  []pdf.TableExtractionOption
	classifier *structure.Classifier
	logger     *slog.Logger
}

// WithOpenOptions sets the options passed to pdf.Open
func WithOpenOptions(opts ...pdf.OpenOption) Option {
	return func(c *Converter) {
		c.openOpts = opts
	}
}

// WithTextOptions sets the options used to extract page text
func WithTextOptions(opts ...pdf.TextExtractionOption) Option {
	return func(c *Converter) {
		c.textOpts = opts
	}
}

// WithTableOptions sets the options used to extract tables
func WithTableOptions(opts ...pdf.TableExtractionOption) Option {
	return func(c *Converter) {
		c.tableOpts = opts
	}
}

// WithClassifier sets the line classifier
func WithClassifier(classifier *structure.Classifier) Option {
	return func(c *Converter) {
		c.classifier = classifier
	}
}

// WithLogger sets the logger for progress records
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// New creates a converter. By default it uses the backend fallback chain,
// default extraction settings and discards logs.
func New(opts ...Option) *Converter {
	c := &Converter{
		classifier: structure.NewClassifier(),
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert structures every page of an opened document in order
func (c *Converter) Convert(doc pdf.Document) *structure.Document {
	b := structure.NewBuilder(structure.WithClassifier(c.classifier))

	for _, page := range doc.GetPages() {
		src := structure.PageSource{Text: page.ExtractText(c.textOpts...)}
		for _, table := range page.ExtractTables(c.tableOpts...) {
			src.Tables = append(src.Tables, structure.RawTable(table.Rows))
		}

		out := b.AddPage(src)
		c.logger.Debug("page processed",
			"page", out.PageNumber,
			"paragraphs", len(out.Paragraphs()),
			"tables", len(src.Tables),
		)
	}

	return b.Document()
}

// ConvertFile opens the PDF at path, converts it and closes it
func (c *Converter) ConvertFile(path string) (*structure.Document, error) {
	doc, err := pdf.Open(path, c.openOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer doc.Close()

	c.logger.Debug("document opened", "path", path, "backend", doc.Backend(), "pages", doc.PageCount())
	c.logMetadata(path)

	return c.Convert(doc), nil
}

// ConvertToFile converts the PDF at input and writes its JSON to output,
// replacing any existing file
func (c *Converter) ConvertToFile(input, output string) (*structure.Document, error) {
	doc, err := c.ConvertFile(input)
	if err != nil {
		return nil, err
	}

	data, err := doc.Marshal()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	stats := doc.Stats()
	c.logger.Info("document converted",
		"output", output,
		"pages", stats.Pages,
		"paragraphs", stats.Paragraphs,
		"tables", stats.Tables,
	)
	return doc, nil
}

// logMetadata reports the info dictionary at debug level. Inspection errors
// are logged and otherwise ignored.
func (c *Converter) logMetadata(path string) {
	if !c.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	meta, err := pdf.Inspect(path, c.password())
	if err != nil {
		c.logger.Debug("metadata unavailable", "error", err)
		return
	}
	c.logger.Debug("document metadata",
		"title", meta.Title,
		"author", meta.Author,
		"producer", meta.Producer,
		"pages", meta.PageCount,
	)
}

func (c *Converter) password() string {
	return pdf.OpenPassword(c.openOpts...)
}
