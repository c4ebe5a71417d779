package structure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Option configures a Builder
type Option func(*Builder)

// WithClassifier sets the classifier used to segment page text
func WithClassifier(c *Classifier) Option {
	return func(b *Builder) {
		if c != nil {
			b.classifier = c
		}
	}
}

// Builder assembles a document one page at a time, numbering pages from 1 in
// the order they are added
type Builder struct {
	classifier *Classifier
	doc        *Document
}

// NewBuilder creates a builder for an empty document
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		classifier: defaultClassifier,
		doc:        &Document{Pages: make([]Page, 0)},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddPage assembles src as the next page and returns it
func (b *Builder) AddPage(src PageSource) Page {
	page := assemblePage(b.classifier, len(b.doc.Pages)+1, src)
	b.doc.Pages = append(b.doc.Pages, page)
	return page
}

// Document returns the document built so far
func (b *Builder) Document() *Document {
	return b.doc
}

// Build assembles a document from pages in order
func Build(pages []PageSource, opts ...Option) *Document {
	b := NewBuilder(opts...)
	for _, src := range pages {
		b.AddPage(src)
	}
	return b.Document()
}

// Marshal renders the document as indented JSON with non-ASCII and HTML
// characters written literally and no trailing newline
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode writes the output of Marshal to w
func (d *Document) Encode(w io.Writer) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Stats summarizes a document
type Stats struct {
	Pages      int
	Paragraphs int
	Tables     int
}

// Stats counts the pages, paragraphs and tables of the document
func (d *Document) Stats() Stats {
	s := Stats{Pages: len(d.Pages)}
	for _, page := range d.Pages {
		for _, item := range page.Content {
			switch item.ContentType() {
			case ContentParagraph:
				s.Paragraphs++
			case ContentTable:
				s.Tables++
			}
		}
	}
	return s
}
