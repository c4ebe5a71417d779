package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPUDocument implements the Document interface using pdfcpu. pdfcpu has
// no glyph positioning, so its pages carry text lines but no objects and
// therefore never yield tables.
type PDFCPUDocument struct {
	ctx      *model.Context
	filepath string
	pages    []Page
	metadata Metadata
}

// OpenWithPDFCPU opens a PDF file using pdfcpu
func OpenWithPDFCPU(filepath string, password string) (_ Document, err error) {
	defer recoverDecode(BackendPDFCPU, &err)

	ctx, err := readPDFCPUContext(filepath, password)
	if err != nil {
		return nil, err
	}

	doc := &PDFCPUDocument{
		ctx:      ctx,
		filepath: filepath,
		metadata: pdfcpuMetadata(ctx),
	}

	if err := doc.initializePages(); err != nil {
		return nil, fmt.Errorf("%w: pdfcpu: %v", ErrDecode, err)
	}

	return doc, nil
}

// initializePages initializes all pages in the document
func (d *PDFCPUDocument) initializePages() error {
	d.pages = make([]Page, d.ctx.PageCount)

	for i := 1; i <= d.ctx.PageCount; i++ {
		page, err := newPDFCPUPage(d.ctx, i)
		if err != nil {
			return fmt.Errorf("failed to create page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// GetMetadata returns the PDF metadata
func (d *PDFCPUDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPages returns all pages in the document
func (d *PDFCPUDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *PDFCPUDocument) GetPage(index int) (Page, error) {
	return pageAt(d.pages, index)
}

// PageCount returns the total number of pages
func (d *PDFCPUDocument) PageCount() int {
	return len(d.pages)
}

// Backend reports the decoding library
func (d *PDFCPUDocument) Backend() Backend {
	return BackendPDFCPU
}

// Close releases resources associated with the document
func (d *PDFCPUDocument) Close() error {
	d.ctx = nil
	d.pages = nil
	return nil
}

// PDFCPUPage implements the Page interface using pdfcpu
type PDFCPUPage struct {
	pageNumber int
	width      float64
	height     float64
	lines      []string
}

func newPDFCPUPage(ctx *model.Context, pageNumber int) (*PDFCPUPage, error) {
	page := &PDFCPUPage{
		pageNumber: pageNumber,
		width:      612,
		height:     792,
	}

	_, _, attrs, err := ctx.PageDict(pageNumber, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dict: %w", err)
	}
	if attrs != nil && attrs.MediaBox != nil {
		page.width = attrs.MediaBox.Width()
		page.height = attrs.MediaBox.Height()
	}

	r, err := pdfcpu.ExtractPageContent(ctx, pageNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}
	if r == nil {
		return page, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	page.lines = streamTextLines(data)

	return page, nil
}

// GetPageNumber returns the page number (1-based)
func (p *PDFCPUPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *PDFCPUPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *PDFCPUPage) GetHeight() float64 {
	return p.height
}

// GetObjects returns no objects; pdfcpu content is not positioned
func (p *PDFCPUPage) GetObjects() Objects {
	return Objects{}
}

// ExtractText returns the text lines found in the content stream
func (p *PDFCPUPage) ExtractText(opts ...TextExtractionOption) string {
	config := newTextExtractionConfig(opts...)
	return config.normalize(strings.Join(p.lines, "\n"))
}

// ExtractWords splits the content stream lines on whitespace. Words carry no
// coordinates.
func (p *PDFCPUPage) ExtractWords(opts ...TextExtractionOption) []Word {
	var words []Word
	for _, line := range p.lines {
		for _, field := range strings.Fields(line) {
			words = append(words, Word{Text: field})
		}
	}
	return words
}

// ExtractTables returns no tables
func (p *PDFCPUPage) ExtractTables(opts ...TableExtractionOption) []Table {
	return nil
}
