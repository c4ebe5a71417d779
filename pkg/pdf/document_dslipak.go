package pdf

import (
	"fmt"

	gopdf "github.com/dslipak/pdf"
)

// DsliPakDocument implements the Document interface using dslipak/pdf library
type DsliPakDocument struct {
	reader   *gopdf.Reader
	filepath string
	pages    []Page
	metadata Metadata
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library.
// dslipak does not support encrypted files, so a password is rejected.
func OpenWithDslipak(filepath string, password string) (_ Document, err error) {
	defer recoverDecode(BackendDslipak, &err)

	if password != "" {
		return nil, fmt.Errorf("%w: dslipak: encrypted documents are not supported", ErrDecode)
	}

	r, err := gopdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("%w: dslipak: %v", ErrDecode, err)
	}

	doc := &DsliPakDocument{
		reader:   r,
		filepath: filepath,
	}

	if err := doc.initializePages(); err != nil {
		return nil, fmt.Errorf("%w: dslipak: %v", ErrDecode, err)
	}
	doc.metadata = Metadata{PageCount: len(doc.pages)}

	return doc, nil
}

// initializePages decodes all pages in the document
func (d *DsliPakDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := newDsliPakPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// GetMetadata returns the PDF metadata
func (d *DsliPakDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPages returns all pages in the document
func (d *DsliPakDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *DsliPakDocument) GetPage(index int) (Page, error) {
	return pageAt(d.pages, index)
}

// PageCount returns the total number of pages
func (d *DsliPakDocument) PageCount() int {
	return len(d.pages)
}

// Backend reports the decoding library
func (d *DsliPakDocument) Backend() Backend {
	return BackendDslipak
}

// Close drops the reader; dslipak owns no closable handle
func (d *DsliPakDocument) Close() error {
	d.reader = nil
	d.pages = nil
	return nil
}

func newDsliPakPage(reader *gopdf.Reader, pageNumber int) (page *objectPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("panic while decoding page: %v", r)
		}
	}()

	p := reader.Page(pageNumber)
	page = &objectPage{pageNumber: pageNumber, width: 612, height: 792}
	if p.V.IsNull() {
		return page, nil
	}

	mediaBox := p.V.Key("MediaBox")
	if mediaBox.Kind() == gopdf.Array && mediaBox.Len() == 4 {
		page.width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		page.height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	content := p.Content()
	runs := make([]textRun, len(content.Text))
	for i, t := range content.Text {
		runs[i] = textRun{Font: t.Font, FontSize: t.FontSize, X: t.X, Y: t.Y, W: t.W, S: t.S}
	}
	page.objects.Chars = charsFromRuns(runs, page.height)
	for _, r := range content.Rect {
		page.objects.Rects = append(page.objects.Rects,
			rectFromCorners(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, page.height))
	}

	return page, nil
}
