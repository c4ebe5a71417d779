package pdf

import (
	"fmt"
	"io"
	"os"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucDocument implements the Document interface using ledongthuc/pdf library
type LedongthucDocument struct {
	file     io.Closer
	reader   *lpdf.Reader
	filepath string
	pages    []Page
	metadata Metadata
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library.
// It gives the most accurate glyph positions of the three backends.
func OpenWithLedongthuc(filepath string, password string) (_ Document, err error) {
	defer recoverDecode(BackendLedongthuc, &err)

	f, r, err := openLedongthuc(filepath, password)
	if err != nil {
		return nil, fmt.Errorf("%w: ledongthuc: %v", ErrDecode, err)
	}

	doc := &LedongthucDocument{
		file:     f,
		reader:   r,
		filepath: filepath,
	}

	if err := doc.initializePages(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: ledongthuc: %v", ErrDecode, err)
	}
	doc.metadata = Metadata{PageCount: len(doc.pages)}

	return doc, nil
}

func openLedongthuc(filepath, password string) (*os.File, *lpdf.Reader, error) {
	if password == "" {
		return lpdf.Open(filepath)
	}

	f, err := os.Open(filepath)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	r, err := lpdf.NewReaderEncrypted(f, fi.Size(), onePassword(password))
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, r, nil
}

// onePassword offers the password once; the reader stops asking on "".
func onePassword(password string) func() string {
	tried := false
	return func() string {
		if tried {
			return ""
		}
		tried = true
		return password
	}
}

// initializePages decodes all pages in the document
func (d *LedongthucDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := newLedongthucPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// GetMetadata returns the PDF metadata
func (d *LedongthucDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPages returns all pages in the document
func (d *LedongthucDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *LedongthucDocument) GetPage(index int) (Page, error) {
	return pageAt(d.pages, index)
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	return len(d.pages)
}

// Backend reports the decoding library
func (d *LedongthucDocument) Backend() Backend {
	return BackendLedongthuc
}

// Close releases the underlying file
func (d *LedongthucDocument) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// newLedongthucPage decodes one page. The library panics on some malformed
// content streams, so decoding runs under recover.
func newLedongthucPage(reader *lpdf.Reader, pageNumber int) (page *objectPage, err error) {
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
	if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
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
