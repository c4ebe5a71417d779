package pdf

// Document represents an opened PDF with its pages decoded in source order
type Document interface {
	// GetMetadata returns the PDF metadata
	GetMetadata() Metadata

	// GetPages returns all pages in the document
	GetPages() []Page

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Backend reports which parsing library decoded the document
	Backend() Backend

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width
	GetWidth() float64

	// GetHeight returns the page height
	GetHeight() float64

	// GetObjects returns the positioned objects on the page
	GetObjects() Objects

	// ExtractText renders the page text, one line per visual line.
	// An empty string means the page has no extractable text.
	ExtractText(opts ...TextExtractionOption) string

	// ExtractWords groups characters into words
	ExtractWords(opts ...TextExtractionOption) []Word

	// ExtractTables extracts tables from the page, top to bottom
	ExtractTables(opts ...TableExtractionOption) []Table
}
