package structure

// ContentType discriminates the items of a page's content list
type ContentType string

const (
	ContentParagraph ContentType = "paragraph"
	ContentTable     ContentType = "table"
)

// ContentItem is a paragraph or a table
type ContentItem interface {
	ContentType() ContentType
}

// Paragraph is a run of body lines tagged with the section and subsection
// headers active when it was closed. A nil header means none has been seen on
// the page yet.
type Paragraph struct {
	Type       ContentType `json:"type"`
	Section    *string     `json:"section"`
	SubSection *string     `json:"sub_section"`
	Text       string      `json:"text"`
}

// NewParagraph creates a paragraph item
func NewParagraph(section, subSection *string, text string) Paragraph {
	return Paragraph{
		Type:       ContentParagraph,
		Section:    section,
		SubSection: subSection,
		Text:       text,
	}
}

// ContentType implements ContentItem
func (Paragraph) ContentType() ContentType {
	return ContentParagraph
}

// RawTable is a grid of cells as reported by the PDF collaborator. A nil cell
// has no extractable value.
type RawTable [][]*string

// Table is a table item. TableNumber is the 0-based index of the table among
// the tables of its page.
type Table struct {
	Type        ContentType `json:"type"`
	TableNumber int         `json:"table_number"`
	Rows        RawTable    `json:"rows"`
}

// NewTable creates a table item
func NewTable(number int, rows RawTable) Table {
	if rows == nil {
		rows = RawTable{}
	}
	return Table{
		Type:        ContentTable,
		TableNumber: number,
		Rows:        rows,
	}
}

// ContentType implements ContentItem
func (Table) ContentType() ContentType {
	return ContentTable
}

// Page is the structured content of one page
type Page struct {
	PageNumber int           `json:"page_number"`
	Content    []ContentItem `json:"content"`
}

// Paragraphs returns the paragraph items of the page in order
func (p Page) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, item := range p.Content {
		if para, ok := item.(Paragraph); ok {
			out = append(out, para)
		}
	}
	return out
}

// Tables returns the table items of the page in order
func (p Page) Tables() []Table {
	var out []Table
	for _, item := range p.Content {
		if table, ok := item.(Table); ok {
			out = append(out, table)
		}
	}
	return out
}

// Document is the structured content of a whole PDF
type Document struct {
	Pages []Page `json:"pages"`
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
