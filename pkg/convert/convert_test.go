package convert

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdf2json/internal/logger"
	"github.com/pyhub-apps/pdf2json/internal/pdftest"
	"github.com/pyhub-apps/pdf2json/pkg/pdf"
	"github.com/pyhub-apps/pdf2json/pkg/structure"
)

type fakePage struct {
	number int
	text   string
	tables []pdf.Table
}

func (p *fakePage) GetPageNumber() int                                 { return p.number }
func (p *fakePage) GetWidth() float64                                  { return 612 }
func (p *fakePage) GetHeight() float64                                 { return 792 }
func (p *fakePage) GetObjects() pdf.Objects                            { return pdf.Objects{} }
func (p *fakePage) ExtractText(...pdf.TextExtractionOption) string     { return p.text }
func (p *fakePage) ExtractWords(...pdf.TextExtractionOption) []pdf.Word { return nil }
func (p *fakePage) ExtractTables(...pdf.TableExtractionOption) []pdf.Table {
	return p.tables
}

type fakeDocument struct {
	pages  []pdf.Page
	closed bool
}

func (d *fakeDocument) GetMetadata() pdf.Metadata { return pdf.Metadata{PageCount: len(d.pages)} }
func (d *fakeDocument) GetPages() []pdf.Page      { return d.pages }
func (d *fakeDocument) GetPage(i int) (pdf.Page, error) {
	return d.pages[i], nil
}
func (d *fakeDocument) PageCount() int       { return len(d.pages) }
func (d *fakeDocument) Backend() pdf.Backend { return "fake" }
func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

func str(s string) *string { return &s }

func TestConvert_TableOnlyPage(t *testing.T) {
	rows := [][]*string{{str("a"), str("b")}, {str("c"), str("d")}}
	doc := &fakeDocument{pages: []pdf.Page{&fakePage{number: 1, tables: []pdf.Table{{Rows: rows}}}}}

	out := New().Convert(doc)

	require.Len(t, out.Pages, 1)
	require.Len(t, out.Pages[0].Content, 1)
	assert.Equal(t, structure.NewTable(0, rows), out.Pages[0].Content[0])
}

func TestConvert_PagesInOrder(t *testing.T) {
	doc := &fakeDocument{pages: []pdf.Page{
		&fakePage{number: 1, text: "INTRO\nfirst page"},
		&fakePage{number: 2},
		&fakePage{number: 3, text: "Notes:\nthird page", tables: []pdf.Table{{Rows: [][]*string{{nil}}}}},
	}}

	var logs bytes.Buffer
	out := New(WithLogger(logger.New(&logs, true))).Convert(doc)

	require.Len(t, out.Pages, 3)
	assert.Equal(t, structure.Stats{Pages: 3, Paragraphs: 2, Tables: 1}, out.Stats())
	assert.Equal(t, "INTRO", *out.Pages[0].Paragraphs()[0].Section)
	assert.Empty(t, out.Pages[1].Content)
	assert.Contains(t, logs.String(), "page=3 paragraphs=1 tables=1")
}

func TestConvert_Classifier(t *testing.T) {
	doc := &fakeDocument{pages: []pdf.Page{&fakePage{number: 1, text: "SECTION ONE\nbody"}}}

	out := New(WithClassifier(structure.NewClassifier(structure.SubsectionFirstRules()...))).Convert(doc)

	para := out.Pages[0].Paragraphs()
	require.Len(t, para, 1)
	assert.Equal(t, "SECTION ONE", *para[0].SubSection)
}

func TestConvertToFile(t *testing.T) {
	input := pdftest.WriteFile(t, "in.pdf", pdftest.Text(72, 720, "SUMMARY", "Revenue grew this year."))
	output := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(output, []byte("stale content that is longer than nothing"), 0o644))

	var logs bytes.Buffer
	doc, err := New(WithLogger(logger.New(&logs, true))).ConvertToFile(input, output)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	want, err := doc.Marshal()
	require.NoError(t, err)
	assert.Equal(t, want, data)
	assert.Contains(t, string(data), `"section": "SUMMARY"`)
	assert.Contains(t, string(data), `"text": "Revenue grew this year."`)
	assert.Contains(t, logs.String(), "document opened")
	assert.Contains(t, logs.String(), "document converted")
}

func TestConvertToFile_Idempotent(t *testing.T) {
	input := pdftest.WriteFile(t, "in.pdf", pdftest.Text(72, 720, "HEADER", "body"))
	dir := t.TempDir()

	c := New()
	_, err := c.ConvertToFile(input, filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	_, err = c.ConvertToFile(input, filepath.Join(dir, "b.json"))
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "b.json"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConvertFile_DecodeError(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4 garbage"), 0o644))

	_, err := New().ConvertFile(input)
	require.Error(t, err)
	assert.ErrorIs(t, err, pdf.ErrDecode)
}

func TestConvertToFile_WriteError(t *testing.T) {
	input := pdftest.WriteFile(t, "in.pdf", pdftest.Text(72, 720, "x"))
	output := filepath.Join(t.TempDir(), "missing-dir", "out.json")

	_, err := New().ConvertToFile(input, output)
	require.Error(t, err)
	assert.NotErrorIs(t, err, pdf.ErrDecode)
	assert.Contains(t, err.Error(), "failed to write output")
}

func TestConvertFile_ForcedBackend(t *testing.T) {
	input := pdftest.WriteFile(t, "in.pdf", pdftest.Text(72, 720, "Hello World"))

	doc, err := New(WithOpenOptions(pdf.WithBackend(pdf.BackendPDFCPU))).ConvertFile(input)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "Hello World", doc.Pages[0].Paragraphs()[0].Text)
}
