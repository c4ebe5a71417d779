package pdf2json

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdf2json/internal/pdftest"
)

func TestConvertFile(t *testing.T) {
	path := pdftest.WriteFile(t, "doc.pdf",
		pdftest.Text(72, 720, "INTRODUCTION", "This document has one section.")+
			pdftest.Rect(100, 500, 100, 20)+
			pdftest.Rect(200, 500, 100, 20)+
			pdftest.TextAt(105, 505, "k")+
			pdftest.TextAt(205, 505, "v"),
	)

	doc, err := ConvertFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	page := doc.Pages[0]
	assert.Equal(t, 1, page.PageNumber)

	paragraphs := page.Paragraphs()
	require.NotEmpty(t, paragraphs)
	assert.Equal(t, "INTRODUCTION", *paragraphs[0].Section)
	assert.Nil(t, paragraphs[0].SubSection)
	assert.True(t, strings.HasPrefix(paragraphs[0].Text, "This document has one section."))

	tables := page.Tables()
	require.Len(t, tables, 1)
	assert.Equal(t, 0, tables[0].TableNumber)
	require.Len(t, tables[0].Rows, 1)
	assert.Equal(t, "k", *tables[0].Rows[0][0])
	assert.Equal(t, "v", *tables[0].Rows[0][1])

	// Tables follow paragraphs
	last := page.Content[len(page.Content)-1]
	assert.Equal(t, Table{}.ContentType(), last.ContentType())
}

func TestConvertToFile(t *testing.T) {
	input := pdftest.WriteFile(t, "doc.pdf", pdftest.Text(72, 720, "Summary:", "All good."))
	output := filepath.Join(t.TempDir(), "doc.json")

	require.NoError(t, ConvertToFile(input, output, WithOpenOptions(WithBackend("dslipak"))))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"section": "Summary:"`)
	assert.Contains(t, string(data), `"text": "All good."`)
}

func TestConvertFile_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.pdf")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := ConvertFile(path)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestBuildFromSources(t *testing.T) {
	doc := Build([]PageSource{{Text: "SECTION ONE\n### Subsection A\nBody line."}})

	para := doc.Pages[0].Paragraphs()
	require.Len(t, para, 1)
	assert.Equal(t, "SECTION ONE", *para[0].Section)
	assert.Equal(t, "### Subsection A", *para[0].SubSection)
	assert.Equal(t, "Body line.", para[0].Text)
}
