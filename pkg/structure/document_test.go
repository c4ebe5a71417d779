package structure

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cells(values ...any) []*string {
	row := make([]*string, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			row[i] = StringPtr(s)
		}
	}
	return row
}

func TestAssemblePage_TableOnly(t *testing.T) {
	rows := RawTable{cells("a", "b"), cells("c", "d")}

	page := AssemblePage(1, PageSource{Tables: []RawTable{rows}})

	require.Len(t, page.Content, 1)
	assert.Equal(t, NewTable(0, rows), page.Content[0])
}

func TestAssemblePage_ParagraphsBeforeTables(t *testing.T) {
	first := RawTable{cells("x")}
	second := RawTable{cells("y", nil)}

	page := AssemblePage(3, PageSource{
		Text:   "SUMMARY\nalpha\n### Detail\nbeta",
		Tables: []RawTable{first, second},
	})

	assert.Equal(t, 3, page.PageNumber)
	require.Len(t, page.Content, 4)
	assert.Equal(t, ContentParagraph, page.Content[0].ContentType())
	assert.Equal(t, ContentParagraph, page.Content[1].ContentType())

	tables := page.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, 0, tables[0].TableNumber)
	assert.Equal(t, 1, tables[1].TableNumber)
	// Rows pass through unchanged
	assert.Same(t, second[0][0], tables[1].Rows[0][0])
	assert.Nil(t, tables[1].Rows[0][1])
	assert.Len(t, page.Paragraphs(), 2)
}

func TestAssemblePage_Empty(t *testing.T) {
	page := AssemblePage(1, PageSource{})

	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
}

func TestBuild_NumbersPages(t *testing.T) {
	doc := Build([]PageSource{{Text: "one"}, {}, {Text: "three"}})

	require.Len(t, doc.Pages, 3)
	for i, page := range doc.Pages {
		assert.Equal(t, i+1, page.PageNumber)
	}
	assert.Equal(t, Stats{Pages: 3, Paragraphs: 2}, doc.Stats())
}

func TestBuilder_Classifier(t *testing.T) {
	b := NewBuilder(WithClassifier(NewClassifier(SubsectionFirstRules()...)))
	page := b.AddPage(PageSource{Text: "SECTION ONE\nbody"})

	require.Len(t, page.Paragraphs(), 1)
	assert.Nil(t, page.Paragraphs()[0].Section)
	assert.Same(t, b.Document(), b.Document())
	assert.Len(t, b.Document().Pages, 1)
}

func TestMarshal_SectionParagraph(t *testing.T) {
	doc := Build([]PageSource{{Text: "SECTION ONE\nSome body text here.\nMore body text."}})

	data, err := doc.Marshal()
	require.NoError(t, err)

	want := `{
  "pages": [
    {
      "page_number": 1,
      "content": [
        {
          "type": "paragraph",
          "section": "SECTION ONE",
          "sub_section": null,
          "text": "Some body text here. More body text."
        }
      ]
    }
  ]
}`
	assert.Equal(t, want, string(data))
}

func TestMarshal_Table(t *testing.T) {
	doc := Build([]PageSource{{Tables: []RawTable{{cells("a", nil)}}}})

	data, err := doc.Marshal()
	require.NoError(t, err)

	want := `{
  "pages": [
    {
      "page_number": 1,
      "content": [
        {
          "type": "table",
          "table_number": 0,
          "rows": [
            [
              "a",
              null
            ]
          ]
        }
      ]
    }
  ]
}`
	assert.Equal(t, want, string(data))
}

func TestMarshal_EmptyContentIsArray(t *testing.T) {
	data, err := Build([]PageSource{{}}).Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content": []`)

	data, err = Build(nil).Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"pages\": []\n}", string(data))
}

func TestMarshal_LiteralCharacters(t *testing.T) {
	doc := Build([]PageSource{{Text: "Größe <b> & café 日本語"}})

	data, err := doc.Marshal()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"text": "Größe <b> & café 日本語"`)
	assert.False(t, bytes.HasSuffix(data, []byte("\n")))
}

func TestMarshal_Idempotent(t *testing.T) {
	pages := []PageSource{
		{Text: "INTRO\nhello\n### Part\nworld", Tables: []RawTable{{cells("1", "2")}}},
		{Text: "Notes:\nend"},
	}

	first, err := Build(pages).Marshal()
	require.NoError(t, err)
	second, err := Build(pages).Marshal()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMarshal_ValidJSON(t *testing.T) {
	doc := Build([]PageSource{{Text: "SECTION\n\"quoted\"\ttab", Tables: []RawTable{{cells("a")}}}})

	data, err := doc.Marshal()
	require.NoError(t, err)

	var decoded struct {
		Pages []struct {
			PageNumber int              `json:"page_number"`
			Content    []map[string]any `json:"content"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Pages, 1)
	require.Len(t, decoded.Pages[0].Content, 2)
	assert.Equal(t, "paragraph", decoded.Pages[0].Content[0]["type"])
	assert.Equal(t, "\"quoted\"\ttab", decoded.Pages[0].Content[0]["text"])
	assert.Equal(t, "table", decoded.Pages[0].Content[1]["type"])
}

func TestEncode(t *testing.T) {
	doc := Build([]PageSource{{Text: "x"}})

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.Equal(t, data, buf.Bytes())
}
