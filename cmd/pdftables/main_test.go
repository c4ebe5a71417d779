package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdf2json/internal/pdftest"
	"github.com/pyhub-apps/pdf2json/pkg/pdf"
)

func str(s string) *string { return &s }

func TestPrintTable_AlignsWideCharacters(t *testing.T) {
	table := pdf.Table{Rows: [][]*string{
		{str("名前"), str("Age")},
		{str("Ann"), nil},
	}}

	var buf bytes.Buffer
	printTable(&buf, table)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "    +------+------+", lines[0])
	assert.Equal(t, "    | 名前 | Age  |", lines[1])
	assert.Equal(t, "    | Ann  | null |", lines[3])
}

func TestColumnWidths_Clamped(t *testing.T) {
	table := pdf.Table{Rows: [][]*string{{str(""), str(strings.Repeat("x", 80))}}}

	assert.Equal(t, []int{minColumnWidth, maxColumnWidth}, columnWidths(table))
}

func TestPrintTable_Truncates(t *testing.T) {
	table := pdf.Table{Rows: [][]*string{{str(strings.Repeat("y", 40))}}}

	var buf bytes.Buffer
	printTable(&buf, table)

	assert.Contains(t, buf.String(), strings.Repeat("y", 27)+"...")
}

func TestReport(t *testing.T) {
	content := pdftest.Rect(100, 620, 100, 20) +
		pdftest.Rect(200, 620, 100, 20) +
		pdftest.TextAt(105, 625, "a") +
		pdftest.TextAt(205, 625, "b")
	path := pdftest.WriteFile(t, "table.pdf", content)

	doc, err := pdf.Open(path)
	require.NoError(t, err)
	defer doc.Close()

	var buf bytes.Buffer
	report(&buf, doc)

	out := buf.String()
	assert.Contains(t, out, "Document has 1 pages")
	assert.Contains(t, out, "=== Page 1 ===")
	assert.Contains(t, out, "Dimensions: 1 rows x 2 columns")
	assert.Contains(t, out, "| a   | b   |")
}

func TestCommand_RequiresOneArg(t *testing.T) {
	cmd := newCommand()
	cmd.SetArgs(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
