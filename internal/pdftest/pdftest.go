// Package pdftest builds minimal, valid PDF files for tests. Every page uses
// a single Helvetica font resource named /F1 and a 612x792 media box.
package pdftest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Text returns a content stream that shows each line at the given x, starting
// at y and moving down 20 points per line.
func Text(x, y float64, lines ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BT\n/F1 12 Tf\n%g %g Td\n", x, y)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("0 -20 Td\n")
		}
		fmt.Fprintf(&b, "(%s) Tj\n", Escape(line))
	}
	b.WriteString("ET\n")
	return b.String()
}

// TextAt returns a content stream showing s with its baseline at (x, y)
func TextAt(x, y float64, s string) string {
	return fmt.Sprintf("BT\n/F1 12 Tf\n%g %g Td\n(%s) Tj\nET\n", x, y, Escape(s))
}

// Rect returns a content stream stroking a rectangle
func Rect(x, y, w, h float64) string {
	return fmt.Sprintf("%g %g %g %g re S\n", x, y, w, h)
}

// Escape escapes the characters that are special in a PDF string literal
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	return strings.ReplaceAll(s, ")", `\)`)
}

// Build assembles a PDF with one page per content stream and a correct
// cross-reference table.
func Build(pages ...string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	n := len(pages)
	fontObj := 3
	// Objects: 1 catalog, 2 pages, 3 font, then a page and content pair per page
	total := 3 + 2*n
	offsets := make([]int, total+1)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), n)

	offsets[fontObj] = b.Len()
	fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n", fontObj)

	for i, content := range pages {
		pageObj, contentObj := 4+2*i, 5+2*i

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>\nendobj\n",
			pageObj, contentObj, fontObj)

		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(content), content)
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", total+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xrefOffset)

	return []byte(b.String())
}

// WriteFile writes a PDF built from pages into a temporary directory and
// returns its path.
func WriteFile(t testing.TB, name string, pages ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
