package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pyhub-apps/pdf2json/pkg/pdf"
)

const (
	minColumnWidth = 3
	maxColumnWidth = 30
)

// nullCell marks a cell with no extractable value
const nullCell = "null"

func cellText(cell *string) string {
	if cell == nil {
		return nullCell
	}
	return strings.ReplaceAll(strings.TrimSpace(*cell), "\n", " ")
}

// columnWidths returns the display width of every column, clamped for readability
func columnWidths(table pdf.Table) []int {
	widths := make([]int, table.Columns())
	for _, row := range table.Rows {
		for j, cell := range row {
			widths[j] = max(widths[j], runewidth.StringWidth(cellText(cell)))
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], minColumnWidth), maxColumnWidth)
	}
	return widths
}

// printTable writes the table as a grid. Widths are measured in terminal
// cells so wide characters stay aligned.
func printTable(w io.Writer, table pdf.Table) {
	if len(table.Rows) == 0 {
		return
	}

	widths := columnWidths(table)
	printSeparator(w, widths)

	for i, row := range table.Rows {
		fmt.Fprint(w, "    |")
		for j, width := range widths {
			cell := ""
			if j < len(row) {
				cell = runewidth.Truncate(cellText(row[j]), width, "...")
			}
			fmt.Fprintf(w, " %s |", runewidth.FillRight(cell, width))
		}
		fmt.Fprintln(w)

		// Header separator
		if i == 0 {
			printSeparator(w, widths)
		}
	}

	printSeparator(w, widths)
}

func printSeparator(w io.Writer, widths []int) {
	fmt.Fprint(w, "    +")
	for _, width := range widths {
		fmt.Fprint(w, strings.Repeat("-", width+2)+"+")
	}
	fmt.Fprintln(w)
}
