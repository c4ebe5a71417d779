package pdf

import (
	"sort"
	"strings"
)

// objectPage holds the decoded objects of one page and implements the
// extraction methods shared by the ledongthuc and dslipak backends
type objectPage struct {
	pageNumber int
	width      float64
	height     float64
	objects    Objects
}

// GetPageNumber returns the page number (1-based)
func (p *objectPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *objectPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *objectPage) GetHeight() float64 {
	return p.height
}

// GetObjects returns all objects on the page
func (p *objectPage) GetObjects() Objects {
	return p.objects
}

// ExtractText groups characters into lines and lines into text
func (p *objectPage) ExtractText(opts ...TextExtractionOption) string {
	config := newTextExtractionConfig(opts...)

	lines := groupCharsIntoLines(p.objects.Chars, config.YTolerance)
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		words := wordsFromLine(line, config.XTolerance)
		if len(words) == 0 {
			continue
		}
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = w.Text
		}
		texts = append(texts, strings.Join(parts, " "))
	}

	return config.normalize(strings.Join(texts, "\n"))
}

// ExtractWords extracts individual words from the page
func (p *objectPage) ExtractWords(opts ...TextExtractionOption) []Word {
	config := newTextExtractionConfig(opts...)

	var words []Word
	for _, line := range groupCharsIntoLines(p.objects.Chars, config.YTolerance) {
		words = append(words, wordsFromLine(line, config.XTolerance)...)
	}
	return words
}

// ExtractTables extracts tables from the page
func (p *objectPage) ExtractTables(opts ...TableExtractionOption) []Table {
	return newTableExtractor(p, opts...).ExtractTables()
}

// textRun is a positioned string as reported by the rsc.io/pdf family of
// readers, in PDF user space (origin bottom-left, Y at the baseline)
type textRun struct {
	Font     string
	FontSize float64
	X        float64
	Y        float64
	W        float64
	S        string
}

// charsFromRuns splits text runs into per-character objects and flips them
// into top-left coordinates
func charsFromRuns(runs []textRun, pageHeight float64) []CharObject {
	var chars []CharObject
	for _, run := range runs {
		runes := []rune(run.S)
		if len(runes) == 0 {
			continue
		}

		// Baseline sits at roughly 80% of the font height
		top := pageHeight - (run.Y + run.FontSize*0.8)
		charWidth := run.W / float64(len(runes))
		x := run.X

		for _, ch := range runes {
			chars = append(chars, CharObject{
				Text:     string(ch),
				Font:     run.Font,
				FontSize: run.FontSize,
				X0:       x,
				Y0:       top,
				X1:       x + charWidth,
				Y1:       top + run.FontSize,
			})
			x += charWidth
		}
	}
	return chars
}

// rectFromCorners converts a PDF user space rectangle into top-left coordinates
func rectFromCorners(minX, minY, maxX, maxY, pageHeight float64) RectObject {
	return RectObject{
		X0: min(minX, maxX),
		Y0: pageHeight - max(minY, maxY),
		X1: max(minX, maxX),
		Y1: pageHeight - min(minY, maxY),
	}
}

// groupCharsIntoLines clusters characters whose tops are within yTolerance
// of the line's first character, top to bottom
func groupCharsIntoLines(chars []CharObject, yTolerance float64) [][]CharObject {
	if len(chars) == 0 {
		return nil
	}

	sorted := make([]CharObject, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y0 < sorted[j].Y0
	})

	var lines [][]CharObject
	current := []CharObject{sorted[0]}
	currentY := sorted[0].Y0

	for _, char := range sorted[1:] {
		if abs(char.Y0-currentY) > yTolerance {
			lines = append(lines, current)
			current = []CharObject{char}
			currentY = char.Y0
			continue
		}
		current = append(current, char)
	}
	lines = append(lines, current)

	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].X0 < line[j].X0
		})
	}
	return lines
}

// wordsFromLine splits a sorted line of characters at blank characters and
// wherever the gap to the previous character exceeds xTolerance
func wordsFromLine(line []CharObject, xTolerance float64) []Word {
	var words []Word
	var current []CharObject

	for _, char := range line {
		if isBlank(char.Text) {
			if len(current) > 0 {
				words = append(words, createWord(current))
				current = nil
			}
			continue
		}
		if len(current) > 0 && char.X0-current[len(current)-1].X1 > xTolerance {
			words = append(words, createWord(current))
			current = nil
		}
		current = append(current, char)
	}
	if len(current) > 0 {
		words = append(words, createWord(current))
	}
	return words
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// createWord creates a Word from a group of characters
func createWord(chars []CharObject) Word {
	var text strings.Builder
	bbox := chars[0].GetBBox()
	for _, char := range chars {
		text.WriteString(char.Text)
		bbox = bbox.Union(char.GetBBox())
	}

	return Word{
		Text: text.String(),
		X0:   bbox.X0,
		Y0:   bbox.Y0,
		X1:   bbox.X1,
		Y1:   bbox.Y1,
	}
}
