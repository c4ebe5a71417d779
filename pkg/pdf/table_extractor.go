package pdf

import (
	"math"
	"sort"
	"strings"
)

// tableExtractor finds tables on a page either from ruling rectangles
// ("lines", the default) or from word alignment ("text")
type tableExtractor struct {
	page   Page
	config *tableExtractionConfig
}

// newTableExtractor creates a new table extractor with default settings
func newTableExtractor(page Page, opts ...TableExtractionOption) *tableExtractor {
	return &tableExtractor{
		page:   page,
		config: newTableExtractionConfig(opts...),
	}
}

// ExtractTables extracts tables from the page, ordered top to bottom then
// left to right
func (te *tableExtractor) ExtractTables() []Table {
	objects := te.page.GetObjects()

	var found []Table
	switch te.config.Strategy {
	case StrategyText:
		found = te.extractTextBasedTables()
	default:
		found = te.extractLineBasedTables(objects)
	}

	tables := make([]Table, 0, len(found))
	for _, table := range found {
		if len(table.Rows) >= te.config.MinTableRows {
			tables = append(tables, padRows(table))
		}
	}

	sort.SliceStable(tables, func(i, j int) bool {
		if abs(tables[i].BBox.Y0-tables[j].BBox.Y0) > te.config.SnapTolerance {
			return tables[i].BBox.Y0 < tables[j].BBox.Y0
		}
		return tables[i].BBox.X0 < tables[j].BBox.X0
	})
	return tables
}

// edge is a horizontal or vertical ruling segment
type edge struct {
	Horizontal bool
	Pos        float64 // Y for horizontal edges, X for vertical ones
	Start      float64
	End        float64
}

func (e edge) bbox() BoundingBox {
	if e.Horizontal {
		return BoundingBox{X0: e.Start, Y0: e.Pos, X1: e.End, Y1: e.Pos}
	}
	return BoundingBox{X0: e.Pos, Y0: e.Start, X1: e.Pos, Y1: e.End}
}

// collectEdges turns rectangles into ruling edges. A rectangle thinner than
// the snap tolerance is a single ruling; anything larger contributes its
// four sides.
func (te *tableExtractor) collectEdges(rects []RectObject) []edge {
	snap := te.config.SnapTolerance
	var edges []edge

	for _, r := range DeduplicateRectangles(rects) {
		w, h := r.X1-r.X0, r.Y1-r.Y0
		switch {
		case h <= snap && w <= snap:
			// A dot carries no ruling information
		case h <= snap:
			edges = append(edges, edge{Horizontal: true, Pos: (r.Y0 + r.Y1) / 2, Start: r.X0, End: r.X1})
		case w <= snap:
			edges = append(edges, edge{Horizontal: false, Pos: (r.X0 + r.X1) / 2, Start: r.Y0, End: r.Y1})
		default:
			edges = append(edges,
				edge{Horizontal: true, Pos: r.Y0, Start: r.X0, End: r.X1},
				edge{Horizontal: true, Pos: r.Y1, Start: r.X0, End: r.X1},
				edge{Horizontal: false, Pos: r.X0, Start: r.Y0, End: r.Y1},
				edge{Horizontal: false, Pos: r.X1, Start: r.Y0, End: r.Y1},
			)
		}
	}
	return edges
}

// groupEdges partitions edges into sets that touch each other, directly or
// through other edges
func (te *tableExtractor) groupEdges(edges []edge) [][]edge {
	parent := make([]int, len(edges))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := range edges {
		bi := edges[i].bbox().Expand(te.config.SnapTolerance)
		for j := i + 1; j < len(edges); j++ {
			if bi.Intersects(edges[j].bbox()) {
				parent[find(i)] = find(j)
			}
		}
	}

	groups := map[int][]edge{}
	var roots []int
	for i, e := range edges {
		root := find(i)
		if _, ok := groups[root]; !ok {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], e)
	}

	result := make([][]edge, 0, len(roots))
	for _, root := range roots {
		result = append(result, groups[root])
	}
	return result
}

// extractLineBasedTables builds a cell grid for every connected set of rulings
func (te *tableExtractor) extractLineBasedTables(objects Objects) []Table {
	var tables []Table

	for _, group := range te.groupEdges(te.collectEdges(objects.Rects)) {
		var hPositions, vPositions []float64
		for _, e := range group {
			if e.Horizontal {
				hPositions = append(hPositions, e.Pos)
			} else {
				vPositions = append(vPositions, e.Pos)
			}
		}
		hPositions = te.uniquePositions(hPositions)
		vPositions = te.uniquePositions(vPositions)
		if len(hPositions) < 2 || len(vPositions) < 2 {
			continue
		}

		rows := make([][]*string, len(hPositions)-1)
		for i := range rows {
			rows[i] = make([]*string, len(vPositions)-1)
			for j := range rows[i] {
				cell := BoundingBox{
					X0: vPositions[j],
					Y0: hPositions[i],
					X1: vPositions[j+1],
					Y1: hPositions[i+1],
				}
				text := te.extractCellText(cell, objects.Chars)
				rows[i][j] = &text
			}
		}

		tables = append(tables, Table{
			Rows: rows,
			BBox: BoundingBox{
				X0: vPositions[0],
				Y0: hPositions[0],
				X1: vPositions[len(vPositions)-1],
				Y1: hPositions[len(hPositions)-1],
			},
		})
	}

	return tables
}

// uniquePositions sorts positions and merges those within the snap tolerance
func (te *tableExtractor) uniquePositions(positions []float64) []float64 {
	if len(positions) == 0 {
		return nil
	}
	sort.Float64s(positions)

	unique := []float64{positions[0]}
	for _, pos := range positions[1:] {
		if pos-unique[len(unique)-1] > te.config.SnapTolerance {
			unique = append(unique, pos)
		}
	}
	return unique
}

// extractCellText collects the characters centered in the cell, breaking
// lines on vertical jumps and words on horizontal gaps
func (te *tableExtractor) extractCellText(cell BoundingBox, chars []CharObject) string {
	var cellChars []CharObject
	for _, char := range chars {
		centerX := (char.X0 + char.X1) / 2
		centerY := (char.Y0 + char.Y1) / 2
		if cell.Contains(centerX, centerY) {
			cellChars = append(cellChars, char)
		}
	}

	tolerance := te.config.TextTolerance
	var lines []string
	for _, line := range groupCharsIntoLines(cellChars, tolerance) {
		words := wordsFromLine(line, tolerance)
		if len(words) == 0 {
			continue
		}
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = w.Text
		}
		lines = append(lines, strings.Join(parts, " "))
	}

	return strings.Join(lines, "\n")
}

// wordLine is a line of words sharing a top coordinate
type wordLine struct {
	Words []Word
	BBox  BoundingBox
}

// extractTextBasedTables treats a page region as a table when word starts
// line up in more than one column
func (te *tableExtractor) extractTextBasedTables() []Table {
	words := te.page.ExtractWords(WithYTolerance(te.config.TextTolerance))
	if len(words) == 0 {
		return nil
	}

	lines := te.groupWordsIntoLines(words)
	if len(lines) < 2 {
		return nil
	}

	columns := te.findAlignedColumns(lines)
	if len(columns) < 2 {
		return nil
	}

	return []Table{te.createTableFromWordLines(lines, columns)}
}

// groupWordsIntoLines groups words whose tops are within the text tolerance
func (te *tableExtractor) groupWordsIntoLines(words []Word) []wordLine {
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y0 < sorted[j].Y0
	})

	var lines []wordLine
	for _, w := range sorted {
		if n := len(lines); n > 0 && abs(w.Y0-lines[n-1].BBox.Y0) <= te.config.TextTolerance {
			lines[n-1].Words = append(lines[n-1].Words, w)
			lines[n-1].BBox = lines[n-1].BBox.Union(w.GetBBox())
			continue
		}
		lines = append(lines, wordLine{Words: []Word{w}, BBox: w.GetBBox()})
	}

	for _, line := range lines {
		sort.SliceStable(line.Words, func(i, j int) bool {
			return line.Words[i].X0 < line.Words[j].X0
		})
	}
	return lines
}

// findAlignedColumns returns the snapped word start positions shared by at
// least half of the lines
func (te *tableExtractor) findAlignedColumns(lines []wordLine) []float64 {
	snap := te.config.SnapTolerance
	counts := make(map[float64]int)

	for _, line := range lines {
		seen := make(map[float64]bool)
		for _, w := range line.Words {
			x := math.Round(w.X0/snap) * snap
			if !seen[x] {
				seen[x] = true
				counts[x]++
			}
		}
	}

	minCount := max(2, len(lines)/2)
	var columns []float64
	for x, count := range counts {
		if count >= minCount {
			columns = append(columns, x)
		}
	}

	sort.Float64s(columns)
	return columns
}

// createTableFromWordLines assigns words to columns. A column no word falls
// into stays nil for that row.
func (te *tableExtractor) createTableFromWordLines(lines []wordLine, columns []float64) Table {
	rows := make([][]*string, len(lines))
	bbox := lines[0].BBox

	for i, line := range lines {
		bbox = bbox.Union(line.BBox)
		cells := make([][]string, len(columns))
		for _, w := range line.Words {
			if col := te.findColumnIndex(w.X0, columns); col >= 0 {
				cells[col] = append(cells[col], w.Text)
			}
		}

		rows[i] = make([]*string, len(columns))
		for j, parts := range cells {
			if len(parts) > 0 {
				text := strings.Join(parts, " ")
				rows[i][j] = &text
			}
		}
	}

	return Table{Rows: rows, BBox: bbox}
}

// findColumnIndex finds which column a position belongs to
func (te *tableExtractor) findColumnIndex(x float64, columns []float64) int {
	snap := te.config.SnapTolerance
	for i := len(columns) - 1; i >= 0; i-- {
		if x >= columns[i]-snap {
			return i
		}
	}
	return -1
}

// padRows extends short rows with nil cells so the grid is rectangular
func padRows(table Table) Table {
	width := table.Columns()
	for i, row := range table.Rows {
		for len(row) < width {
			row = append(row, nil)
		}
		table.Rows[i] = row
	}
	return table
}
