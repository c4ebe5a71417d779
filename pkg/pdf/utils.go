package pdf

import (
	"sort"
)

// FloatTolerance is the distance below which two coordinates are considered equal
const FloatTolerance = 0.5

// DeduplicateRectangles removes rectangles drawn more than once, as happens
// when producers fill and then stroke the same path. The input is not modified.
func DeduplicateRectangles(rects []RectObject) []RectObject {
	if len(rects) == 0 {
		return nil
	}

	sorted := make([]RectObject, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		if abs(sorted[i].Y0-sorted[j].Y0) > FloatTolerance {
			return sorted[i].Y0 < sorted[j].Y0
		}
		return sorted[i].X0 < sorted[j].X0
	})

	result := []RectObject{sorted[0]}
	for _, curr := range sorted[1:] {
		duplicate := false
		for k := len(result) - 1; k >= 0 && abs(result[k].Y0-curr.Y0) <= FloatTolerance; k-- {
			if rectsEqual(result[k], curr) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, curr)
		}
	}

	return result
}

// rectsEqual checks if two rectangles are essentially the same
func rectsEqual(a, b RectObject) bool {
	return abs(a.X0-b.X0) < FloatTolerance &&
		abs(a.Y0-b.Y0) < FloatTolerance &&
		abs(a.X1-b.X1) < FloatTolerance &&
		abs(a.Y1-b.Y1) < FloatTolerance
}
