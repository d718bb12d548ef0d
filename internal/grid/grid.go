// Package grid arranges a fixed list of buttons into rows and columns.
package grid

// Cell is a button's position in the grid, row-major.
type Cell struct {
	Row int
	Col int
}

// Arrange places n buttons into a grid with the given number of columns.
// Order is preserved row-major: button i lands at (i/cols, i%cols).
func Arrange(n, cols int) []Cell {
	if n <= 0 {
		return nil
	}
	if cols < 1 {
		cols = 1
	}

	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{Row: i / cols, Col: i % cols}
	}
	return cells
}

// Rows returns the number of rows a grid of n buttons and cols columns
// occupies.
func Rows(n, cols int) int {
	if n <= 0 {
		return 0
	}
	if cols < 1 {
		cols = 1
	}
	return (n + cols - 1) / cols
}

// Solution is a solved grid geometry for a container.
type Solution struct {
	Rows    int
	Cols    int
	ButtonW float64
	ButtonH float64
}

// Solve picks the rows-by-cols split for n buttons that maximizes the
// area of each button inside a width-by-height container, honoring the
// spacing between cells and an optional aspect ratio (0 disables the
// constraint). All row/column counts up to n are tried; a split is only
// considered when it has no fully empty row or column.
func Solve(n int, width, height, colSpacing, rowSpacing, aspect float64) Solution {
	if n <= 0 {
		return Solution{}
	}

	best := Solution{Rows: 1, Cols: n}
	bestArea := -1.0

	for rows := 1; rows <= n; rows++ {
		for cols := 1; cols <= n; cols++ {
			// Reject splits that cannot hold n buttons or waste a
			// whole row or column.
			if rows*cols < n || rows*cols > n+rows || rows*cols > n+cols {
				continue
			}

			colGaps := float64(cols - 1)
			rowGaps := float64(rows - 1)
			cellW := (width - colGaps*colSpacing) / float64(cols)
			cellH := (height - rowGaps*rowSpacing) / float64(rows)

			var w, h float64
			switch {
			case aspect >= 1:
				w = cellW * aspect
				h = min(cellH, w/aspect)
				w = h * aspect
			case aspect > 0:
				h = cellH
				w = min(cellW*aspect, h*aspect)
				h = w / aspect
			default:
				w = cellW
				h = cellH
			}

			if w*h > bestArea {
				bestArea = w * h
				best = Solution{Rows: rows, Cols: cols, ButtonW: w, ButtonH: h}
			}
		}
	}

	return best
}
