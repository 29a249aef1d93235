package grid

// Board dimensions and the run length required to win. Fixed for every game.
const (
	Size      = 13
	RunLength = 5
)

const (
	MarkEmpty = ""
	MarkO     = "O"
	MarkX     = "X"
)

// Grid is a Size×Size board of marks. Cells hold MarkEmpty, MarkO or MarkX.
type Grid [][]string

// New returns an empty Size×Size grid.
func New() Grid {
	g := make(Grid, Size)
	for i := range g {
		g[i] = make([]string, Size)
	}
	return g
}

// Valid reports whether g has the expected Size×Size shape.
func (g Grid) Valid() bool {
	if len(g) != Size {
		return false
	}
	for _, row := range g {
		if len(row) != Size {
			return false
		}
	}
	return true
}

type Direction string

const (
	Horizontal   Direction = "horizontal"
	Vertical     Direction = "vertical"
	DiagonalDown Direction = "diagonalDown" // step (+1, +1)
	DiagonalUp   Direction = "diagonalUp"   // step (+1, -1)
)

// step returns the per-cell row/col delta for a direction.
func (d Direction) step() (dr, dc int) {
	switch d {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case DiagonalDown:
		return 1, 1
	default:
		return 1, -1
	}
}

// WinLine describes a detected run: the mark that formed it and the
// RunLength cell coordinates, ordered along the scan direction.
type WinLine struct {
	Mark  string
	Cells [][2]int
}

// scanOrder fixes the precedence between simultaneous lines: the first
// direction whose scan finds a run wins.
var scanOrder = []Direction{Horizontal, Vertical, DiagonalDown, DiagonalUp}

// Winner scans every RunLength window in all four directions and returns the
// first run of identical non-empty marks, in scanOrder precedence. Within a
// direction, windows are visited row-major from the window's start cell.
func (g Grid) Winner() (WinLine, bool) {
	for _, dir := range scanOrder {
		if row, col, ok := g.scan(dir); ok {
			return WinLine{Mark: g[row][col], Cells: WinningCells(row, col, dir)}, true
		}
	}
	return WinLine{}, false
}

func (g Grid) scan(dir Direction) (row, col int, ok bool) {
	dr, dc := dir.step()
	for row = 0; row < Size; row++ {
		if startRow := row + (RunLength-1)*dr; startRow >= Size {
			break
		}
		for col = 0; col < Size; col++ {
			end := col + (RunLength-1)*dc
			if end < 0 || end >= Size {
				continue
			}
			if g.runAt(row, col, dr, dc) {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

func (g Grid) runAt(row, col, dr, dc int) bool {
	mark := g[row][col]
	if mark != MarkO && mark != MarkX {
		return false
	}
	for i := 1; i < RunLength; i++ {
		if g[row+i*dr][col+i*dc] != mark {
			return false
		}
	}
	return true
}

// WinningCells regenerates the coordinates of a run from its start cell and
// direction. The start cell is the one the scan reported, so the same
// (row, col, direction) triple always reproduces the detected line.
func WinningCells(row, col int, dir Direction) [][2]int {
	dr, dc := dir.step()
	cells := make([][2]int, 0, RunLength)
	for i := 0; i < RunLength; i++ {
		cells = append(cells, [2]int{row + i*dr, col + i*dc})
	}
	return cells
}
