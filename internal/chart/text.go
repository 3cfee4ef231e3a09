package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	lineH = 1 << iota
	lineV
)

var partialBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

type cell struct {
	r     rune
	color string
	lines int
}

// TextCanvas rasterizes drawing calls onto a grid of terminal cells. The
// chart's pixel space is scaled to fit cols x rows.
type TextCanvas struct {
	cols, rows int
	sx, sy     float64
	grid       [][]cell
}

func NewTextCanvas(cols, rows int) *TextCanvas {
	t := &TextCanvas{cols: max(cols, 1), rows: max(rows, 1)}
	t.Clear(float64(t.cols), float64(t.rows))
	return t
}

func (t *TextCanvas) Clear(width, height float64) {
	t.sx = width / float64(t.cols)
	t.sy = height / float64(t.rows)
	if t.sx <= 0 {
		t.sx = 1
	}
	if t.sy <= 0 {
		t.sy = 1
	}
	t.grid = make([][]cell, t.rows)
	for i := range t.grid {
		t.grid[i] = make([]cell, t.cols)
	}
}

func (t *TextCanvas) set(col, row int, r rune, color string) {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		return
	}
	t.grid[row][col] = cell{r: r, color: color}
}

// FillRect fills the columns whose centers fall inside r. The topmost row
// uses a partial block so short bars stay visible.
func (t *TextCanvas) FillRect(r Rect, color string) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	for col := 0; col < t.cols; col++ {
		cx := (float64(col) + 0.5) * t.sx
		if cx < r.X || cx >= r.X+r.W {
			continue
		}
		for row := 0; row < t.rows; row++ {
			top := float64(row) * t.sy
			bottom := top + t.sy
			overlap := math.Min(bottom, r.Y+r.H) - math.Max(top, r.Y)
			if overlap <= 0 {
				continue
			}
			idx := int(math.Round(overlap / t.sy * 8))
			if idx <= 0 {
				idx = 1
			}
			if idx > 8 {
				idx = 8
			}
			t.set(col, row, partialBlocks[idx], color)
		}
	}
}

// FillText centers text on x in the row containing y.
func (t *TextCanvas) FillText(text string, x, y float64, color string) {
	runes := []rune(text)
	row := t.clampRow(int(y / t.sy))
	start := int(math.Round(x/t.sx)) - len(runes)/2
	start = min(max(start, 0), max(t.cols-len(runes), 0))
	for i, r := range runes {
		t.set(start+i, row, r, color)
	}
}

func (t *TextCanvas) clampRow(row int) int {
	return min(max(row, 0), t.rows-1)
}

func (t *TextCanvas) toCell(p Point) (int, int) {
	col := min(max(int(p.X/t.sx), 0), t.cols-1)
	return col, t.clampRow(int(p.Y / t.sy))
}

// StrokePolyline draws box-drawing lines between consecutive points. Width
// is ignored; a terminal cell is the thinnest stroke available.
func (t *TextCanvas) StrokePolyline(points []Point, color string, width float64) {
	for i := 1; i < len(points); i++ {
		c0, r0 := t.toCell(points[i-1])
		c1, r1 := t.toCell(points[i])
		dc, dr := c1-c0, r1-r0
		steps := max(abs(dc), abs(dr))
		dir := lineV
		if abs(dc) >= abs(dr) {
			dir = lineH
		}
		for s := 0; s <= steps; s++ {
			col, row := c0, r0
			if steps > 0 {
				col = c0 + int(math.Round(float64(dc*s)/float64(steps)))
				row = r0 + int(math.Round(float64(dr*s)/float64(steps)))
			}
			c := &t.grid[row][col]
			c.lines |= dir
			c.color = color
			c.r = lineRune(c.lines)
		}
	}
}

func lineRune(lines int) rune {
	switch lines {
	case lineH:
		return '─'
	case lineV:
		return '│'
	default:
		return '└'
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Plain returns the raster without colors.
func (t *TextCanvas) Plain() string {
	lines := make([]string, t.rows)
	for i, row := range t.grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteRune(c.r)
			}
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// Render returns the raster with each run of same-colored cells styled.
func (t *TextCanvas) Render() string {
	lines := make([]string, t.rows)
	for i, row := range t.grid {
		var b strings.Builder
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			r, color := c.r, c.color
			if r == 0 {
				r, color = ' ', ""
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(r)
		}
		flush()
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
