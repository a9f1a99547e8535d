package tables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Detection thresholds. Units are PDF points.
const (
	defaultRowTolerance = 2.0  // max Y delta between fragments on one line
	defaultCellGap      = 12.0 // min X gap separating two cells on a line
	defaultColTolerance = 8.0  // max X delta to snap a cell to a column
	defaultBlockGap     = 28.0 // vertical gap that ends a table block
	wordGap             = 1.0  // X gap joined with a space inside a cell
	minTableLines       = 2
	minTableColumns     = 2
)

// GeometricEngine reconstructs tables from the positions of text fragments
// on a page: fragments are clustered into lines, lines into cells by
// horizontal gaps, and consecutive cell-bearing lines into table blocks.
// Lines that leave the first column empty are treated as continuations of
// the row above, which is how ruled lattice tables encode multi-line cells.
type GeometricEngine struct {
	rowTolerance float64
	cellGap      float64
	colTolerance float64
	blockGap     float64
}

// NewGeometricEngine returns an engine with the default thresholds.
func NewGeometricEngine() *GeometricEngine {
	return &GeometricEngine{
		rowTolerance: defaultRowTolerance,
		cellGap:      defaultCellGap,
		colTolerance: defaultColTolerance,
		blockGap:     defaultBlockGap,
	}
}

// fragment is one positioned piece of page text.
type fragment struct {
	x, y, w float64
	text    string
}

// cell is assembled from adjacent fragments on one line.
type cell struct {
	x    float64
	text string
}

// line is one horizontal band of cells.
type line struct {
	y     float64
	cells []cell
}

// DetectTables implements Engine.
func (e *GeometricEngine) DetectTables(path string, page int, mode Mode) ([]Table, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	if page < 1 || page > reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", page, reader.NumPage())
	}

	p := reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	content := p.Content()
	frags := make([]fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		frags = append(frags, fragment{x: t.X, y: t.Y, w: t.W, text: t.S})
	}

	return e.assemble(frags, mode), nil
}

// assemble turns positioned fragments into zero or more tables.
func (e *GeometricEngine) assemble(frags []fragment, mode Mode) []Table {
	lines := e.groupLines(frags)
	if len(lines) == 0 {
		return nil
	}

	var out []Table
	for _, block := range e.splitBlocks(lines, mode) {
		if t := e.assembleBlock(block); t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// groupLines clusters fragments into lines by Y position (top of page
// first) and merges adjacent fragments on a line into cells by X gap.
func (e *GeometricEngine) groupLines(frags []fragment) []line {
	if len(frags) == 0 {
		return nil
	}

	// PDF Y grows upward; top of page first.
	sort.Slice(frags, func(i, j int) bool {
		if frags[i].y != frags[j].y {
			return frags[i].y > frags[j].y
		}
		return frags[i].x < frags[j].x
	})

	var lines []line
	var cur []fragment
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, e.buildLine(cur))
			cur = nil
		}
	}
	for _, fr := range frags {
		if len(cur) > 0 && cur[0].y-fr.y > e.rowTolerance {
			flush()
		}
		cur = append(cur, fr)
	}
	flush()
	return lines
}

// buildLine merges fragments sorted by X into cells.
func (e *GeometricEngine) buildLine(frags []fragment) line {
	sort.Slice(frags, func(i, j int) bool { return frags[i].x < frags[j].x })

	ln := line{y: frags[0].y}
	var b strings.Builder
	start := frags[0].x
	end := frags[0].x + frags[0].w
	b.WriteString(frags[0].text)

	for _, fr := range frags[1:] {
		gap := fr.x - end
		if gap > e.cellGap {
			ln.cells = append(ln.cells, cell{x: start, text: b.String()})
			b.Reset()
			start = fr.x
		} else if gap > wordGap && !strings.HasSuffix(b.String(), " ") {
			b.WriteString(" ")
		}
		b.WriteString(fr.text)
		if fr.x+fr.w > end {
			end = fr.x + fr.w
		}
	}
	ln.cells = append(ln.cells, cell{x: start, text: b.String()})
	return ln
}

// splitBlocks partitions lines into candidate table blocks. A block is a run
// of lines that keep at least two cells, with single-cell lines admitted as
// potential continuations; a large vertical gap ends the block.
func (e *GeometricEngine) splitBlocks(lines []line, mode Mode) [][]line {
	var blocks [][]line
	var cur []line
	flush := func() {
		if len(cur) >= minTableLines {
			blocks = append(blocks, cur)
		}
		cur = nil
	}

	for _, ln := range lines {
		multi := len(ln.cells) >= minTableColumns
		if len(cur) == 0 {
			if multi {
				cur = append(cur, ln)
			}
			continue
		}
		prev := cur[len(cur)-1]
		if prev.y-ln.y > e.blockGap {
			flush()
			if multi {
				cur = append(cur, ln)
			}
			continue
		}
		if multi || mode.Lattice {
			// Lattice mode keeps single-cell lines: they are usually
			// wrapped cell content inside a ruled row.
			cur = append(cur, ln)
		} else {
			flush()
		}
	}
	flush()
	return blocks
}

// assembleBlock turns one block of lines into a table, snapping cells to the
// column grid and folding continuation lines into the row above.
func (e *GeometricEngine) assembleBlock(block []line) *Table {
	bounds := e.columnBounds(block)
	if len(bounds) < minTableColumns {
		return nil
	}

	var rows [][]string
	for _, ln := range block {
		assigned := make([]string, len(bounds))
		anchored := false
		for _, c := range ln.cells {
			col := e.nearestColumn(bounds, c.x)
			if col < 0 {
				continue
			}
			if col == 0 {
				anchored = true
			}
			if assigned[col] != "" {
				assigned[col] += " " + c.text
			} else {
				assigned[col] = c.text
			}
		}
		if !anchored && len(rows) > 0 {
			// Continuation of the previous row: wrapped cell content.
			prev := rows[len(rows)-1]
			for i, v := range assigned {
				if v == "" {
					continue
				}
				if prev[i] != "" {
					prev[i] += "\n" + v
				} else {
					prev[i] = v
				}
			}
			continue
		}
		rows = append(rows, assigned)
	}

	if len(rows) < minTableLines {
		return nil
	}
	return &Table{Header: rows[0], Rows: rows[1:]}
}

// columnBounds derives the column start positions from the first line that
// has the block's most common cell count.
func (e *GeometricEngine) columnBounds(block []line) []float64 {
	counts := make(map[int]int)
	for _, ln := range block {
		counts[len(ln.cells)]++
	}
	modal, best := 0, 0
	for n, c := range counts {
		if c > best || (c == best && n > modal) {
			modal, best = n, c
		}
	}
	if modal < minTableColumns {
		return nil
	}
	for _, ln := range block {
		if len(ln.cells) == modal {
			bounds := make([]float64, modal)
			for i, c := range ln.cells {
				bounds[i] = c.x
			}
			return bounds
		}
	}
	return nil
}

// nearestColumn snaps an X position to a column, or to the closest column
// whose span it falls into. Returns -1 when the position precedes the first
// column by more than the tolerance.
func (e *GeometricEngine) nearestColumn(bounds []float64, x float64) int {
	if x < bounds[0]-e.colTolerance {
		return -1
	}
	col := 0
	for i, b := range bounds {
		if x >= b-e.colTolerance {
			col = i
		}
	}
	return col
}
