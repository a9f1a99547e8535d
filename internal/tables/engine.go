// Package tables provides table detection over PDF pages.
//
// The pipeline consumes the Engine contract only; the geometric detector in
// this package is one implementation of it, reconstructing a grid from the
// positions of text fragments on a page.
package tables

// Table is one detected grid of text cells. All rows have the same width as
// the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Mode selects the table-detection strategy hints for a document layout.
// Lattice favors ruled grids with multi-line cells; Stream favors
// whitespace-separated columns.
type Mode struct {
	Lattice bool
	Stream  bool
}

// Engine detects the tables present on one page of a document, in top-to-
// bottom order. An empty result means the page has no detectable table,
// which is not an error.
type Engine interface {
	DetectTables(path string, page int, mode Mode) ([]Table, error)
}
