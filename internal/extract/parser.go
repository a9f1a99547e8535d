package extract

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/a3tai/tncutoffs/internal/records"
	"github.com/a3tai/tncutoffs/internal/registry"
	"github.com/a3tai/tncutoffs/internal/tables"
)

// Document is the page-level access the parser needs from an open document.
type Document interface {
	NumPages() int
	PageText(page int) (string, error)
	Close() error
}

// Opener opens a source document for parsing.
type Opener interface {
	Open(path string) (Document, error)
}

// OpenFunc adapts a function to the Opener interface.
type OpenFunc func(path string) (Document, error)

// Open implements Opener.
func (f OpenFunc) Open(path string) (Document, error) { return f(path) }

// Parser extracts all raw rows of a document by walking its pages and
// applying one ParseStyle through the table-detection engine.
type Parser struct {
	engine tables.Engine
	opener Opener
}

// NewParser creates a document parser over the given engine and opener.
func NewParser(engine tables.Engine, opener Opener) *Parser {
	return &Parser{engine: engine, opener: opener}
}

// Parse walks the document's pages from the style's start page and
// concatenates every non-empty page batch in page order. A document that
// contributes no rows yields an empty slice, not an error.
func (p *Parser) Parse(path, round string, style registry.ParseStyle, quota string) ([]records.Record, error) {
	doc, err := p.opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	label := filepath.Base(path)
	var all []records.Record

	for page := style.StartPage; page <= doc.NumPages(); page++ {
		pageText := ""
		if style.ExtractCollegeFromText {
			pageText, err = doc.PageText(page)
			if err != nil {
				return nil, fmt.Errorf("[%s] page %d: %w", label, page, err)
			}
		}

		rows, err := p.extractPageTable(path, page, style, round, quota, pageText)
		if err != nil {
			return nil, fmt.Errorf("[%s] page %d: %w", label, page, err)
		}
		log.Printf("[%s] Page %d: +%d rows", label, page, len(rows))
		all = append(all, rows...)
	}

	log.Printf("[%s] PDF total added rows: %d", label, len(all))
	return all, nil
}
