// Package pdfdoc provides read access to source PDF documents: validation,
// page counts and full-page text.
package pdfdoc

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DefaultMaxFileSize caps how large a source document may be.
const DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

// Document is an open source PDF.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// Opener opens and validates source documents. The zero value uses
// DefaultMaxFileSize.
type Opener struct {
	MaxFileSize int64
	// SkipValidate disables the up-front pdfcpu structural validation.
	SkipValidate bool
}

// Open validates and opens a source document. A missing or malformed
// document is a configuration error: the registry points at something that
// is not a readable allotment PDF, so the caller should abort the run.
func (o Opener) Open(path string) (*Document, error) {
	maxSize := o.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("source document does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access source document %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a document: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("document too large: %d bytes (max: %d bytes)", info.Size(), maxSize)
	}

	if !o.SkipValidate {
		if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
			return nil, fmt.Errorf("document failed validation %s: %w", path, err)
		}
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}

	return &Document{path: path, file: f, reader: reader}, nil
}

// NumPages returns the physical page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// PageText extracts the full plain text of one page, 1-based. A page with
// no extractable text yields an empty string, not an error.
func (d *Document) PageText(page int) (string, error) {
	if page < 1 || page > d.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range (document has %d pages)", page, d.reader.NumPage())
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d of %s: %w", page, d.path, err)
	}
	return text, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}
