// ABOUTME: PDF document loading for the in-app viewer
// ABOUTME: Reports the page count and extracts plain text per page

package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF marks data that could not be parsed as a PDF
var ErrNotPDF = errors.New("not a readable PDF document")

// Document is a parsed PDF held in memory
type Document struct {
	reader *pdf.Reader
}

// Parse reads a PDF from data
func Parse(data []byte) (doc *Document, err error) {
	// The parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrNotPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	return &Document{reader: reader}, nil
}

// NumPages returns the page count
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// PageText returns the plain text of page n (1-indexed)
func (d *Document) PageText(n int) (text string, err error) {
	if n < 1 || n > d.NumPages() {
		return "", fmt.Errorf("page %d out of range 1..%d", n, d.NumPages())
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to extract page %d: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract page %d: %w", n, err)
	}
	return strings.TrimRight(text, "\n"), nil
}
