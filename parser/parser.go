package parser

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"triplecrown-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// ErrTableNotFound means no table on the page matched the caption.
// Callers treat it as "no data", not as a failure.
var ErrTableNotFound = errors.New("table not found")

// Parser extracts winner records from the source page
type Parser struct {
	class           string
	caption         string
	footnoteColspan int
}

// NewParser creates a new Parser instance. footnoteColspan of 0 makes the
// cleaner compare against the table's own column count.
func NewParser(class, caption string, footnoteColspan int) *Parser {
	return &Parser{
		class:           class,
		caption:         caption,
		footnoteColspan: footnoteColspan,
	}
}

// ParseHTML locates the target table, drops footnote rows and extracts the
// Year and Winner of each remaining row
func (p *Parser) ParseHTML(htmlContent string) ([]models.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table, ok := LocateTable(doc, p.class, p.caption)
	if !ok {
		return nil, fmt.Errorf("%w: no table.%s with caption containing %q", ErrTableNotFound, p.class, p.caption)
	}

	span := FootnoteSpan(table, p.footnoteColspan)
	if removed := RemoveFootnotes(table, span); removed > 0 {
		log.Printf("Removed %d footnote row(s) spanning %d columns\n", removed, span)
	}

	records, err := ExtractRecords(table)
	if err != nil {
		return nil, fmt.Errorf("failed to extract records: %w", err)
	}

	return records, nil
}
