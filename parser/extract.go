package parser

import (
	"errors"
	"fmt"
	"strings"

	"triplecrown-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// ErrMissingColumn is returned when the header row lacks Year or Winner
var ErrMissingColumn = errors.New("missing column")

const (
	yearColumn   = "Year"
	winnerColumn = "Winner"
)

// ExtractRecords converts a cleaned table into records, keeping only the
// Year and Winner columns, in table order. The first row is the header;
// later rows made only of th cells are sub-headers and are skipped.
func ExtractRecords(table *goquery.Selection) ([]models.Record, error) {
	grid := expandGrid(table)
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: table has no rows", ErrMissingColumn)
	}

	header := grid[0].cells
	yearIdx := indexOf(header, yearColumn)
	if yearIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, yearColumn)
	}
	winnerIdx := indexOf(header, winnerColumn)
	if winnerIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, winnerColumn)
	}

	records := make([]models.Record, 0, len(grid)-1)
	for _, row := range grid[1:] {
		if row.header {
			continue
		}
		year := cellAt(row.cells, yearIdx)
		winner := cellAt(row.cells, winnerIdx)
		if year == "" && winner == "" {
			continue
		}
		records = append(records, models.Record{
			Year:   models.Year(year),
			Winner: winner,
		})
	}

	return records, nil
}

// pendingCell is a cell carried down into following rows by rowspan
type pendingCell struct {
	text string
	rows int
}

// gridRow is one expanded table row. header is set when the row has th
// cells and no td cells.
type gridRow struct {
	cells  []string
	header bool
}

// expandGrid lays the table out as a rectangle of cell texts, repeating
// cells that span several rows or columns.
func expandGrid(table *goquery.Selection) []gridRow {
	var (
		grid    []gridRow
		pending []pendingCell
	)

	tableRows(table).Each(func(i int, tr *goquery.Selection) {
		var row []string
		col := 0

		carry := func() {
			for col < len(pending) && pending[col].rows > 0 {
				row = append(row, pending[col].text)
				pending[col].rows--
				col++
			}
		}

		tr.ChildrenFiltered("th, td").Each(func(j int, cell *goquery.Selection) {
			carry()

			text := cellText(cell)
			colspan := spanAttr(cell, "colspan")
			rowspan := spanAttr(cell, "rowspan")

			for k := 0; k < colspan; k++ {
				row = append(row, text)
				for len(pending) <= col {
					pending = append(pending, pendingCell{})
				}
				if rowspan > 1 {
					pending[col] = pendingCell{text: text, rows: rowspan - 1}
				}
				col++
			}
		})

		// Cells spanning into the tail of this row
		for col < len(pending) {
			if pending[col].rows > 0 {
				carry()
				continue
			}
			row = append(row, "")
			col++
		}

		grid = append(grid, gridRow{
			cells:  row,
			header: tr.ChildrenFiltered("td").Length() == 0 && tr.ChildrenFiltered("th").Length() > 0,
		})
	})

	return grid
}

// cellText returns the visible text of a cell without citation markers
func cellText(cell *goquery.Selection) string {
	c := cell.Clone()
	c.Find("sup.reference, style, .sortkey, .mw-ref").Remove()
	return strings.Join(strings.Fields(c.Text()), " ")
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
