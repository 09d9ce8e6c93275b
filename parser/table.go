package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// legacyFootnoteColspan is the width of the source table when it was first
// scraped. Used only when a table has no header row to count.
const legacyFootnoteColspan = 7

// LocateTable returns the first table carrying class whose caption text
// contains caption. The match is a case-sensitive substring match.
func LocateTable(doc *goquery.Document, class, caption string) (*goquery.Selection, bool) {
	var target *goquery.Selection

	selector := "table"
	if class != "" {
		selector += "." + class
	}

	doc.Find(selector).EachWithBreak(func(i int, table *goquery.Selection) bool {
		c := table.ChildrenFiltered("caption")
		if c.Length() == 0 {
			return true
		}
		if strings.Contains(c.Text(), caption) {
			target = table
			return false
		}
		return true
	})

	if target == nil {
		return nil, false
	}
	return target, true
}

// ColumnCount returns the width of table as declared by its header row,
// counting each cell's colspan.
func ColumnCount(table *goquery.Selection) int {
	rows := tableRows(table)
	if rows.Length() == 0 {
		return 0
	}

	count := 0
	rows.First().ChildrenFiltered("th, td").Each(func(i int, cell *goquery.Selection) {
		count += spanAttr(cell, "colspan")
	})
	return count
}

// RemoveFootnotes deletes, in place, every row whose first data cell spans
// exactly span columns. It returns the number of rows removed.
func RemoveFootnotes(table *goquery.Selection, span int) int {
	removed := 0
	tableRows(table).Each(func(i int, tr *goquery.Selection) {
		td := tr.ChildrenFiltered("td").First()
		if td.Length() == 0 {
			return
		}
		raw, ok := td.Attr("colspan")
		if !ok {
			return
		}
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n == span {
			tr.Remove()
			removed++
		}
	})
	return removed
}

// FootnoteSpan decides which colspan marks a footnote row. A positive
// override wins; otherwise the header row is counted.
func FootnoteSpan(table *goquery.Selection, override int) int {
	if override > 0 {
		return override
	}
	if n := ColumnCount(table); n > 0 {
		return n
	}
	return legacyFootnoteColspan
}

// tableRows returns the rows that belong to table itself, skipping rows of
// any nested table.
func tableRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(i int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
}

// spanAttr reads a colspan/rowspan attribute, defaulting to 1
func spanAttr(cell *goquery.Selection, name string) int {
	raw, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
