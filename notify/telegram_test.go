package notify

import (
	"testing"

	"triplecrown-scraper/models"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		records  []models.Record
		expected string
	}{
		{"empty", nil, "No Triple Crown winners scraped this run."},
		{
			"unsorted years",
			[]models.Record{{Year: "1973", Winner: "Secretariat"}, {Year: "1919", Winner: "Sir Barton"}, {Year: "2018", Winner: "Justify"}},
			"3 Triple Crown winners scraped, 1919 to 2018.",
		},
		{
			"bad year skipped",
			[]models.Record{{Year: "x", Winner: "Mystery"}, {Year: "1943", Winner: "Count Fleet"}},
			"2 Triple Crown winners scraped, 1943 to 1943.",
		},
		{
			"no numeric years",
			[]models.Record{{Year: "x", Winner: "Mystery"}},
			"1 Triple Crown winners scraped.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.records); got != tt.expected {
				t.Errorf("Summary() = %q, want %q", got, tt.expected)
			}
		})
	}
}
