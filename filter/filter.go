package filter

import (
	"triplecrown-scraper/config"
	"triplecrown-scraper/models"
)

// Filter applies the configured year range to records
type Filter struct {
	cfg *config.Config
}

// NewFilter creates a new Filter instance
func NewFilter(cfg *config.Config) *Filter {
	return &Filter{
		cfg: cfg,
	}
}

// ApplyFilters filters records based on the configuration, keeping order
func (f *Filter) ApplyFilters(records []models.Record) []models.Record {
	filtered := make([]models.Record, 0, len(records))

	for _, record := range records {
		if f.matchesFilters(record) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// matchesFilters checks if a record falls inside the year range.
// Zero bounds are open.
func (f *Filter) matchesFilters(record models.Record) bool {
	year, err := record.Year.Int()
	if err != nil {
		// Let the plot stage report the bad year
		return true
	}

	if f.cfg.Filters.MinYear > 0 && year < f.cfg.Filters.MinYear {
		return false
	}
	if f.cfg.Filters.MaxYear > 0 && year > f.cfg.Filters.MaxYear {
		return false
	}

	return true
}
