// Package store persists scraped records as an indented JSON file.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"triplecrown-scraper/models"
)

// Save writes records to path as a JSON array indented with two spaces,
// replacing any existing file
func Save(records []models.Record, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	if records == nil {
		records = []models.Record{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load reads records previously written by Save
func Load(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return records, nil
}

// Exists reports whether path currently exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
