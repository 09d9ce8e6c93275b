package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one Triple Crown winner: the season and the horse
type Record struct {
	Year   Year   `json:"Year"`
	Winner string `json:"Winner"`
}

// Year holds the Year cell as scraped. It is written to JSON as a number
// when the text is a canonical integer and as a string otherwise, so that
// forms like "+1919" or "01919" read back unchanged.
type Year string

// Int coerces the year to an integer
func (y Year) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(y)))
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", string(y), err)
	}
	return n, nil
}

// MarshalJSON implements json.Marshaler
func (y Year) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(y)); err == nil && strconv.Itoa(n) == string(y) {
		return []byte(string(y)), nil
	}
	return json.Marshal(string(y))
}

// UnmarshalJSON accepts both a JSON number and a JSON string
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a number or string: %w", err)
	}
	*y = Year(n.String())
	return nil
}
