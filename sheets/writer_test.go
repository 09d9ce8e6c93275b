package sheets

import (
	"testing"

	"triplecrown-scraper/models"
)

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"edit link", "https://docs.google.com/spreadsheets/d/abc123/edit", "abc123"},
		{"sharing link", "https://docs.google.com/spreadsheets/d/abc123/edit?usp=sharing", "abc123"},
		{"bare id path", "https://docs.google.com/spreadsheets/d/abc123?x=1", "abc123"},
		{"not a sheet", "https://example.com/spreadsheet", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSpreadsheetID(tt.url); got != tt.expected {
				t.Errorf("ExtractSpreadsheetID() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Run 2026/10/17", "Run 2026_10_17"},
		{" [winners]* ", "_winners__"},
		{"   ", "Sheet1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sanitizeSheetName(tt.input); got != tt.expected {
				t.Errorf("sanitizeSheetName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRecordValues(t *testing.T) {
	values := recordValues([]models.Record{
		{Year: "1946", Winner: "Assault"},
		{Year: "n/a", Winner: "Unknown"},
	}, "https://example.org/winners")

	if len(values) != 4 {
		t.Fatalf("recordValues() returned %d rows, want 4", len(values))
	}
	if values[0][0] != "Source" || values[1][0] != "Year" || values[1][1] != "Winner" {
		t.Errorf("unexpected leading rows: %v", values[:2])
	}
	if values[2][0] != 1946 {
		t.Errorf("numeric year = %#v, want int 1946", values[2][0])
	}
	if values[3][0] != "n/a" {
		t.Errorf("text year = %#v, want \"n/a\"", values[3][0])
	}

	if got := recordValues(nil, ""); len(got) != 1 {
		t.Errorf("recordValues(nil) returned %d rows, want header only", len(got))
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name    string
		creds   string
		wantErr bool
	}{
		{"service account", `{"type":"service_account"}`, false},
		{"user credentials", `{"type":"authorized_user"}`, true},
		{"garbage", `not json`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCredentials([]byte(tt.creds))
			if (err != nil) != tt.wantErr {
				t.Errorf("validateCredentials() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
