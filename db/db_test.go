package db

import (
	"testing"

	"triplecrown-scraper/models"
)

func TestConnStringFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_SSLMODE", "require")

	expected := "host=db.internal port=5432 user=triple_crown password=secret dbname=triple_crown sslmode=require"
	if got := ConnStringFromEnv(); got != expected {
		t.Errorf("ConnStringFromEnv() = %q, want %q", got, expected)
	}
}

func TestResolveConnString(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		dbHost string
		want   string
	}{
		{
			name:   "configured url wins",
			url:    "postgres://u@h/db",
			dbHost: "db.internal",
			want:   "postgres://u@h/db",
		},
		{
			name:   "built from environment",
			dbHost: "db.internal",
			want:   "host=db.internal port=5432 user=triple_crown password= dbname=triple_crown sslmode=disable",
		},
		{
			name: "disabled",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_HOST", tt.dbHost)
			t.Setenv("DB_PORT", "")
			t.Setenv("DB_USER", "")
			t.Setenv("DB_PASSWORD", "")
			t.Setenv("DB_NAME", "")
			t.Setenv("DB_SSLMODE", "")

			if got := ResolveConnString(tt.url); got != tt.want {
				t.Errorf("ResolveConnString(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestToWinners(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		want    []Winner
		wantErr bool
	}{
		{
			name:    "numeric years",
			records: []models.Record{{Year: "1937", Winner: "War Admiral"}, {Year: "1941", Winner: "Whirlaway"}},
			want:    []Winner{{Year: 1937, Winner: "War Admiral"}, {Year: 1941, Winner: "Whirlaway"}},
		},
		{
			name:    "non-numeric year",
			records: []models.Record{{Year: "unknown", Winner: "Assault"}},
			wantErr: true,
		},
		{
			name: "empty",
			want: []Winner{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toWinners(tt.records)
			if (err != nil) != tt.wantErr {
				t.Fatalf("toWinners() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("toWinners() = %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("winner %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
