package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when no -config flag is given
const DefaultPath = "config.yaml"

// Config holds everything the scraper needs for one run
type Config struct {
	Source struct {
		URL       string        `yaml:"url"`
		UserAgent string        `yaml:"user_agent"`
		Engine    string        `yaml:"engine"` // "http" or "browser"
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"source"`

	Table struct {
		Class   string `yaml:"class"`
		Caption string `yaml:"caption"`
		// FootnoteColspan forces the colspan that marks a footnote row.
		// 0 means use the column count of the header row.
		FootnoteColspan int `yaml:"footnote_colspan"`
	} `yaml:"table"`

	Output struct {
		File string `yaml:"file"`
	} `yaml:"output"`

	Chart struct {
		File     string  `yaml:"file"`
		Title    string  `yaml:"title"`
		Open     bool    `yaml:"open"`
		WidthIn  float64 `yaml:"width_in"`
		HeightIn float64 `yaml:"height_in"`
	} `yaml:"chart"`

	Filters struct {
		MinYear int `yaml:"min_year"`
		MaxYear int `yaml:"max_year"`
	} `yaml:"filters"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Sheets struct {
		SpreadsheetURL string `yaml:"spreadsheet_url"`
		Credentials    string `yaml:"credentials"`
	} `yaml:"sheets"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
// A missing file is only tolerated when allowMissing is set.
func LoadConfig(path string, allowMissing bool) (*Config, error) {
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// GetDefaultConfig returns the configuration the scraper ships with
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Source.URL = "https://en.wikipedia.org/wiki/Triple_Crown_of_Thoroughbred_Racing_(United_States)"
	cfg.Source.UserAgent = "educational_horse_scraper_bot"
	cfg.Source.Engine = "http"
	cfg.Table.Class = "wikitable"
	cfg.Table.Caption = "Triple Crown winners"
	cfg.Output.File = "triple_crown_winners.json"
	cfg.Chart.File = "triple_crown_winners.png"
	cfg.Chart.Title = "Triple Crown Winners"
	cfg.Chart.Open = true
	cfg.Chart.WidthIn = 10
	cfg.Chart.HeightIn = 8
	return cfg
}

// applyEnv lets secrets come from the environment instead of the file
func applyEnv(cfg *Config) {
	cfg.Database.URL = getEnvOrDefault("DATABASE_URL", cfg.Database.URL)
	cfg.Telegram.Token = getEnvOrDefault("TELEGRAM_TOKEN", cfg.Telegram.Token)
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
