package fetcher

import (
	"context"
	"errors"
	"fmt"

	"triplecrown-scraper/config"
)

// ErrUnexpectedStatus indicates the page answered with a non-2xx status
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Fetcher interface defines the contract for fetching implementations
type Fetcher interface {
	// Fetch retrieves the HTML document at url
	Fetch(ctx context.Context, url string) (string, error)
}

// New returns the fetcher selected by cfg.Source.Engine
func New(cfg *config.Config) (Fetcher, error) {
	switch cfg.Source.Engine {
	case "", "http":
		return NewCollyFetcher(cfg.Source.UserAgent, cfg.Source.Timeout), nil
	case "browser":
		return NewRodFetcher(cfg.Source.UserAgent, cfg.Source.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown fetch engine %q", cfg.Source.Engine)
	}
}
