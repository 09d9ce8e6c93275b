package fetcher

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
}

// NewCollyFetcher creates a new CollyFetcher instance.
// A zero timeout keeps colly's default.
func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	return &CollyFetcher{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Fetch implements the Fetcher interface. It issues exactly one GET.
func (cf *CollyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(cf.userAgent),
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
	)
	if cf.timeout > 0 {
		c.SetRequestTimeout(cf.timeout)
	}

	var (
		body   string
		status int
	)

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})

	// Status codes are checked below; OnError only sees transport failures
	c.OnError(func(r *colly.Response, err error) {
		log.Printf("Error fetching %s: %v\n", r.Request.URL, err)
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if status < 200 || status > 299 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	log.Printf("Fetched %s (%d bytes)\n", url, len(body))
	return body, nil
}
