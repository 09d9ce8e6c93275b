package fetcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodFetcher implements the Fetcher interface using rod (headless browser).
// It is meant for pages that only render their tables with JavaScript.
type RodFetcher struct {
	userAgent string
	timeout   time.Duration
}

// NewRodFetcher creates a new RodFetcher instance. The browser is launched
// per Fetch call and closed afterwards.
func NewRodFetcher(userAgent string, timeout time.Duration) *RodFetcher {
	return &RodFetcher{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Fetch implements the Fetcher interface
func (rf *RodFetcher) Fetch(ctx context.Context, url string) (string, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run")

	// Prefer a system Chrome/Chromium when one is installed
	for _, path := range []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	} {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	browser, closeBrowser, err := startBrowser(ctx, l)
	if err != nil {
		return "", err
	}
	defer closeBrowser()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	if rf.timeout > 0 {
		page = page.Timeout(rf.timeout)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: rf.userAgent}); err != nil {
		return "", fmt.Errorf("failed to set user agent: %w", err)
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("failed to wait for page load: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}

	log.Printf("Fetched %s with headless browser (%d bytes)\n", url, len(html))
	return html, nil
}

// browserProcess is the part of *launcher.Launcher that owns the Chrome process
type browserProcess interface {
	Launch() (string, error)
	Kill()
}

// startBrowser launches the process and connects to it. The process is
// killed if the connection fails, and by the returned close func otherwise.
func startBrowser(ctx context.Context, proc browserProcess) (*rod.Browser, func(), error) {
	controlURL, err := proc.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		proc.Kill()
		return nil, nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return browser, func() {
		browser.Close()
		proc.Kill()
	}, nil
}
