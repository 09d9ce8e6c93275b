package fetcher

import (
	"context"
	"errors"
	"net"
	"testing"
)

type fakeProcess struct {
	controlURL string
	err        error
	killed     bool
}

func (p *fakeProcess) Launch() (string, error) { return p.controlURL, p.err }
func (p *fakeProcess) Kill()                   { p.killed = true }

func TestStartBrowserKillsOnConnectFailure(t *testing.T) {
	// Grab a free port and close it so nothing is listening there
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	proc := &fakeProcess{controlURL: "ws://" + addr}
	browser, closeBrowser, err := startBrowser(context.Background(), proc)
	if err == nil {
		closeBrowser()
		t.Fatal("expected connection error")
	}
	if browser != nil || closeBrowser != nil {
		t.Error("expected no browser on failure")
	}
	if !proc.killed {
		t.Error("browser process was not killed after connect failure")
	}
}

func TestStartBrowserLaunchFailure(t *testing.T) {
	launchErr := errors.New("no chrome")
	proc := &fakeProcess{err: launchErr}

	_, _, err := startBrowser(context.Background(), proc)
	if !errors.Is(err, launchErr) {
		t.Fatalf("startBrowser() error = %v, want %v", err, launchErr)
	}
	if proc.killed {
		t.Error("Kill called although launch failed")
	}
}
