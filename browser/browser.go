// Package browser drives a headless browser to preview rendered transcripts.
package browser

import (
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Session is a headless browser automation session.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// NewSession launches a headless browser and opens a blank page.
func NewSession() (*Session, error) {
	l := launcher.New().Headless(true)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %v", err)
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("error connecting to browser: %v", err)
	}

	var page *rod.Page
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "Error creating page: %v\n", r)
			}
		}()
		page = b.MustPage()
	}()
	if page == nil {
		b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("failed to create page")
	}

	return &Session{
		launcher: l,
		browser:  b,
		page:     page.Timeout(30 * time.Second),
	}, nil
}

// Close cleans up the browser session.
func (s *Session) Close() {
	if s.page != nil {
		s.page.Close()
	}
	if s.browser != nil {
		s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
}

// Screenshot navigates to url and writes a full-page PNG to outPath.
func (s *Session) Screenshot(url, outPath string) error {
	if err := s.page.Navigate(url); err != nil {
		return fmt.Errorf("error navigating to %s: %v", url, err)
	}
	if err := s.page.WaitLoad(); err != nil {
		return fmt.Errorf("error waiting for page load: %v", err)
	}

	data, err := s.page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("error capturing screenshot: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing screenshot: %v", err)
	}
	return nil
}
