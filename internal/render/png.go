package render

import (
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rotisserie/eris"
)

// Screenshotter captures rendered HTML cards as PNGs through a headless
// Chromium instance. One browser serves all captures; rod pages are safe
// to drive from multiple goroutines.
type Screenshotter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// NewScreenshotter launches the browser. Callers must Close it.
func NewScreenshotter() (*Screenshotter, error) {
	l := launcher.New().Headless(true)
	url, err := l.Launch()
	if err != nil {
		return nil, eris.Wrap(err, "render: launch browser")
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, eris.Wrap(err, "render: connect browser")
	}

	return &Screenshotter{browser: browser, launcher: l}, nil
}

// Capture loads the HTML file and screenshots the card element.
func (s *Screenshotter) Capture(htmlPath string) ([]byte, error) {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, eris.Wrapf(err, "render: resolve %s", htmlPath)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "file://" + abs})
	if err != nil {
		return nil, eris.Wrapf(err, "render: open %s", htmlPath)
	}
	defer page.Close() //nolint:errcheck

	if err := page.Timeout(30 * time.Second).WaitLoad(); err != nil {
		return nil, eris.Wrapf(err, "render: load %s", htmlPath)
	}

	card, err := page.Element("#scorecard")
	if err != nil {
		return nil, eris.Wrapf(err, "render: locate card in %s", htmlPath)
	}

	png, err := card.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, eris.Wrapf(err, "render: screenshot %s", htmlPath)
	}

	return png, nil
}

// Close shuts the browser down and reaps the process.
func (s *Screenshotter) Close() {
	_ = s.browser.Close()
	s.launcher.Cleanup()
}
