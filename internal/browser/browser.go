// Package browser owns the playwright lifecycle: driver install, browser
// launch, context and page creation, and the artifacts written when a run
// fails.
package browser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/config"
)

// PreinstalledEnv set to "1" skips the driver install, e.g. in CI images that
// ship the browsers.
const PreinstalledEnv = "PLAYWRIGHT_PREINSTALLED"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Session is one browser with a single context and page.
type Session struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page

	cfg     *config.Config
	log     *log.Logger
	tracing bool
}

// Install downloads the playwright driver and the configured browser.
func Install(cfg config.BrowserConfig) error {
	opts := &playwright.RunOptions{Browsers: []string{cfg.Name}}
	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("could not install playwright %s: %w", cfg.Name, err)
	}
	return nil
}

func shouldInstall(cfg config.BrowserConfig) bool {
	return !cfg.SkipInstall && os.Getenv(PreinstalledEnv) != "1"
}

// Launch starts playwright and opens a page on the configured browser.
func Launch(cfg *config.Config, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{cfg: cfg, log: logger}

	if shouldInstall(cfg.Browser) {
		if err := Install(cfg.Browser); err != nil {
			return nil, err
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		// The driver may be missing or a different version; install and retry once.
		logger.Warn("playwright failed to start, reinstalling driver", "err", err)
		if ierr := Install(cfg.Browser); ierr != nil {
			logger.Debug("driver reinstall failed", "err", ierr)
		}
		if pw, err = playwright.Run(); err != nil {
			return nil, fmt.Errorf("could not start playwright after retry: %w", err)
		}
	}
	s.Playwright = pw

	if err := s.open(); err != nil {
		_ = s.Close()
		return nil, err
	}
	logger.Debug("browser ready", "browser", cfg.Browser.Name, "headless", cfg.Browser.Headless)
	return s, nil
}

func browserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "chromium", "":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
}

func (s *Session) open() error {
	bc := s.cfg.Browser
	bt, err := browserType(s.Playwright, bc.Name)
	if err != nil {
		return err
	}

	s.Browser, err = bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(bc.Headless),
		SlowMo:   playwright.Float(float64(bc.SlowMo.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("could not launch %s: %w", bc.Name, err)
	}

	s.Context, err = s.Browser.NewContext(contextOptions(s.cfg))
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}

	if s.cfg.Artifacts.Traces {
		if err := s.Context.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
		}); err != nil {
			s.log.Warn("tracing disabled", "err", err)
		} else {
			s.tracing = true
		}
	}

	s.Page, err = s.Context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	s.Page.SetDefaultTimeout(float64(bc.Timeout.Milliseconds()))
	return nil
}

func contextOptions(cfg *config.Config) playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.Browser.ViewportWidth,
			Height: cfg.Browser.ViewportHeight,
		},
	}
	if cfg.Artifacts.Videos {
		opts.RecordVideo = &playwright.RecordVideo{
			Dir: filepath.Join(cfg.Artifacts.Dir, "videos"),
		}
	}
	return opts
}

// ArtifactPath builds <dir>/<kind>/<name>_<unix>.<ext> with name made file-safe.
func ArtifactPath(dir, kind, name, ext string, at time.Time) string {
	safe := unsafeName.ReplaceAllString(name, "_")
	return filepath.Join(dir, kind, fmt.Sprintf("%s_%d.%s", safe, at.Unix(), ext))
}

// Screenshot saves a full-page screenshot named after name and returns its path.
func (s *Session) Screenshot(name string) (string, error) {
	if s.Page == nil {
		return "", errors.New("no page to capture")
	}
	path := ArtifactPath(s.cfg.Artifacts.Dir, "screenshots", name, "png", time.Now())
	if _, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}
	return path, nil
}

// Finish records failure artifacts for a run called name. Traces are only
// kept for failed runs.
func (s *Session) Finish(name string, failed bool) {
	if failed && s.cfg.Artifacts.Screenshots {
		if path, err := s.Screenshot(name); err != nil {
			s.log.Warn("screenshot failed", "err", err)
		} else {
			s.log.Info("saved screenshot", "path", path)
		}
	}
	if !s.tracing {
		return
	}
	s.tracing = false
	if !failed {
		if err := s.Context.Tracing().Stop(); err != nil {
			s.log.Debug("tracing stop failed", "err", err)
		}
		return
	}
	path := ArtifactPath(s.cfg.Artifacts.Dir, "traces", name, "zip", time.Now())
	if err := s.Context.Tracing().Stop(path); err != nil {
		s.log.Warn("trace not saved", "err", err)
		return
	}
	s.log.Info("saved trace", "path", path)
}

// Close shuts down the page, context, browser and driver.
func (s *Session) Close() error {
	var errs []error
	if s.Page != nil {
		errs = append(errs, s.Page.Close())
	}
	if s.Context != nil {
		errs = append(errs, s.Context.Close())
	}
	if s.Browser != nil {
		errs = append(errs, s.Browser.Close())
	}
	if s.Playwright != nil {
		errs = append(errs, s.Playwright.Stop())
	}
	return errors.Join(errs...)
}
