package helpers

import (
	"errors"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/browser"
	"github.com/hr2-io/hr2-e2e/internal/config"
	"github.com/hr2-io/hr2-e2e/internal/fixtures"
	"github.com/hr2-io/hr2-e2e/internal/logging"
	"github.com/hr2-io/hr2-e2e/internal/pages"
)

// EnvVar selects the environment the scenarios run against.
const EnvVar = "HR2_E2E_ENV"

// configSearchPaths covers running from the repository root and from tests/e2e.
var configSearchPaths = []string{".", "../.."}

// TargetEnv returns the environment from HR2_E2E_ENV, defaulting to stg.
func TargetEnv() string {
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	return config.EnvStg
}

// BrowserHelper provides browser setup and teardown for tests
type BrowserHelper struct {
	Session *browser.Session
	Page    playwright.Page
	App     *pages.App
	Config  *config.Config
	Catalog *fixtures.Catalog
	Log     *log.Logger
	Env     string
	t       *testing.T
}

// NewBrowserHelper loads the configuration and skips the test when the target
// environment has no URL.
func NewBrowserHelper(t *testing.T) *BrowserHelper {
	t.Helper()
	cfg, err := config.Load(configSearchPaths...)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	env := TargetEnv()
	if _, err := cfg.ResolveURL(env); err != nil {
		if errors.Is(err, config.ErrEnvironmentNotConfigured) {
			t.Skipf("skipping: %v", err)
		}
		t.Fatalf("target environment: %v", err)
	}

	catalog := fixtures.Default()
	if cfg.FixturesFile != "" {
		if catalog, err = fixtures.Load(cfg.FixturesFile); err != nil {
			t.Fatalf("load fixtures: %v", err)
		}
	}

	return &BrowserHelper{
		Config:  cfg,
		Catalog: catalog,
		Log:     logging.FromConfig(cfg.Logging, "e2e"),
		Env:     env,
		t:       t,
	}
}

// RequireCredentials skips the test when the target environment has no login.
func (b *BrowserHelper) RequireCredentials() config.Credential {
	b.t.Helper()
	cred, err := b.Config.Credential(b.Env)
	if err != nil {
		b.t.Skipf("skipping: %v", err)
	}
	return cred
}

// Setup launches the browser and binds the page objects to the new page.
func (b *BrowserHelper) Setup() error {
	s, err := browser.Launch(b.Config, b.Log)
	if err != nil {
		return err
	}
	b.Session = s
	b.Page = s.Page
	b.App = pages.NewApp(s.Page, b.Log, b.Config, b.Catalog)
	return nil
}

// TearDown saves failure artifacts and closes the browser.
func (b *BrowserHelper) TearDown() {
	if b.Session == nil {
		return
	}
	b.Session.Finish(b.t.Name(), b.t.Failed())
	if err := b.Session.Close(); err != nil {
		b.Log.Debug("browser close", "err", err)
	}
}
