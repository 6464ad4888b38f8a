package helpers

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"
)

// AuthHelper provides authentication utilities for tests
type AuthHelper struct {
	browser *BrowserHelper
}

func NewAuthHelper(browser *BrowserHelper) *AuthHelper {
	return &AuthHelper{browser: browser}
}

// LoginAs signs in to the target environment with its configured credentials.
func (a *AuthHelper) LoginAs(ctx context.Context) error {
	return a.browser.App.Login.LoginAs(ctx, a.browser.Env)
}

func (a *AuthHelper) Logout() error {
	return a.browser.App.Navbar.Logout()
}

// IsLoggedIn reports whether the dashboard heading is showing.
func (a *AuthHelper) IsLoggedIn() bool {
	err := a.browser.App.Login.Heading.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64((2 * time.Second).Milliseconds())),
	})
	return err == nil
}
