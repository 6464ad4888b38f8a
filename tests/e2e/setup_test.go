//go:build e2e

package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hr2-io/hr2-e2e/tests/e2e/helpers"
)

// newBrowser launches a browser for t and closes it when t ends.
func newBrowser(t *testing.T) *helpers.BrowserHelper {
	t.Helper()
	browser := helpers.NewBrowserHelper(t)
	require.NoError(t, browser.Setup(), "Failed to setup browser")
	t.Cleanup(browser.TearDown)
	return browser
}

// loggedIn is newBrowser plus a successful login with the configured account.
func loggedIn(t *testing.T) *helpers.BrowserHelper {
	t.Helper()
	browser := helpers.NewBrowserHelper(t)
	browser.RequireCredentials()
	require.NoError(t, browser.Setup(), "Failed to setup browser")
	t.Cleanup(browser.TearDown)

	require.NoError(t, helpers.NewAuthHelper(browser).LoginAs(context.Background()), "Login should succeed")
	return browser
}
