package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/config"
)

// DefaultRetries is used when neither the caller nor the configuration sets one.
const DefaultRetries = 3

const (
	dashboardHeading = "Onboard"
	welcomeText      = "HR2!"
)

// LoginPage drives the sign-in screen and the landing dashboard check.
type LoginPage struct {
	*Base
	cfg *config.Config

	EmailInput    playwright.Locator
	PasswordInput playwright.Locator
	SubmitButton  playwright.Locator
	ErrorAlert    playwright.Locator
	Heading       playwright.Locator
	Welcome       playwright.Locator
}

func NewLoginPage(base *Base, cfg *config.Config) *LoginPage {
	p := base.Page
	return &LoginPage{
		Base:          base,
		cfg:           cfg,
		EmailInput:    p.Locator("input[type='email'], input[name='email'], input#email"),
		PasswordInput: p.Locator("input[type='password']"),
		SubmitButton:  p.Locator("button[type='submit']"),
		ErrorAlert:    p.Locator(".alert-danger"),
		Heading: p.GetByRole(*playwright.AriaRoleHeading, playwright.PageGetByRoleOptions{
			Name:  dashboardHeading,
			Exact: playwright.Bool(true),
		}),
		Welcome: p.GetByText(welcomeText),
	}
}

// Navigate opens the login screen of env, retrying failed navigations up to
// retries times with a fixed pause between attempts. Unknown environments are
// rejected before the browser is touched. retries <= 0 uses the configured
// count.
func (l *LoginPage) Navigate(ctx context.Context, env string, retries int) error {
	url, err := l.cfg.ResolveURL(env)
	if err != nil {
		return err
	}
	if retries <= 0 {
		retries = l.cfg.Navigation.Retries
	}
	if retries <= 0 {
		retries = DefaultRetries
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		_, lastErr = l.Page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		})
		if lastErr == nil {
			l.Log.Debug("navigated", "env", env, "url", url, "attempt", attempt)
			return nil
		}
		l.Log.Warn("navigation failed", "env", env, "attempt", attempt, "retries", retries, "err", lastErr)
		if attempt == retries {
			break
		}
		if err := sleep(ctx, l.cfg.Navigation.RetryDelay); err != nil {
			return fmt.Errorf("navigation to %s interrupted: %w (last error: %w)", env, err, lastErr)
		}
	}

	if strings.Contains(lastErr.Error(), "ERR_TOO_MANY_REDIRECTS") {
		return fmt.Errorf("redirect loop navigating to %s (%s) after %d attempts: %w", env, url, retries, lastErr)
	}
	return fmt.Errorf("failed to navigate to %s (%s) after %d attempts: %w", env, url, retries, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (l *LoginPage) FillEmail(email string) error {
	if err := l.EmailInput.Fill(email); err != nil {
		return fmt.Errorf("failed to fill email: %w", err)
	}
	return nil
}

func (l *LoginPage) FillPassword(password string) error {
	if err := l.PasswordInput.Fill(password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}
	return nil
}

func (l *LoginPage) Submit() error {
	if err := l.SubmitButton.Click(); err != nil {
		return fmt.Errorf("failed to click submit: %w", err)
	}
	return nil
}

// Login navigates to env and submits cred. It does not assert the outcome;
// follow with ExpectDashboard or ExpectLoginRejected.
func (l *LoginPage) Login(ctx context.Context, env string, cred config.Credential) error {
	if err := l.Navigate(ctx, env, 0); err != nil {
		return err
	}
	l.DismissOverlays()
	if err := l.ExpectVisible(l.EmailInput, "email input"); err != nil {
		return err
	}
	if err := l.FillEmail(cred.Email); err != nil {
		return err
	}
	if err := l.FillPassword(cred.Password); err != nil {
		return err
	}
	return l.Submit()
}

// LoginAs signs in with the credentials configured for env and waits for the dashboard.
func (l *LoginPage) LoginAs(ctx context.Context, env string) error {
	cred, err := l.cfg.Credential(env)
	if err != nil {
		return err
	}
	if err := l.Login(ctx, env, cred); err != nil {
		return err
	}
	return l.ExpectDashboard()
}

// ExpectDashboard asserts the post-login landing: the Onboard heading and the welcome text.
func (l *LoginPage) ExpectDashboard() error {
	if err := l.ExpectVisible(l.Heading, "Onboard heading"); err != nil {
		return err
	}
	return l.ExpectVisible(l.Welcome.First(), "welcome text")
}

// ExpectLoginRejected asserts the error alert is shown and the dashboard is not.
func (l *LoginPage) ExpectLoginRejected() error {
	if err := l.ExpectVisible(l.ErrorAlert, "login error alert"); err != nil {
		return err
	}
	return l.ExpectHidden(l.Heading, "Onboard heading")
}
