package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr2-io/hr2-e2e/internal/config"
	"github.com/hr2-io/hr2-e2e/internal/logging"
)

func newTestLogin(page *fakePage, cfg *config.Config) *LoginPage {
	return NewLoginPage(NewBase(page, logging.Discard(), cfg), cfg)
}

func TestNavigate(t *testing.T) {
	errA := errors.New("net::ERR_CONNECTION_RESET")
	errB := errors.New("net::ERR_TIMED_OUT")
	errC := errors.New("net::ERR_NAME_NOT_RESOLVED")

	tests := []struct {
		name      string
		retries   int
		gotoErrs  []error
		wantCalls int
		wantErr   error
	}{
		{name: "first attempt succeeds", retries: 3, wantCalls: 1},
		{name: "succeeds on retry", retries: 3, gotoErrs: []error{errA}, wantCalls: 2},
		{name: "succeeds on last attempt", retries: 3, gotoErrs: []error{errA, errB}, wantCalls: 3},
		{name: "all attempts fail", retries: 3, gotoErrs: []error{errA, errB, errC}, wantCalls: 3, wantErr: errC},
		{name: "single attempt", retries: 1, gotoErrs: []error{errA, errB}, wantCalls: 1, wantErr: errA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			page.gotoErrs = tt.gotoErrs
			l := newTestLogin(page, testConfig())

			err := l.Navigate(context.Background(), config.EnvStg, tt.retries)

			assert.Len(t, page.gotoURLs, tt.wantCalls)
			for _, url := range page.gotoURLs {
				assert.Equal(t, "https://stg.hr2.test", url)
			}
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "stg")
		})
	}
}

func TestNavigate_LastErrorOnly(t *testing.T) {
	errA := errors.New("first")
	errB := errors.New("second")
	page := newFakePage()
	page.gotoErrs = []error{errA, errB}
	l := newTestLogin(page, testConfig())

	err := l.Navigate(context.Background(), config.EnvStg, 2)
	assert.ErrorIs(t, err, errB)
	assert.NotErrorIs(t, err, errA)
}

func TestNavigate_InvalidEnvironment(t *testing.T) {
	for _, env := range []string{"dev", "", "STG", "production"} {
		t.Run(env, func(t *testing.T) {
			page := newFakePage()
			l := newTestLogin(page, testConfig())

			err := l.Navigate(context.Background(), env, 3)
			assert.ErrorIs(t, err, config.ErrInvalidEnvironment)
			assert.Empty(t, page.gotoURLs)
		})
	}
}

func TestNavigate_EnvironmentNotConfigured(t *testing.T) {
	page := newFakePage()
	l := newTestLogin(page, testConfig())

	err := l.Navigate(context.Background(), config.EnvProd, 3)
	assert.ErrorIs(t, err, config.ErrEnvironmentNotConfigured)
	assert.Empty(t, page.gotoURLs)
}

func TestNavigate_RetriesFallback(t *testing.T) {
	fail := errors.New("down")
	always := []error{fail, fail, fail, fail, fail, fail}

	t.Run("configured count", func(t *testing.T) {
		cfg := testConfig()
		cfg.Navigation.Retries = 4
		page := newFakePage()
		page.gotoErrs = always
		l := newTestLogin(page, cfg)

		require.Error(t, l.Navigate(context.Background(), config.EnvQA, 0))
		assert.Len(t, page.gotoURLs, 4)
	})

	t.Run("package default", func(t *testing.T) {
		cfg := testConfig()
		cfg.Navigation.Retries = 0
		page := newFakePage()
		page.gotoErrs = always
		l := newTestLogin(page, cfg)

		require.Error(t, l.Navigate(context.Background(), config.EnvQA, -2))
		assert.Len(t, page.gotoURLs, DefaultRetries)
	})
}

func TestNavigate_RedirectLoop(t *testing.T) {
	page := newFakePage()
	page.gotoErrs = []error{errors.New("net::ERR_TOO_MANY_REDIRECTS at https://stg.hr2.test")}
	l := newTestLogin(page, testConfig())

	err := l.Navigate(context.Background(), config.EnvStg, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect loop")
}

func TestNavigate_ContextCanceled(t *testing.T) {
	cfg := testConfig()
	cfg.Navigation.RetryDelay = time.Hour
	fail := errors.New("down")
	page := newFakePage()
	page.gotoErrs = []error{fail, fail, fail}
	l := newTestLogin(page, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- l.Navigate(ctx, config.EnvStg, 3) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, fail)
		assert.Len(t, page.gotoURLs, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("Navigate ignored context cancellation")
	}
}

func TestSleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), 0))
	assert.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, sleep(ctx, 0), context.Canceled)
}

func TestLogin(t *testing.T) {
	page := newFakePage()
	l := newTestLogin(page, testConfig())

	cred := config.InvalidCredential()
	require.NoError(t, l.Login(context.Background(), config.EnvStg, cred))

	email := l.EmailInput.(*fakeLocator)
	password := l.PasswordInput.(*fakeLocator)
	submit := l.SubmitButton.(*fakeLocator)

	assert.Len(t, page.gotoURLs, 1)
	assert.Equal(t, []string{cred.Email}, email.fills)
	assert.Equal(t, []string{cred.Password}, password.fills)
	assert.Equal(t, 1, submit.clicks)
	assert.Equal(t, []string{"Escape"}, page.keyboard.presses)
}

func TestLogin_NavigationFailureStopsBeforeForm(t *testing.T) {
	fail := errors.New("down")
	page := newFakePage()
	page.gotoErrs = []error{fail, fail, fail}
	l := newTestLogin(page, testConfig())

	err := l.Login(context.Background(), config.EnvStg, config.InvalidCredential())
	assert.ErrorIs(t, err, fail)
	assert.Empty(t, l.EmailInput.(*fakeLocator).fills)
	assert.Zero(t, l.SubmitButton.(*fakeLocator).clicks)
}

func TestLoginAs(t *testing.T) {
	t.Run("configured credentials", func(t *testing.T) {
		page := newFakePage()
		welcome := page.set("text:"+welcomeText, newList(newElem("Welcome to HR2!", true))).items[0]
		l := newTestLogin(page, testConfig())

		require.NoError(t, l.LoginAs(context.Background(), config.EnvStg))
		assert.Len(t, welcome.waits, 1)
		assert.Equal(t, []string{"admin@hr2.test"}, l.EmailInput.(*fakeLocator).fills)
		assert.Equal(t, []string{"secret"}, l.PasswordInput.(*fakeLocator).fills)
		assert.Equal(t, []playwright.WaitForSelectorState{*playwright.WaitForSelectorStateVisible},
			l.Heading.(*fakeLocator).waits)
	})

	t.Run("missing credentials", func(t *testing.T) {
		page := newFakePage()
		l := newTestLogin(page, testConfig())

		err := l.LoginAs(context.Background(), config.EnvQA)
		assert.ErrorIs(t, err, config.ErrMissingCredentials)
		assert.Empty(t, page.gotoURLs)
	})
}

func TestExpectLoginRejected(t *testing.T) {
	page := newFakePage()
	l := newTestLogin(page, testConfig())

	require.NoError(t, l.ExpectLoginRejected())
	assert.Equal(t, []playwright.WaitForSelectorState{*playwright.WaitForSelectorStateVisible},
		l.ErrorAlert.(*fakeLocator).waits)
	assert.Equal(t, []playwright.WaitForSelectorState{*playwright.WaitForSelectorStateHidden},
		l.Heading.(*fakeLocator).waits)
}

func TestDashboardHeadingMatchesExactly(t *testing.T) {
	page := newFakePage()
	newTestLogin(page, testConfig())

	// "Onboarding" headings elsewhere on the dashboard must not match.
	assert.True(t, page.exactRoles[roleKey(*playwright.AriaRoleHeading, dashboardHeading)])
}

func TestExpectLoginRejected_NoAlert(t *testing.T) {
	page := newFakePage()
	l := newTestLogin(page, testConfig())
	l.ErrorAlert.(*fakeLocator).waitErr = errors.New("timeout 30000ms exceeded")

	err := l.ExpectLoginRejected()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login error alert")
	assert.Empty(t, l.Heading.(*fakeLocator).waits)
}
