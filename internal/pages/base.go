// Package pages holds the page objects for the HR2 web application. Every page
// object composes a *Base, which carries the browser page, the logger and the
// shared dropdown, overlay, confirmation and validation helpers.
package pages

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/config"
)

// Selectors shared by several screens.
const (
	menuItemsSelector   = "[role='listbox'] [role='option'], .dropdown-menu.show .dropdown-item"
	flyoutSelector      = ".flyout.open, aside[role='dialog']"
	toastSelector       = ".toast, [role='status']"
	confirmSelector     = "[role='dialog'] button:has-text('Confirm'), [role='dialog'] button:has-text('Yes'), .modal.show button.btn-danger"
	tableRowsSelector   = "table tbody tr"
	searchInputSelector = "input[type='search'], input[placeholder*='Search']"
)

// overlaySelectors are closed, in order, by DismissOverlays.
var overlaySelectors = []string{
	"#onetrust-accept-btn-handler",
	".cookie-banner button:has-text('Accept')",
	".toast button.btn-close",
	".modal.show button.btn-close",
	".intercom-launcher-frame + button[aria-label='Close']",
}

const (
	overlayClickTimeout = 1 * time.Second
	confirmWaitTimeout  = 2 * time.Second
	defaultTimeout      = 30 * time.Second
	defaultMenuTimeout  = 5 * time.Second
)

// Base is composed into every page object.
type Base struct {
	Page        playwright.Page
	Log         *log.Logger
	Timeout     time.Duration
	MenuTimeout time.Duration

	intn   func(n int) int
	expect playwright.PlaywrightAssertions
}

func NewBase(page playwright.Page, logger *log.Logger, cfg *config.Config) *Base {
	b := &Base{
		Page:        page,
		Log:         logger,
		Timeout:     defaultTimeout,
		MenuTimeout: defaultMenuTimeout,
		intn:        rand.IntN,
	}
	if cfg != nil {
		if cfg.Browser.Timeout > 0 {
			b.Timeout = cfg.Browser.Timeout
		}
		if cfg.Navigation.MenuTimeout > 0 {
			b.MenuTimeout = cfg.Navigation.MenuTimeout
		}
	}
	if b.Log == nil {
		b.Log = log.Default()
	}
	return b
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (b *Base) assertions() playwright.PlaywrightAssertions {
	if b.expect == nil {
		b.expect = playwright.NewPlaywrightAssertions(float64(b.Timeout.Milliseconds()))
	}
	return b.expect
}

// openMenu clicks trigger and returns how many items the menu rendered.
func (b *Base) openMenu(trigger, items playwright.Locator) (int, error) {
	if err := trigger.Click(); err != nil {
		return 0, fmt.Errorf("failed to open dropdown: %w", err)
	}
	// An empty menu never renders a first item, so a timeout here is not fatal.
	if err := items.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(b.MenuTimeout),
	}); err != nil {
		b.Log.Debug("dropdown items did not appear", "err", err)
	}
	count, err := items.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count dropdown items: %w", err)
	}
	return count, nil
}

// SelectFromDropdown opens the dropdown and clicks the item at index. An index
// outside the rendered list falls back to the first item.
func (b *Base) SelectFromDropdown(trigger, items playwright.Locator, index int) error {
	count, err := b.openMenu(trigger, items)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrEmptyDropdown
	}
	if index < 0 || index >= count {
		b.Log.Debug("dropdown index out of range, using first item", "index", index, "count", count)
		index = 0
	}
	if err := items.Nth(index).Click(); err != nil {
		return fmt.Errorf("failed to click dropdown item %d: %w", index, err)
	}
	return nil
}

// SelectRandomFromDropdown opens the dropdown, clicks a uniformly random item
// and returns the text that item showed.
func (b *Base) SelectRandomFromDropdown(trigger, items playwright.Locator) (string, error) {
	count, err := b.openMenu(trigger, items)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", fmt.Errorf("%w: nothing to pick at random", ErrEmptyDropdown)
	}
	index := b.intn(count)
	item := items.Nth(index)
	text, err := item.InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read dropdown item %d: %w", index, err)
	}
	text = strings.TrimSpace(text)
	if err := item.Click(); err != nil {
		return "", fmt.Errorf("failed to click dropdown item %q: %w", text, err)
	}
	b.Log.Debug("picked random dropdown item", "index", index, "count", count, "text", text)
	return text, nil
}

// SelectDropdownOption opens the dropdown and clicks the item whose text is label.
func (b *Base) SelectDropdownOption(trigger, items playwright.Locator, label string) error {
	count, err := b.openMenu(trigger, items)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		item := items.Nth(i)
		text, err := item.InnerText()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == label {
			if err := item.Click(); err != nil {
				return fmt.Errorf("failed to click dropdown option %q: %w", label, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q among %d items", ErrOptionNotFound, label, count)
}

// MenuItems is the locator for the items of whichever dropdown is open.
func (b *Base) MenuItems() playwright.Locator {
	return b.Page.Locator(menuItemsSelector)
}

// DismissOverlays closes banners, toasts and stray modals that would
// intercept clicks. Nothing here is allowed to fail the caller.
func (b *Base) DismissOverlays() {
	for _, sel := range overlaySelectors {
		l := b.Page.Locator(sel).First()
		visible, err := l.IsVisible()
		if err != nil || !visible {
			continue
		}
		if err := l.Click(playwright.LocatorClickOptions{Timeout: ms(overlayClickTimeout)}); err != nil {
			b.Log.Debug("overlay close failed", "selector", sel, "err", err)
		}
	}
	if err := b.Page.Keyboard().Press("Escape"); err != nil {
		b.Log.Debug("escape press failed", "err", err)
	}
}

// ConfirmDialog accepts an in-page confirmation modal if one shows up and
// reports whether it did.
func (b *Base) ConfirmDialog() bool {
	button := b.Page.Locator(confirmSelector).First()
	if err := button.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(confirmWaitTimeout),
	}); err != nil {
		b.Log.Debug("no confirmation dialog", "err", err)
		return false
	}
	if err := button.Click(); err != nil {
		b.Log.Debug("confirmation click failed", "err", err)
		return false
	}
	return true
}

// ExpectVisible waits until l is visible.
func (b *Base) ExpectVisible(l playwright.Locator, what string) error {
	if err := l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(b.Timeout),
	}); err != nil {
		return fmt.Errorf("expected %s to be visible: %w", what, err)
	}
	return nil
}

// ExpectHidden waits until l is hidden or detached.
func (b *Base) ExpectHidden(l playwright.Locator, what string) error {
	if err := l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: ms(b.Timeout),
	}); err != nil {
		return fmt.Errorf("expected %s to be hidden: %w", what, err)
	}
	return nil
}

func (b *Base) ExpectText(l playwright.Locator, text string) error {
	if err := b.assertions().Locator(l).ToHaveText(text); err != nil {
		return fmt.Errorf("expected text %q: %w", text, err)
	}
	return nil
}

func (b *Base) ExpectContainsText(l playwright.Locator, text string) error {
	if err := b.assertions().Locator(l).ToContainText(text); err != nil {
		return fmt.Errorf("expected text containing %q: %w", text, err)
	}
	return nil
}

func (b *Base) ExpectChecked(l playwright.Locator, checked bool) error {
	a := b.assertions().Locator(l)
	var err error
	if checked {
		err = a.ToBeChecked()
	} else {
		err = a.Not().ToBeChecked()
	}
	if err != nil {
		return fmt.Errorf("expected checked=%t: %w", checked, err)
	}
	return nil
}

// Flyout is the slide-in panel that hosts create and edit forms.
func (b *Base) Flyout() playwright.Locator {
	return b.Page.Locator(flyoutSelector).First()
}

// Toast is the transient notification area.
func (b *Base) Toast() playwright.Locator {
	return b.Page.Locator(toastSelector).First()
}

func (b *Base) button(scope playwright.Locator, name string) playwright.Locator {
	return scope.GetByRole(*playwright.AriaRoleButton, playwright.LocatorGetByRoleOptions{Name: name})
}
