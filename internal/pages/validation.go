package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// validationSelectors are the markers the application uses for rejected form
// input. Forms are not consistent, so all of them are checked.
var validationSelectors = []string{
	".invalid-feedback",
	".is-invalid",
	"[aria-invalid='true']",
	".text-danger",
	".error-message",
	".field-error",
	".form-error",
	"[role='alert']",
	"text=This field is required",
	"text=is required",
	"text=Please enter a valid",
}

// ValidationIssue is one visible validation marker.
type ValidationIssue struct {
	Selector string
	Text     string
}

func (v ValidationIssue) String() string {
	if v.Text == "" {
		return v.Selector
	}
	return v.Selector + ": " + v.Text
}

// ScanValidation returns every visible validation marker inside scope. A nil
// scope scans the whole page.
func (b *Base) ScanValidation(scope playwright.Locator) ([]ValidationIssue, error) {
	if scope == nil {
		scope = b.Page.Locator("body")
	}
	var issues []ValidationIssue
	for _, sel := range validationSelectors {
		matches := scope.Locator(sel)
		count, err := matches.Count()
		if err != nil {
			return issues, fmt.Errorf("failed to scan %q: %w", sel, err)
		}
		for i := 0; i < count; i++ {
			el := matches.Nth(i)
			if visible, err := el.IsVisible(); err != nil || !visible {
				continue
			}
			text, err := el.InnerText()
			if err != nil {
				text = ""
			}
			issues = append(issues, ValidationIssue{Selector: sel, Text: strings.TrimSpace(text)})
		}
	}
	return issues, nil
}

// HasValidationErrors reports whether any validation marker is visible in scope.
func (b *Base) HasValidationErrors(scope playwright.Locator) bool {
	issues, err := b.ScanValidation(scope)
	if err != nil {
		b.Log.Debug("validation scan incomplete", "err", err)
	}
	return len(issues) > 0
}

// waitForValidation gives the form a chance to render its markers after a
// rejected submit.
func (b *Base) waitForValidation(scope playwright.Locator) {
	if scope == nil {
		scope = b.Page.Locator("body")
	}
	marker := scope.Locator(strings.Join(validationSelectors[:8], ", ")).First()
	if err := marker.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(b.MenuTimeout),
	}); err != nil {
		b.Log.Debug("no validation marker appeared", "err", err)
	}
}
