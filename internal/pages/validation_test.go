package pages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationIssueString(t *testing.T) {
	assert.Equal(t, ".is-invalid", ValidationIssue{Selector: ".is-invalid"}.String())
	assert.Equal(t, "[role='alert']: Email is required",
		ValidationIssue{Selector: "[role='alert']", Text: "Email is required"}.String())
}

func TestScanValidation(t *testing.T) {
	page := newFakePage()
	body := page.set("body", newElem("", true))
	body.set(".invalid-feedback", newList(newElem(" Required ", true), newElem("old", false)))
	body.set("text=is required", newList(newElem("Phone is required", true)))
	b := newTestBase(page)

	issues, err := b.ScanValidation(nil)
	require.NoError(t, err)
	assert.Equal(t, []ValidationIssue{
		{Selector: ".invalid-feedback", Text: "Required"},
		{Selector: "text=is required", Text: "Phone is required"},
	}, issues)
	assert.True(t, b.HasValidationErrors(nil))
}

func TestScanValidation_Clean(t *testing.T) {
	scope := newElem("", true)
	b := newTestBase(newFakePage())

	issues, err := b.ScanValidation(scope)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.False(t, b.HasValidationErrors(scope))
}

func TestScanValidation_CountError(t *testing.T) {
	scope := newElem("", true)
	scope.set(".invalid-feedback", newList(newElem("Required", true)))
	broken := scope.set(".is-invalid", newList())
	broken.countErr = errors.New("context destroyed")
	b := newTestBase(newFakePage())

	issues, err := b.ScanValidation(scope)
	assert.ErrorIs(t, err, broken.countErr)
	assert.Len(t, issues, 1, "issues found before the failure are kept")
	assert.True(t, b.HasValidationErrors(scope))
}
