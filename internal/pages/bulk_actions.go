package pages

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/fixtures"
)

// BulkAction keys the bulk-action menu entries in the fixture catalog.
type BulkAction string

const (
	BulkSendInvite       BulkAction = "send_invite"
	BulkChangeDepartment BulkAction = "change_department"
	BulkExport           BulkAction = "export"
	BulkDelete           BulkAction = "delete"
)

var selectedCountPattern = regexp.MustCompile(`\d+`)

// BulkActions drives the multi-select toolbar of the employee list.
type BulkActions struct {
	*Base
	catalog *fixtures.Catalog

	Rows          playwright.Locator
	SelectAllBox  playwright.Locator
	MenuButton    playwright.Locator
	SelectedLabel playwright.Locator
}

func NewBulkActions(base *Base, catalog *fixtures.Catalog) *BulkActions {
	p := base.Page
	return &BulkActions{
		Base:          base,
		catalog:       catalog,
		Rows:          p.Locator(tableRowsSelector),
		SelectAllBox:  p.Locator("table thead input[type='checkbox']").First(),
		MenuButton:    p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Bulk actions"}),
		SelectedLabel: p.Locator(".bulk-actions .selected-count").First(),
	}
}

// SelectRows ticks the checkbox of every row containing one of names.
func (b *BulkActions) SelectRows(names ...string) error {
	for _, name := range names {
		box := b.Rows.Filter(playwright.LocatorFilterOptions{HasText: name}).First().
			GetByRole(*playwright.AriaRoleCheckbox)
		if err := box.Check(); err != nil {
			return fmt.Errorf("failed to select row %q: %w", name, err)
		}
	}
	return nil
}

func (b *BulkActions) SelectAll() error {
	if err := b.SelectAllBox.Check(); err != nil {
		return fmt.Errorf("failed to select all rows: %w", err)
	}
	return nil
}

// SelectedCount parses the "N selected" label of the toolbar.
func (b *BulkActions) SelectedCount() (int, error) {
	text, err := b.SelectedLabel.InnerText()
	if err != nil {
		return 0, fmt.Errorf("failed to read selection count: %w", err)
	}
	digits := selectedCountPattern.FindString(text)
	if digits == "" {
		return 0, fmt.Errorf("no count in selection label %q", text)
	}
	return strconv.Atoi(digits)
}

// Apply chooses action from the bulk-action menu by its label.
func (b *BulkActions) Apply(action BulkAction) error {
	label, ok := b.catalog.BulkActionLabel(string(action))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBulkAction, action)
	}
	b.Log.Debug("applying bulk action", "action", label)
	return b.SelectDropdownOption(b.MenuButton, b.MenuItems(), label)
}

// ApplyAt chooses the menu entry at index, falling back to the first entry.
func (b *BulkActions) ApplyAt(index int) error {
	return b.SelectFromDropdown(b.MenuButton, b.MenuItems(), index)
}

// Confirm accepts the confirmation dialog if the action raised one.
func (b *BulkActions) Confirm() bool {
	return b.ConfirmDialog()
}

func (b *BulkActions) ExpectToast(text string) error {
	if err := b.ExpectVisible(b.Toast(), "toast"); err != nil {
		return err
	}
	return b.ExpectContainsText(b.Toast(), text)
}
