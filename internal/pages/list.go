package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// listScreen is the table + flyout layout shared by the entity screens. Page
// objects embed it and add their own form fields.
type listScreen struct {
	*Base
	section Section
	sidebar *Sidebar

	AddButton   playwright.Locator
	SearchInput playwright.Locator
	Rows        playwright.Locator
}

func newListScreen(base *Base, section Section, addLabel string) *listScreen {
	return &listScreen{
		Base:        base,
		section:     section,
		sidebar:     NewSidebar(base),
		AddButton:   base.Page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: addLabel}),
		SearchInput: base.Page.Locator(searchInputSelector).First(),
		Rows:        base.Page.Locator(tableRowsSelector),
	}
}

// Open navigates to the screen through the sidebar.
func (s *listScreen) Open() error {
	return s.sidebar.GoTo(s.section)
}

// OpenCreateFlyout clicks the add button and waits for the form.
func (s *listScreen) OpenCreateFlyout() error {
	s.DismissOverlays()
	if err := s.AddButton.Click(); err != nil {
		return fmt.Errorf("failed to click add on %s: %w", s.section, err)
	}
	return s.ExpectVisible(s.Flyout(), "create flyout")
}

// Row is the table row whose text contains name.
func (s *listScreen) Row(name string) playwright.Locator {
	return s.Rows.Filter(playwright.LocatorFilterOptions{HasText: name}).First()
}

func (s *listScreen) Search(term string) error {
	if err := s.SearchInput.Fill(term); err != nil {
		return fmt.Errorf("failed to search %s: %w", s.section, err)
	}
	return nil
}

func (s *listScreen) field(label string) playwright.Locator {
	return s.Flyout().GetByLabel(label, playwright.LocatorGetByLabelOptions{Exact: playwright.Bool(true)})
}

func (s *listScreen) fill(label, value string) error {
	if err := s.field(label).Fill(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", label, err)
	}
	return nil
}

func (s *listScreen) pickRandom(label string) (string, error) {
	text, err := s.SelectRandomFromDropdown(s.field(label), s.MenuItems())
	if err != nil {
		return "", fmt.Errorf("select %s: %w", strings.ToLower(label), err)
	}
	return text, nil
}

// ClickSave presses the flyout's Save button without waiting for the outcome.
func (s *listScreen) ClickSave() error {
	if err := s.button(s.Flyout(), "Save").Click(); err != nil {
		return fmt.Errorf("failed to click save: %w", err)
	}
	return nil
}

// Save submits the flyout and waits for it to close.
func (s *listScreen) Save() error {
	if err := s.ClickSave(); err != nil {
		return err
	}
	if err := s.ExpectHidden(s.Flyout(), "flyout"); err != nil {
		issues, _ := s.ScanValidation(s.Flyout())
		if len(issues) > 0 {
			return fmt.Errorf("%w (validation: %v)", err, issues)
		}
		return err
	}
	return nil
}

// Cancel closes the flyout without saving.
func (s *listScreen) Cancel() error {
	if err := s.button(s.Flyout(), "Cancel").Click(); err != nil {
		return fmt.Errorf("failed to click cancel: %w", err)
	}
	return s.ExpectHidden(s.Flyout(), "flyout")
}

// EditRow opens the edit flyout for the row containing name.
func (s *listScreen) EditRow(name string) error {
	if err := s.Search(name); err != nil {
		return err
	}
	if err := s.button(s.Row(name), "Edit").Click(); err != nil {
		return fmt.Errorf("failed to edit %q: %w", name, err)
	}
	return s.ExpectVisible(s.Flyout(), "edit flyout")
}

// DeleteRow deletes the row containing name and waits for it to disappear.
func (s *listScreen) DeleteRow(name string) error {
	if err := s.Search(name); err != nil {
		return err
	}
	if err := s.button(s.Row(name), "Delete").Click(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	if !s.ConfirmDialog() {
		s.Log.Debug("delete went through without confirmation", "name", name)
	}
	return s.ExpectNotListed(name)
}

func (s *listScreen) ExpectListed(name string) error {
	if err := s.Search(name); err != nil {
		return err
	}
	return s.ExpectVisible(s.Row(name), fmt.Sprintf("%s row %q", s.section, name))
}

func (s *listScreen) ExpectNotListed(name string) error {
	if err := s.Search(name); err != nil {
		return err
	}
	return s.ExpectHidden(s.Row(name), fmt.Sprintf("%s row %q", s.section, name))
}

// rename edits the row containing oldName, replaces the labelled field and
// checks the new name is listed.
func (s *listScreen) rename(oldName, label, newName string) error {
	if err := s.EditRow(oldName); err != nil {
		return err
	}
	if err := s.fill(label, newName); err != nil {
		return err
	}
	if err := s.Save(); err != nil {
		return err
	}
	return s.ExpectListed(newName)
}
