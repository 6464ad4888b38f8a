package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Section is a top-level area reachable from the sidebar.
type Section string

const (
	SectionEmployees   Section = "Employees"
	SectionDepartments Section = "Departments"
	SectionPositions   Section = "Positions"
	SectionLocations   Section = "Locations"
	SectionPortals     Section = "Portals"
	SectionCalendar    Section = "Calendar"
)

// Sections lists every sidebar entry the suite knows about.
func Sections() []Section {
	return []Section{
		SectionEmployees, SectionDepartments, SectionPositions,
		SectionLocations, SectionPortals, SectionCalendar,
	}
}

func (s Section) valid() bool {
	for _, known := range Sections() {
		if s == known {
			return true
		}
	}
	return false
}

type Sidebar struct {
	*Base
	Root playwright.Locator
}

func NewSidebar(base *Base) *Sidebar {
	return &Sidebar{
		Base: base,
		Root: base.Page.Locator("aside.sidebar, nav[aria-label='Main']").First(),
	}
}

// GoTo opens section and waits for its heading.
func (s *Sidebar) GoTo(section Section) error {
	if !section.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	s.DismissOverlays()
	link := s.Root.GetByRole(*playwright.AriaRoleLink, playwright.LocatorGetByRoleOptions{Name: string(section)})
	if err := link.Click(); err != nil {
		return fmt.Errorf("failed to open %s: %w", section, err)
	}
	heading := s.Page.GetByRole(*playwright.AriaRoleHeading, playwright.PageGetByRoleOptions{Name: string(section)}).First()
	return s.ExpectVisible(heading, string(section)+" heading")
}

type Navbar struct {
	*Base
	UserMenu    playwright.Locator
	SearchInput playwright.Locator
}

func NewNavbar(base *Base) *Navbar {
	return &Navbar{
		Base:        base,
		UserMenu:    base.Page.Locator("[data-testid='user-menu'], .navbar .dropdown-toggle").First(),
		SearchInput: base.Page.Locator("header input[type='search']").First(),
	}
}

func (n *Navbar) OpenUserMenu() error {
	if err := n.UserMenu.Click(); err != nil {
		return fmt.Errorf("failed to open user menu: %w", err)
	}
	return nil
}

// Logout signs out through the user menu and waits for the login form.
func (n *Navbar) Logout() error {
	if err := n.OpenUserMenu(); err != nil {
		return err
	}
	if err := n.Page.GetByText("Log out").First().Click(); err != nil {
		return fmt.Errorf("failed to click log out: %w", err)
	}
	return n.ExpectVisible(n.Page.Locator("input[type='password']"), "login form")
}

// Search runs a global search from the header.
func (n *Navbar) Search(term string) error {
	if err := n.SearchInput.Fill(term); err != nil {
		return fmt.Errorf("failed to fill search: %w", err)
	}
	if err := n.SearchInput.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}
	return nil
}
