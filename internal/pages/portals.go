package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/fixtures"
)

// PortalsPage manages onboarding portals.
type PortalsPage struct {
	*listScreen
}

func NewPortalsPage(base *Base) *PortalsPage {
	return &PortalsPage{listScreen: newListScreen(base, SectionPortals, "Add Portal")}
}

func (p *PortalsPage) FillName(name string) error { return p.fill("Portal name", name) }

func (p *PortalsPage) FillWelcome(message string) error { return p.fill("Welcome message", message) }

func (p *PortalsPage) SelectRandomDepartment() (string, error) {
	return p.pickRandom("Department")
}

func (p *PortalsPage) Create(portal fixtures.Portal) (fixtures.Portal, error) {
	p.Log.Debug("creating portal", "name", portal.Name)
	if err := p.OpenCreateFlyout(); err != nil {
		return portal, err
	}
	if err := p.FillName(portal.Name); err != nil {
		return portal, err
	}
	if err := p.FillWelcome(portal.Welcome); err != nil {
		return portal, err
	}
	dept, err := p.SelectRandomDepartment()
	if err != nil {
		return portal, err
	}
	portal.Department = dept
	if err := p.Save(); err != nil {
		return portal, err
	}
	return portal, p.ExpectListed(portal.Name)
}

func (p *PortalsPage) publishedSwitch(name string) playwright.Locator {
	return p.Row(name).GetByRole(*playwright.AriaRoleSwitch)
}

// TogglePublished flips the published switch on the portal's row.
func (p *PortalsPage) TogglePublished(name string) error {
	if err := p.Search(name); err != nil {
		return err
	}
	if err := p.publishedSwitch(name).Click(); err != nil {
		return fmt.Errorf("failed to toggle %q: %w", name, err)
	}
	return nil
}

func (p *PortalsPage) ExpectPublished(name string, published bool) error {
	return p.ExpectChecked(p.publishedSwitch(name), published)
}

func (p *PortalsPage) Delete(name string) error {
	return p.DeleteRow(name)
}
