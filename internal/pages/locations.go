package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hr2-io/hr2-e2e/internal/fixtures"
)

type LocationsPage struct {
	*listScreen
}

func NewLocationsPage(base *Base) *LocationsPage {
	return &LocationsPage{listScreen: newListScreen(base, SectionLocations, "Add Location")}
}

func (p *LocationsPage) FillName(name string) error { return p.fill("Location name", name) }

func (p *LocationsPage) FillAddress(address string) error { return p.fill("Address", address) }

func (p *LocationsPage) FillCity(city string) error { return p.fill("City", city) }

// SelectCountry picks the country at index (first country when out of range)
// and returns the value the field shows afterwards. Select widgets that are
// not inputs are read by their text.
func (p *LocationsPage) SelectCountry(index int) (string, error) {
	field := p.field("Country")
	if err := p.SelectFromDropdown(field, p.MenuItems(), index); err != nil {
		return "", fmt.Errorf("select country: %w", err)
	}
	value, err := field.InputValue()
	if err != nil {
		text, terr := field.InnerText()
		if terr != nil {
			return "", fmt.Errorf("failed to read country: %w", errors.Join(err, terr))
		}
		value = text
	}
	return strings.TrimSpace(value), nil
}

func (p *LocationsPage) SelectRandomTimezone() (string, error) {
	return p.pickRandom("Timezone")
}

// Create saves a location using the first country in the list and a random timezone.
func (p *LocationsPage) Create(l fixtures.Location) (fixtures.Location, error) {
	p.Log.Debug("creating location", "name", l.Name)
	if err := p.OpenCreateFlyout(); err != nil {
		return l, err
	}
	if err := p.FillName(l.Name); err != nil {
		return l, err
	}
	if err := p.FillAddress(l.Address); err != nil {
		return l, err
	}
	if err := p.FillCity(l.City); err != nil {
		return l, err
	}
	country, err := p.SelectCountry(0)
	if err != nil {
		return l, err
	}
	l.Country = country
	tz, err := p.SelectRandomTimezone()
	if err != nil {
		return l, err
	}
	l.Timezone = tz
	if err := p.Save(); err != nil {
		return l, err
	}
	return l, p.ExpectListed(l.Name)
}

func (p *LocationsPage) Delete(name string) error {
	return p.DeleteRow(name)
}
