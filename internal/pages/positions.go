package pages

import (
	"github.com/hr2-io/hr2-e2e/internal/fixtures"
)

type PositionsPage struct {
	*listScreen
}

func NewPositionsPage(base *Base) *PositionsPage {
	return &PositionsPage{listScreen: newListScreen(base, SectionPositions, "Add Position")}
}

func (p *PositionsPage) FillTitle(title string) error { return p.fill("Position title", title) }

func (p *PositionsPage) FillCode(code string) error { return p.fill("Position code", code) }

func (p *PositionsPage) SelectRandomDepartment() (string, error) {
	return p.pickRandom("Department")
}

func (p *PositionsPage) Create(pos fixtures.Position) (fixtures.Position, error) {
	p.Log.Debug("creating position", "title", pos.Title)
	if err := p.OpenCreateFlyout(); err != nil {
		return pos, err
	}
	if err := p.FillTitle(pos.Title); err != nil {
		return pos, err
	}
	if err := p.FillCode(pos.Code); err != nil {
		return pos, err
	}
	dept, err := p.SelectRandomDepartment()
	if err != nil {
		return pos, err
	}
	pos.Department = dept
	if err := p.Save(); err != nil {
		return pos, err
	}
	if err := p.ExpectListed(pos.Title); err != nil {
		return pos, err
	}
	return pos, p.ExpectContainsText(p.Row(pos.Title), dept)
}

func (p *PositionsPage) Rename(oldTitle, newTitle string) error {
	return p.rename(oldTitle, "Position title", newTitle)
}

func (p *PositionsPage) Delete(title string) error {
	return p.DeleteRow(title)
}
