package pages

import (
	"github.com/hr2-io/hr2-e2e/internal/fixtures"
)

type DepartmentsPage struct {
	*listScreen
}

func NewDepartmentsPage(base *Base) *DepartmentsPage {
	return &DepartmentsPage{listScreen: newListScreen(base, SectionDepartments, "Add Department")}
}

func (p *DepartmentsPage) FillName(name string) error { return p.fill("Department name", name) }

func (p *DepartmentsPage) FillCode(code string) error { return p.fill("Department code", code) }

// SelectRandomParent picks any parent department and returns its name.
func (p *DepartmentsPage) SelectRandomParent() (string, error) {
	return p.pickRandom("Parent department")
}

// Create fills and saves a new department, then checks it is listed. The
// returned value carries the parent that was picked.
func (p *DepartmentsPage) Create(d fixtures.Department) (fixtures.Department, error) {
	p.Log.Debug("creating department", "name", d.Name)
	if err := p.OpenCreateFlyout(); err != nil {
		return d, err
	}
	if err := p.FillName(d.Name); err != nil {
		return d, err
	}
	if err := p.FillCode(d.Code); err != nil {
		return d, err
	}
	parent, err := p.SelectRandomParent()
	if err != nil {
		return d, err
	}
	d.Parent = parent
	if err := p.Save(); err != nil {
		return d, err
	}
	return d, p.ExpectListed(d.Name)
}

func (p *DepartmentsPage) Rename(oldName, newName string) error {
	return p.rename(oldName, "Department name", newName)
}

func (p *DepartmentsPage) Delete(name string) error {
	return p.DeleteRow(name)
}
