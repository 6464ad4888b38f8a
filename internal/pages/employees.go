package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/fixtures"
)

// EmployeeField names a text input on the employee form.
type EmployeeField string

const (
	FieldFirstName  EmployeeField = "firstName"
	FieldLastName   EmployeeField = "lastName"
	FieldEmail      EmployeeField = "email"
	FieldPhone      EmployeeField = "phone"
	FieldEmployeeID EmployeeField = "employeeId"
	FieldStartDate  EmployeeField = "startDate"
)

const startDateLayout = "2006-01-02"

type EmployeesPage struct {
	*listScreen
}

func NewEmployeesPage(base *Base) *EmployeesPage {
	return &EmployeesPage{listScreen: newListScreen(base, SectionEmployees, "Add Employee")}
}

func fieldLabel(field EmployeeField) (string, error) {
	switch field {
	case FieldFirstName:
		return "First name", nil
	case FieldLastName:
		return "Last name", nil
	case FieldEmail:
		return "Work email", nil
	case FieldPhone:
		return "Phone", nil
	case FieldEmployeeID:
		return "Employee ID", nil
	case FieldStartDate:
		return "Start date", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// FillField types value into the named form field.
func (p *EmployeesPage) FillField(field EmployeeField, value string) error {
	label, err := fieldLabel(field)
	if err != nil {
		return err
	}
	return p.fill(label, value)
}

func (p *EmployeesPage) SelectRandomDepartment() (string, error) { return p.pickRandom("Department") }

func (p *EmployeesPage) SelectRandomPosition() (string, error) { return p.pickRandom("Position") }

func (p *EmployeesPage) SelectRandomLocation() (string, error) { return p.pickRandom("Location") }

func (p *EmployeesPage) fillAll(e fixtures.Employee) error {
	values := []struct {
		field EmployeeField
		value string
	}{
		{FieldFirstName, e.FirstName},
		{FieldLastName, e.LastName},
		{FieldEmail, e.Email},
		{FieldPhone, e.Phone},
		{FieldEmployeeID, e.EmployeeID},
		{FieldStartDate, e.StartDate.Format(startDateLayout)},
	}
	for _, v := range values {
		if err := p.FillField(v.field, v.value); err != nil {
			return err
		}
	}
	return nil
}

// Create fills the employee form, picks a random department, position and
// location, saves, and checks the employee is listed. The returned value
// records the picked options.
func (p *EmployeesPage) Create(e fixtures.Employee) (fixtures.Employee, error) {
	p.Log.Debug("creating employee", "name", e.FullName())
	if err := p.OpenCreateFlyout(); err != nil {
		return e, err
	}
	if err := p.fillAll(e); err != nil {
		return e, err
	}
	var err error
	if e.Department, err = p.SelectRandomDepartment(); err != nil {
		return e, err
	}
	if e.Position, err = p.SelectRandomPosition(); err != nil {
		return e, err
	}
	if e.Location, err = p.SelectRandomLocation(); err != nil {
		return e, err
	}
	if err := p.Save(); err != nil {
		return e, err
	}
	return e, p.ExpectListed(e.FullName())
}

// Profile is the employee detail panel.
func (p *EmployeesPage) Profile() playwright.Locator {
	return p.Page.Locator("[data-testid='employee-profile'], .employee-profile").First()
}

func (p *EmployeesPage) OpenProfile(name string) error {
	if err := p.Search(name); err != nil {
		return err
	}
	link := p.Row(name).GetByRole(*playwright.AriaRoleLink).First()
	if err := link.Click(); err != nil {
		return fmt.Errorf("failed to open profile of %q: %w", name, err)
	}
	return p.ExpectVisible(p.Profile(), "employee profile")
}

// ExpectProfile opens the employee's profile and checks the stored values.
func (p *EmployeesPage) ExpectProfile(e fixtures.Employee) error {
	if err := p.OpenProfile(e.FullName()); err != nil {
		return err
	}
	expected := []string{e.FullName(), e.Email, e.Department, e.Position, e.Location}
	for _, text := range expected {
		if text == "" {
			continue
		}
		if err := p.ExpectContainsText(p.Profile(), text); err != nil {
			return err
		}
	}
	return nil
}

// UpdateField edits one field of the employee called name.
func (p *EmployeesPage) UpdateField(name string, field EmployeeField, value string) error {
	if _, err := fieldLabel(field); err != nil {
		return err
	}
	if err := p.EditRow(name); err != nil {
		return err
	}
	if err := p.FillField(field, value); err != nil {
		return err
	}
	return p.Save()
}

func (p *EmployeesPage) Delete(name string) error {
	return p.DeleteRow(name)
}

// SubmitEmpty saves a blank employee form and returns the validation markers
// it produced. The flyout is left open.
func (p *EmployeesPage) SubmitEmpty() ([]ValidationIssue, error) {
	if err := p.OpenCreateFlyout(); err != nil {
		return nil, err
	}
	if err := p.ClickSave(); err != nil {
		return nil, err
	}
	p.waitForValidation(p.Flyout())
	return p.ScanValidation(p.Flyout())
}
