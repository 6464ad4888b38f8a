// Package fixtures describes the throwaway entities the suite types into the
// application and generates unique instances of them.
package fixtures

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hr2-io/hr2-e2e/internal/shortid"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// now is swapped out by tests.
var now = time.Now

// today is midnight of the current calendar day in the clock's own zone.
func today() time.Time {
	t := now()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Catalog is the YAML-described source of test data templates.
type Catalog struct {
	Prefixes struct {
		FirstName  string `yaml:"first_name"`
		LastName   string `yaml:"last_name"`
		Department string `yaml:"department"`
		Position   string `yaml:"position"`
		Location   string `yaml:"location"`
		Portal     string `yaml:"portal"`
		Event      string `yaml:"event"`
	} `yaml:"prefixes"`
	EmailDomain          string `yaml:"email_domain"`
	PhonePrefix          string `yaml:"phone_prefix"`
	DepartmentCodeLength int    `yaml:"department_code_length"`
	Location             struct {
		Address string `yaml:"address"`
		City    string `yaml:"city"`
	} `yaml:"location"`
	PortalWelcome string            `yaml:"portal_welcome"`
	EventTypes    []string          `yaml:"event_types"`
	BulkActions   map[string]string `yaml:"bulk_actions"`
}

type Employee struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	EmployeeID string
	StartDate  time.Time
	// Filled in by the page object from the dropdown items it picked.
	Department string
	Position   string
	Location   string
}

// FullName is the name the employee list renders.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Department struct {
	Name   string
	Code   string
	Parent string
}

type Position struct {
	Title      string
	Code       string
	Department string
}

type Location struct {
	Name     string
	Address  string
	City     string
	Country  string
	Timezone string
}

type Portal struct {
	Name       string
	Welcome    string
	Department string
	Published  bool
}

type Event struct {
	Title  string
	Day    time.Time
	Type   string
	AllDay bool
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded fixture catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file; an empty path yields the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog on top of the embedded defaults, so override files
// only need the keys they change.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(defaultCatalog, c); err != nil {
		return nil, fmt.Errorf("failed to parse default fixtures: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	var problems []string
	if c.EmailDomain == "" {
		problems = append(problems, "email_domain is empty")
	}
	if c.DepartmentCodeLength < 2 {
		problems = append(problems, "department_code_length must be at least 2")
	}
	if len(c.EventTypes) == 0 {
		problems = append(problems, "event_types is empty")
	}
	if len(problems) > 0 {
		return errors.New("invalid fixtures: " + strings.Join(problems, "; "))
	}
	return nil
}

// BulkActionLabel returns the menu label configured for key.
func (c *Catalog) BulkActionLabel(key string) (string, bool) {
	label, ok := c.BulkActions[key]
	return label, ok && label != ""
}

func (c *Catalog) NewEmployee() Employee {
	id := shortid.New()
	return Employee{
		FirstName:  c.Prefixes.FirstName + "_" + id,
		LastName:   c.Prefixes.LastName + "_" + id,
		Email:      strings.ToLower("e2e." + id + "@" + c.EmailDomain),
		Phone:      c.PhonePrefix + digits(id, 7),
		EmployeeID: strings.ToUpper(id),
		StartDate:  today(),
	}
}

func (c *Catalog) NewDepartment() Department {
	id := shortid.New()
	return Department{
		Name: c.Prefixes.Department + "_" + id,
		Code: strings.ToUpper(lastN(id, c.DepartmentCodeLength)),
	}
}

func (c *Catalog) NewPosition() Position {
	id := shortid.New()
	return Position{
		Title: c.Prefixes.Position + "_" + id,
		Code:  strings.ToUpper(lastN(id, c.DepartmentCodeLength)),
	}
}

func (c *Catalog) NewLocation() Location {
	return Location{
		Name:    shortid.Name(c.Prefixes.Location),
		Address: c.Location.Address,
		City:    c.Location.City,
	}
}

func (c *Catalog) NewPortal() Portal {
	return Portal{
		Name:    shortid.Name(c.Prefixes.Portal),
		Welcome: c.PortalWelcome,
	}
}

func (c *Catalog) NewEvent(day time.Time) Event {
	return Event{
		Title:  shortid.Name(c.Prefixes.Event),
		Day:    day,
		AllDay: true,
	}
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// digits maps the trailing characters of id onto n decimal digits.
func digits(id string, n int) string {
	var b strings.Builder
	for i := len(id) - 1; i >= 0 && b.Len() < n; i-- {
		b.WriteByte('0' + id[i]%10)
	}
	for b.Len() < n {
		b.WriteByte('0')
	}
	return b.String()
}
