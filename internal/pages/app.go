package pages

import (
	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/config"
	"github.com/hr2-io/hr2-e2e/internal/fixtures"
)

// App bundles every page object bound to one browser page.
type App struct {
	Base        *Base
	Login       *LoginPage
	Navbar      *Navbar
	Sidebar     *Sidebar
	Employees   *EmployeesPage
	Departments *DepartmentsPage
	Positions   *PositionsPage
	Locations   *LocationsPage
	Portals     *PortalsPage
	Bulk        *BulkActions
	Calendar    *CalendarPage
}

func NewApp(page playwright.Page, logger *log.Logger, cfg *config.Config, catalog *fixtures.Catalog) *App {
	if catalog == nil {
		catalog = fixtures.Default()
	}
	base := NewBase(page, logger, cfg)
	return &App{
		Base:        base,
		Login:       NewLoginPage(base, cfg),
		Navbar:      NewNavbar(base),
		Sidebar:     NewSidebar(base),
		Employees:   NewEmployeesPage(base),
		Departments: NewDepartmentsPage(base),
		Positions:   NewPositionsPage(base),
		Locations:   NewLocationsPage(base),
		Portals:     NewPortalsPage(base),
		Bulk:        NewBulkActions(base, catalog),
		Calendar:    NewCalendarPage(base),
	}
}
