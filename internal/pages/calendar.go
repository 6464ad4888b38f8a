package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/fixtures"
)

const calendarDateLayout = "2006-01-02"

type CalendarPage struct {
	*Base
	sidebar *Sidebar

	Title      playwright.Locator
	NextButton playwright.Locator
	PrevButton playwright.Locator
	Events     playwright.Locator
}

func NewCalendarPage(base *Base) *CalendarPage {
	p := base.Page
	return &CalendarPage{
		Base:       base,
		sidebar:    NewSidebar(base),
		Title:      p.Locator("[data-testid='calendar-title'], .fc-toolbar-title").First(),
		NextButton: p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Next"}),
		PrevButton: p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Previous"}),
		Events:     p.Locator(".fc-event, .calendar-event"),
	}
}

func (c *CalendarPage) Open() error {
	return c.sidebar.GoTo(SectionCalendar)
}

func (c *CalendarPage) MonthTitle() (string, error) {
	text, err := c.Title.InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read calendar title: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// NextMonth moves forward and waits until the title changes.
func (c *CalendarPage) NextMonth() error { return c.flip(c.NextButton, "next") }

func (c *CalendarPage) PreviousMonth() error { return c.flip(c.PrevButton, "previous") }

func (c *CalendarPage) flip(button playwright.Locator, dir string) error {
	before, err := c.MonthTitle()
	if err != nil {
		return err
	}
	if err := button.Click(); err != nil {
		return fmt.Errorf("failed to go to %s month: %w", dir, err)
	}
	if err := c.assertions().Locator(c.Title).Not().ToHaveText(before); err != nil {
		return fmt.Errorf("calendar stayed on %q: %w", before, err)
	}
	return nil
}

// Day is the grid cell of day in the visible month.
func (c *CalendarPage) Day(day time.Time) playwright.Locator {
	return c.Page.Locator(fmt.Sprintf("td[data-date='%s']", day.Format(calendarDateLayout))).First()
}

func (c *CalendarPage) OpenCreateFlyout(day time.Time) error {
	c.DismissOverlays()
	if err := c.Day(day).Click(); err != nil {
		return fmt.Errorf("failed to open day %s: %w", day.Format(calendarDateLayout), err)
	}
	return c.ExpectVisible(c.Flyout(), "event flyout")
}

func (c *CalendarPage) field(label string) playwright.Locator {
	return c.Flyout().GetByLabel(label, playwright.LocatorGetByLabelOptions{Exact: playwright.Bool(true)})
}

func (c *CalendarPage) FillTitle(title string) error {
	if err := c.field("Event title").Fill(title); err != nil {
		return fmt.Errorf("failed to fill event title: %w", err)
	}
	return nil
}

func (c *CalendarPage) SelectRandomEventType() (string, error) {
	text, err := c.SelectRandomFromDropdown(c.field("Event type"), c.MenuItems())
	if err != nil {
		return "", fmt.Errorf("select event type: %w", err)
	}
	return text, nil
}

func (c *CalendarPage) SetAllDay(allDay bool) error {
	if err := c.field("All day").SetChecked(allDay); err != nil {
		return fmt.Errorf("failed to set all day: %w", err)
	}
	return nil
}

func (c *CalendarPage) Save() error {
	if err := c.button(c.Flyout(), "Save").Click(); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return c.ExpectHidden(c.Flyout(), "event flyout")
}

// Event is the rendered calendar entry titled title.
func (c *CalendarPage) Event(title string) playwright.Locator {
	return c.Events.Filter(playwright.LocatorFilterOptions{HasText: title}).First()
}

// CreateEvent adds ev on its day with a random event type, which is recorded
// in the returned value.
func (c *CalendarPage) CreateEvent(ev fixtures.Event) (fixtures.Event, error) {
	c.Log.Debug("creating event", "title", ev.Title, "day", ev.Day.Format(calendarDateLayout))
	if err := c.OpenCreateFlyout(ev.Day); err != nil {
		return ev, err
	}
	if err := c.FillTitle(ev.Title); err != nil {
		return ev, err
	}
	kind, err := c.SelectRandomEventType()
	if err != nil {
		return ev, err
	}
	ev.Type = kind
	if err := c.SetAllDay(ev.AllDay); err != nil {
		return ev, err
	}
	if err := c.Save(); err != nil {
		return ev, err
	}
	return ev, c.ExpectEvent(ev.Title)
}

func (c *CalendarPage) ExpectEvent(title string) error {
	return c.ExpectVisible(c.Event(title), fmt.Sprintf("event %q", title))
}

func (c *CalendarPage) ExpectNoEvent(title string) error {
	return c.ExpectHidden(c.Event(title), fmt.Sprintf("event %q", title))
}

func (c *CalendarPage) DeleteEvent(title string) error {
	if err := c.Event(title).Click(); err != nil {
		return fmt.Errorf("failed to open event %q: %w", title, err)
	}
	if err := c.ExpectVisible(c.Flyout(), "event flyout"); err != nil {
		return err
	}
	if err := c.button(c.Flyout(), "Delete").Click(); err != nil {
		return fmt.Errorf("failed to delete event %q: %w", title, err)
	}
	c.ConfirmDialog()
	return c.ExpectNoEvent(title)
}
