package pages

import (
	"errors"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"

	"github.com/hr2-io/hr2-e2e/internal/config"
	"github.com/hr2-io/hr2-e2e/internal/logging"
)

// The fakes embed the playwright interfaces and override only what the page
// objects call; anything else panics on the nil embedded value.

var errNoElement = errors.New("fake: no such element")

// locator is embedded under its own name so fakeLocator can define Locator().
type locator = playwright.Locator

type fakeLocator struct {
	locator

	key      string
	elem     bool
	items    []*fakeLocator
	children map[string]*fakeLocator

	text     string
	value    string
	visible  bool
	clickErr error
	waitErr  error
	countErr error
	fillErr  error
	textErr  error
	valueErr error

	clicks  int
	checked *bool
	fills   []string
	presses []string
	waits   []playwright.WaitForSelectorState
}

func newElem(text string, visible bool) *fakeLocator {
	return &fakeLocator{elem: true, text: text, visible: visible}
}

func newList(items ...*fakeLocator) *fakeLocator {
	return &fakeLocator{items: items}
}

func missing() *fakeLocator {
	return &fakeLocator{key: "missing", clickErr: errNoElement, waitErr: errNoElement, textErr: errNoElement, fillErr: errNoElement}
}

func (f *fakeLocator) child(key string) *fakeLocator {
	if f.children == nil {
		f.children = map[string]*fakeLocator{}
	}
	c, ok := f.children[key]
	if !ok {
		c = &fakeLocator{key: key}
		f.children[key] = c
	}
	return c
}

func (f *fakeLocator) set(key string, l *fakeLocator) *fakeLocator {
	f.child(key)
	l.key = key
	f.children[key] = l
	return l
}

func (f *fakeLocator) Click(...playwright.LocatorClickOptions) error {
	f.clicks++
	return f.clickErr
}

func (f *fakeLocator) WaitFor(opts ...playwright.LocatorWaitForOptions) error {
	if len(opts) > 0 && opts[0].State != nil {
		f.waits = append(f.waits, *opts[0].State)
	}
	return f.waitErr
}

func (f *fakeLocator) Count() (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	if f.elem {
		return 1, nil
	}
	return len(f.items), nil
}

func (f *fakeLocator) Nth(i int) playwright.Locator {
	if f.elem && i == 0 {
		return f
	}
	if i >= 0 && i < len(f.items) {
		return f.items[i]
	}
	return missing()
}

func (f *fakeLocator) First() playwright.Locator {
	return f.Nth(0)
}

func (f *fakeLocator) InnerText(...playwright.LocatorInnerTextOptions) (string, error) {
	return f.text, f.textErr
}

func (f *fakeLocator) InputValue(...playwright.LocatorInputValueOptions) (string, error) {
	if f.valueErr != nil {
		return "", f.valueErr
	}
	return f.value, f.textErr
}

func (f *fakeLocator) IsVisible(...playwright.LocatorIsVisibleOptions) (bool, error) {
	return f.visible, nil
}

func (f *fakeLocator) Fill(value string, _ ...playwright.LocatorFillOptions) error {
	f.fills = append(f.fills, value)
	return f.fillErr
}

func (f *fakeLocator) Press(key string, _ ...playwright.LocatorPressOptions) error {
	f.presses = append(f.presses, key)
	return nil
}

func (f *fakeLocator) Check(...playwright.LocatorCheckOptions) error {
	f.checked = playwright.Bool(true)
	return f.clickErr
}

func (f *fakeLocator) SetChecked(checked bool, _ ...playwright.LocatorSetCheckedOptions) error {
	f.checked = playwright.Bool(checked)
	return f.clickErr
}

func (f *fakeLocator) Locator(selector interface{}, _ ...playwright.LocatorLocatorOptions) playwright.Locator {
	return f.child(fmt.Sprint(selector))
}

func (f *fakeLocator) GetByLabel(text interface{}, _ ...playwright.LocatorGetByLabelOptions) playwright.Locator {
	return f.child("label:" + fmt.Sprint(text))
}

func (f *fakeLocator) GetByRole(role playwright.AriaRole, opts ...playwright.LocatorGetByRoleOptions) playwright.Locator {
	var name interface{}
	if len(opts) > 0 {
		name = opts[0].Name
	}
	return f.child(roleKey(role, name))
}

func (f *fakeLocator) Filter(opts ...playwright.LocatorFilterOptions) playwright.Locator {
	var text interface{}
	if len(opts) > 0 {
		text = opts[0].HasText
	}
	return f.child("filter:" + fmt.Sprint(text))
}

func roleKey(role playwright.AriaRole, name interface{}) string {
	if name == nil {
		return "role:" + string(role)
	}
	return fmt.Sprintf("role:%s:%v", role, name)
}

type fakeKeyboard struct {
	playwright.Keyboard
	presses []string
	err     error
}

func (k *fakeKeyboard) Press(key string, _ ...playwright.KeyboardPressOptions) error {
	k.presses = append(k.presses, key)
	return k.err
}

type fakePage struct {
	playwright.Page

	root     *fakeLocator
	keyboard *fakeKeyboard

	gotoErrs []error
	gotoURLs []string

	download    *fakeDownload
	downloadErr error

	// exactRoles records the keys whose role lookup asked for an exact name.
	exactRoles map[string]bool
}

func newFakePage() *fakePage {
	return &fakePage{root: &fakeLocator{key: "page"}, keyboard: &fakeKeyboard{}}
}

func (p *fakePage) Goto(url string, _ ...playwright.PageGotoOptions) (playwright.Response, error) {
	n := len(p.gotoURLs)
	p.gotoURLs = append(p.gotoURLs, url)
	if n < len(p.gotoErrs) {
		return nil, p.gotoErrs[n]
	}
	return nil, nil
}

func (p *fakePage) Locator(selector string, _ ...playwright.PageLocatorOptions) playwright.Locator {
	return p.root.child(selector)
}

func (p *fakePage) GetByRole(role playwright.AriaRole, opts ...playwright.PageGetByRoleOptions) playwright.Locator {
	var name interface{}
	exact := false
	if len(opts) > 0 {
		name = opts[0].Name
		exact = opts[0].Exact != nil && *opts[0].Exact
	}
	key := roleKey(role, name)
	if exact {
		if p.exactRoles == nil {
			p.exactRoles = map[string]bool{}
		}
		p.exactRoles[key] = true
	}
	return p.root.child(key)
}

// ExpectDownload runs cb and hands back the prepared download.
func (p *fakePage) ExpectDownload(cb func() error, _ ...playwright.PageExpectDownloadOptions) (playwright.Download, error) {
	if err := cb(); err != nil {
		return nil, err
	}
	if p.downloadErr != nil {
		return nil, p.downloadErr
	}
	return p.download, nil
}

func (p *fakePage) GetByText(text interface{}, _ ...playwright.PageGetByTextOptions) playwright.Locator {
	return p.root.child("text:" + fmt.Sprint(text))
}

func (p *fakePage) Keyboard() playwright.Keyboard {
	return p.keyboard
}

// set registers l under a page-level key (selector, role:..., text:...).
func (p *fakePage) set(key string, l *fakeLocator) *fakeLocator {
	return p.root.set(key, l)
}

func (p *fakePage) get(key string) *fakeLocator {
	return p.root.child(key)
}

// fakeDownload saves content to whatever path it is given.
type fakeDownload struct {
	playwright.Download
	name    string
	content []byte
	saved   []string
}

func (d *fakeDownload) SuggestedFilename() string {
	return d.name
}

func (d *fakeDownload) SaveAs(path string) error {
	d.saved = append(d.saved, path)
	return os.WriteFile(path, d.content, 0o600)
}

func testConfig() *config.Config {
	return &config.Config{
		Environments: map[string]config.Environment{
			config.EnvQA:  {URL: "https://qa.hr2.test"},
			config.EnvStg: {URL: "https://stg.hr2.test/", Email: "admin@hr2.test", Password: "secret"},
		},
		Navigation: config.NavigationConfig{Retries: 3},
	}
}

func newTestBase(page *fakePage) *Base {
	return NewBase(page, logging.Discard(), testConfig())
}
