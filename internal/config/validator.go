package config

import (
	"fmt"
	"strings"
)

var supportedBrowsers = []string{"chromium", "firefox", "webkit"}

// Validator collects configuration problems. Errors fail validation,
// warnings are only reported.
type Validator struct {
	config   *Config
	errors   []string
	warnings []string
}

func NewValidator(cfg *Config) *Validator {
	return &Validator{
		config:   cfg,
		errors:   []string{},
		warnings: []string{},
	}
}

func (v *Validator) Validate() error {
	v.validateBrowser()
	v.validateNavigation()
	v.validateEnvironments()

	if len(v.errors) > 0 {
		return fmt.Errorf("config validation failed:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

// Warnings returns the non-fatal findings of the last Validate call.
func (v *Validator) Warnings() []string {
	return v.warnings
}

func (v *Validator) validateBrowser() {
	b := v.config.Browser
	known := false
	for _, name := range supportedBrowsers {
		if b.Name == name {
			known = true
			break
		}
	}
	if !known {
		v.addError(fmt.Sprintf("browser.name %q is not one of %s", b.Name, strings.Join(supportedBrowsers, ", ")))
	}
	if b.Timeout <= 0 {
		v.addError("browser.timeout must be positive")
	}
	if b.ViewportWidth <= 0 || b.ViewportHeight <= 0 {
		v.addError("browser viewport must be positive")
	}
}

func (v *Validator) validateNavigation() {
	n := v.config.Navigation
	if n.Retries < 1 {
		v.addError("navigation.retries must be at least 1")
	}
	if n.RetryDelay < 0 {
		v.addError("navigation.retry_delay must not be negative")
	}
	if n.MenuTimeout <= 0 {
		v.addError("navigation.menu_timeout must be positive")
	}
}

func (v *Validator) validateEnvironments() {
	for name := range v.config.Environments {
		if !isKnownEnvironment(name) {
			v.addWarning(fmt.Sprintf("environments.%s is ignored (expected one of %s)", name, strings.Join(KnownEnvironments(), ", ")))
		}
	}
	for _, name := range KnownEnvironments() {
		e := v.config.Environments[name]
		if e.URL == "" {
			v.addWarning(fmt.Sprintf("environments.%s.url is not set", name))
			continue
		}
		if !strings.HasPrefix(e.URL, "http://") && !strings.HasPrefix(e.URL, "https://") {
			v.addError(fmt.Sprintf("environments.%s.url must start with http:// or https://", name))
		}
	}
}

func (v *Validator) addError(message string) {
	v.errors = append(v.errors, "   - "+message)
}

func (v *Validator) addWarning(message string) {
	v.warnings = append(v.warnings, message)
}

// Validate runs a Validator over the configuration and drops its warnings.
// Commands that talk to a user should use NewValidator and report Warnings.
func (c *Config) Validate() error {
	return NewValidator(c).Validate()
}
