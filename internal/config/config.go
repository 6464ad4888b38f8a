package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment keys accepted by the suite. The set is fixed; configuration can
// only supply URLs and credentials for these keys.
const (
	EnvQA   = "qa"
	EnvStg  = "stg"
	EnvProd = "prod"
)

const (
	// ConfigName is the base name of the optional YAML file searched for by Load.
	ConfigName = "e2e"
	// EnvPrefix prefixes every environment variable override (HR2_BROWSER_HEADLESS, ...).
	EnvPrefix = "HR2"
)

var (
	ErrInvalidEnvironment       = errors.New("invalid environment")
	ErrEnvironmentNotConfigured = errors.New("environment not configured")
	ErrMissingCredentials       = errors.New("missing credentials")
)

// Config is the complete suite configuration. It is built once at startup and
// passed explicitly to everything that needs it.
type Config struct {
	Environments map[string]Environment `mapstructure:"environments"`
	Browser      BrowserConfig          `mapstructure:"browser"`
	Navigation   NavigationConfig       `mapstructure:"navigation"`
	Artifacts    ArtifactsConfig        `mapstructure:"artifacts"`
	Logging      LoggingConfig          `mapstructure:"logging"`
	FixturesFile string                 `mapstructure:"fixtures_file"`
}

type Environment struct {
	URL      string `mapstructure:"url"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type BrowserConfig struct {
	Name           string        `mapstructure:"name"`
	Headless       bool          `mapstructure:"headless"`
	SlowMo         time.Duration `mapstructure:"slow_mo"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ViewportWidth  int           `mapstructure:"viewport_width"`
	ViewportHeight int           `mapstructure:"viewport_height"`
	SkipInstall    bool          `mapstructure:"skip_install"`
}

type NavigationConfig struct {
	Retries     int           `mapstructure:"retries"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
	MenuTimeout time.Duration `mapstructure:"menu_timeout"`
}

type ArtifactsConfig struct {
	Dir         string `mapstructure:"dir"`
	Screenshots bool   `mapstructure:"screenshots"`
	Videos      bool   `mapstructure:"videos"`
	Traces      bool   `mapstructure:"traces"`
}

type LoggingConfig struct {
	Level           string `mapstructure:"level"`
	ReportTimestamp bool   `mapstructure:"report_timestamp"`
}

// Credential is an email/password pair typed into the login form.
type Credential struct {
	Email    string
	Password string
}

// KnownEnvironments returns the accepted environment keys in display order.
func KnownEnvironments() []string {
	return []string{EnvQA, EnvStg, EnvProd}
}

func isKnownEnvironment(env string) bool {
	for _, k := range KnownEnvironments() {
		if k == env {
			return true
		}
	}
	return false
}

// InvalidCredential returns the fixed pair used by negative login scenarios.
func InvalidCredential() Credential {
	return Credential{Email: "invalid@test.com", Password: "WrongPassword123!"}
}

func setDefaults(v *viper.Viper) {
	for _, env := range KnownEnvironments() {
		v.SetDefault("environments."+env+".url", "")
		v.SetDefault("environments."+env+".email", "")
		v.SetDefault("environments."+env+".password", "")
	}

	v.SetDefault("browser.name", "chromium")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", 0)
	v.SetDefault("browser.timeout", 30*time.Second)
	v.SetDefault("browser.viewport_width", 1280)
	v.SetDefault("browser.viewport_height", 720)
	v.SetDefault("browser.skip_install", false)

	v.SetDefault("navigation.retries", 3)
	v.SetDefault("navigation.retry_delay", 2*time.Second)
	v.SetDefault("navigation.menu_timeout", 5*time.Second)

	v.SetDefault("artifacts.dir", "./test-results")
	v.SetDefault("artifacts.screenshots", true)
	v.SetDefault("artifacts.videos", false)
	v.SetDefault("artifacts.traces", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.report_timestamp", true)

	v.SetDefault("fixtures_file", "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load builds the configuration from defaults, an optional e2e.yaml found in
// one of searchPaths, an optional .env file in the same paths, and HR2_*
// environment variables, in increasing order of precedence.
func Load(searchPaths ...string) (*Config, error) {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}

	v := newViper()
	v.SetConfigName(ConfigName)
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for _, p := range searchPaths {
		if err := preloadDotEnv(filepath.Join(p, ".env")); err != nil {
			return nil, err
		}
	}

	return unmarshal(v)
}

// LoadFile loads configuration from a specific YAML file plus environment
// overrides, including a .env file next to it.
func LoadFile(configFile string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := preloadDotEnv(filepath.Join(filepath.Dir(configFile), ".env")); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// preloadDotEnv copies KEY=VALUE pairs from a .env file into the process
// environment. Variables that are already set are left alone.
func preloadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	dv := viper.New()
	dv.SetConfigFile(path)
	dv.SetConfigType("env")
	if err := dv.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, key := range dv.AllKeys() {
		name := strings.ToUpper(key)
		val := dv.GetString(key)
		if val == "" || os.Getenv(name) != "" {
			continue
		}
		if err := os.Setenv(name, val); err != nil {
			return fmt.Errorf("failed to export %s: %w", name, err)
		}
	}
	return nil
}

// ResolveURL maps an environment key to its base URL.
func (c *Config) ResolveURL(env string) (string, error) {
	e, err := c.environment(env)
	if err != nil {
		return "", err
	}
	if e.URL == "" {
		return "", fmt.Errorf("%w: %q has no url", ErrEnvironmentNotConfigured, env)
	}
	return strings.TrimRight(e.URL, "/"), nil
}

// Credential returns the login pair configured for env.
func (c *Config) Credential(env string) (Credential, error) {
	e, err := c.environment(env)
	if err != nil {
		return Credential{}, err
	}
	if e.Email == "" || e.Password == "" {
		return Credential{}, fmt.Errorf("%w for environment %q", ErrMissingCredentials, env)
	}
	return Credential{Email: e.Email, Password: e.Password}, nil
}

func (c *Config) environment(env string) (Environment, error) {
	if !isKnownEnvironment(env) {
		return Environment{}, fmt.Errorf("%w: %q (expected one of %s)",
			ErrInvalidEnvironment, env, strings.Join(KnownEnvironments(), ", "))
	}
	return c.Environments[env], nil
}
