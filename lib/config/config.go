package config

import (
	"os"

	"github.com/gravitational/configure"
	"github.com/gravitational/trace"
	validator "gopkg.in/go-playground/validator.v9"
	yaml "gopkg.in/yaml.v2"
)

// Credentials is the immutable account identity under test.
// Both values are required, sourced from the environment only and never
// defaulted: a missing secret aborts the run before any browser starts.
type Credentials struct {
	Email    string `yaml:"-" env:"HUDL_EMAIL"`
	Password string `yaml:"-" env:"HUDL_PASSWORD"`
}

// URLs defines the application entry points the suite navigates between
type URLs struct {
	Landing string `yaml:"landing_url" env:"HUDL_LANDING_URL" validate:"required,url"`
	Login   string `yaml:"login_url" env:"HUDL_LOGIN_URL" validate:"required,url"`
	Logout  string `yaml:"logout_url" env:"HUDL_LOGOUT_URL" validate:"required,url"`
}

// TestConfig aggregates everything the suite needs to run: the account under
// test, the application URLs and the browser session scope.
type TestConfig struct {
	// Login is the account under test, environment-only
	Login Credentials `yaml:"-"`
	// URLs are the application entry points, file- or environment-provided
	URLs URLs `yaml:"urls"`
	// Scope selects the browser session lifetime, "test" or "suite"
	Scope string `yaml:"scope" env:"HUDL_SESSION_SCOPE" validate:"omitempty,eq=test|eq=suite"`
	// Headless runs the browser without a display
	Headless bool `yaml:"headless"`
}

const (
	// ScopeTest creates a fresh browser session for every scenario
	ScopeTest = "test"
	// ScopeSuite shares one browser session across the whole suite
	ScopeSuite = "suite"
)

const (
	defaultLandingURL = "https://www.hudl.com/"
	defaultLoginURL   = "https://www.hudl.com/login"
	defaultLogoutURL  = "https://www.hudl.com/logout"
)

// configFileEnv optionally points at a YAML file with URL overrides.
// Credentials are deliberately not read from files.
const configFileEnv = "HUDL_CONFIG_FILE"

// Load reads the test configuration: an optional YAML file named by
// HUDL_CONFIG_FILE first, then the process environment on top of it.
// Returns a ConfigurationError (trace.BadParameter) when a required
// credential is missing or a value fails validation.
func Load() (*TestConfig, error) {
	var cfg TestConfig
	if path := os.Getenv(configFileEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, trace.ConvertSystemError(err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, trace.BadParameter("failed to parse config file %q: %v", path, err)
		}
	}
	if err := configure.ParseEnv(&cfg); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &cfg, nil
}

// CheckAndSetDefaults validates the configuration and fills in defaults for
// everything except the credentials
func (r *TestConfig) CheckAndSetDefaults() error {
	if r.Login.Email == "" {
		return trace.BadParameter("required environment variable HUDL_EMAIL is not set")
	}
	if r.Login.Password == "" {
		return trace.BadParameter("required environment variable HUDL_PASSWORD is not set")
	}
	if r.URLs.Landing == "" {
		r.URLs.Landing = defaultLandingURL
	}
	if r.URLs.Login == "" {
		r.URLs.Login = defaultLoginURL
	}
	if r.URLs.Logout == "" {
		r.URLs.Logout = defaultLogoutURL
	}
	if r.Scope == "" {
		r.Scope = ScopeTest
	}
	if err := validator.New().Struct(r); err != nil {
		return trace.BadParameter("invalid configuration: %v", err)
	}
	return nil
}

// IsConfigurationError reports whether err is fatal misconfiguration
// (a missing credential or an invalid setting)
func IsConfigurationError(err error) bool {
	return trace.IsBadParameter(err)
}
