package web

import (
	"context"
	"time"

	"github.com/kalenwallin/hudltest/lib/config"
	"github.com/kalenwallin/hudltest/lib/defaults"
	"github.com/kalenwallin/hudltest/lib/wait"

	"github.com/cenkalti/backoff"
	"github.com/gravitational/trace"
	"github.com/sclevine/agouti"
	"github.com/sirupsen/logrus"
)

// Scope defines the lifetime boundary of a browser session
type Scope string

const (
	// ScopeTest tears the session down after every scenario for full isolation
	ScopeTest = Scope(config.ScopeTest)
	// ScopeSuite keeps one session alive across the whole suite, trading
	// isolation for one browser launch instead of one per scenario
	ScopeSuite = Scope(config.ScopeSuite)
)

// Session is one live ownership of a browser driver connection
type Session struct {
	// Page drives the browser tab this session owns
	Page *agouti.Page

	driver   browserDriver
	released bool
}

// Observe captures the current URL and title for failure diagnostics.
// Lookup errors leave the respective field empty, a half-captured state
// still beats none when the browser is wedged.
func (s *Session) Observe() wait.State {
	var state wait.State
	if s.Page == nil {
		return state
	}
	state.URL, _ = s.Page.URL()
	state.Title, _ = s.Page.Title()
	return state
}

// browserDriver is the subset of agouti.WebDriver the manager relies on
type browserDriver interface {
	Start() error
	Stop() error
	NewPage(options ...agouti.Option) (*agouti.Page, error)
}

// Manager owns the browser driver lifecycle for a configured scope: at most
// one live Session exists per manager, a new scenario within a suite scope
// reuses it rather than launching another browser.
type Manager struct {
	scope    Scope
	loginURL string
	log      logrus.FieldLogger

	newDriver func() browserDriver
	navigate  func(*agouti.Page, string) error

	session *Session
}

// New returns a session manager for the configured scope
func New(conf *config.TestConfig) *Manager {
	return &Manager{
		scope:    Scope(conf.Scope),
		loginURL: conf.URLs.Login,
		log:      logrus.StandardLogger().WithField("scope", conf.Scope),
		newDriver: func() browserDriver {
			return newChromeDriver(conf.Headless)
		},
		navigate: func(page *agouti.Page, url string) error {
			return page.Navigate(url)
		},
	}
}

// Scope returns the configured session scope
func (m *Manager) Scope() Scope {
	return m.scope
}

// Acquire returns the session for the configured scope. Under suite scope a
// live session is reused after restoring it to the login page; otherwise a
// browser is launched, a page opened and navigated to the login page.
// Bootstrap failures are SessionErrors.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	if m.session != nil && !m.session.released {
		if m.scope == ScopeSuite {
			m.log.Debug("reusing live session")
			if err := m.navigate(m.session.Page, m.loginURL); err != nil {
				return nil, trace.ConnectionProblem(err, "failed to reset session to %v", m.loginURL)
			}
			return m.session, nil
		}
		// a per-test session survived its scenario, dispose of it before
		// handing out a fresh one
		m.log.Warn("found leaked session, releasing")
		if err := m.Release(m.session); err != nil {
			return nil, trace.Wrap(err)
		}
	}

	driver := m.newDriver()
	if err := m.start(ctx, driver); err != nil {
		return nil, trace.ConnectionProblem(err, "failed to start browser driver")
	}

	page, err := driver.NewPage()
	if err != nil {
		if errStop := driver.Stop(); errStop != nil {
			m.log.WithError(errStop).Warn("failed to stop browser driver")
		}
		return nil, trace.ConnectionProblem(err, "failed to open browser page")
	}

	if err := m.navigate(page, m.loginURL); err != nil {
		if errStop := driver.Stop(); errStop != nil {
			m.log.WithError(errStop).Warn("failed to stop browser driver")
		}
		return nil, trace.ConnectionProblem(err, "failed to navigate to %v", m.loginURL)
	}

	m.session = &Session{
		Page:   page,
		driver: driver,
	}
	m.log.Info("browser session acquired")
	return m.session, nil
}

// Release closes the session's driver connection and clears the session
// record. Safe to call from multiple exit paths, only the first call stops
// the driver.
func (m *Manager) Release(session *Session) error {
	if session == nil || session.released {
		return nil
	}
	session.released = true
	if m.session == session {
		m.session = nil
	}
	m.log.Info("browser session released")
	return trace.Wrap(session.driver.Stop())
}

// Close disposes of any session still live at the end of the owning scope
func (m *Manager) Close() error {
	return m.Release(m.session)
}

// start launches the browser driver process, retrying transient startup
// failures with exponential backoff
func (m *Manager) start(ctx context.Context, driver browserDriver) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = defaults.DriverStartTimeout
	err := backoff.Retry(func() error {
		if err := driver.Start(); err != nil {
			m.log.WithError(err).Warn("browser driver failed to start, retrying")
			return err
		}
		return nil
	}, backoff.WithContext(b, ctx))
	return trace.Wrap(err)
}

func newChromeDriver(headless bool) browserDriver {
	args := []string{"--no-sandbox", "--disable-gpu", "--window-size=1280,720"}
	if headless {
		args = append(args, "--headless")
	}
	return agouti.ChromeDriver(
		agouti.ChromeOptions("args", args),
		agouti.Timeout(int(defaults.PageLoadTimeout / time.Second)),
	)
}

// IsSessionError reports whether err means the browser session could not be
// created or navigated
func IsSessionError(err error) bool {
	return trace.IsConnectionProblem(err)
}
