package web

import (
	"context"
	"testing"

	"github.com/kalenwallin/hudltest/lib/config"
	"github.com/kalenwallin/hudltest/lib/xlog"

	"github.com/gravitational/trace"
	"github.com/sclevine/agouti"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeDriver stands in for the chromedriver process so lifecycle discipline
// can be verified without a browser
type fakeDriver struct {
	starts     int
	stops      int
	failStarts int
}

func (d *fakeDriver) Start() error {
	d.starts++
	if d.starts <= d.failStarts {
		return trace.ConnectionProblem(nil, "chromedriver not ready")
	}
	return nil
}

func (d *fakeDriver) Stop() error {
	d.stops++
	return nil
}

func (d *fakeDriver) NewPage(options ...agouti.Option) (*agouti.Page, error) {
	return &agouti.Page{}, nil
}

func newTestManager(t *testing.T, scope Scope) (*Manager, *[]*fakeDriver) {
	drivers := &[]*fakeDriver{}
	m := &Manager{
		scope:    scope,
		loginURL: "https://www.hudl.com/login",
		log:      xlog.NewLogger(t, logrus.Fields{"scope": scope}),
		newDriver: func() browserDriver {
			d := &fakeDriver{}
			*drivers = append(*drivers, d)
			return d
		},
		navigate: func(*agouti.Page, string) error { return nil },
	}
	return m, drivers
}

func TestSuiteScopeReusesSession(t *testing.T) {
	m, drivers := newTestManager(t, ScopeSuite)
	defer m.Close()

	var navigations []string
	m.navigate = func(_ *agouti.Page, url string) error {
		navigations = append(navigations, url)
		return nil
	}

	first, err := m.Acquire(context.Background())
	require.NoError(t, err)

	second, err := m.Acquire(context.Background())
	require.NoError(t, err)

	require.Same(t, first, second, "suite scope must reuse the live session")
	require.Len(t, *drivers, 1, "suite scope must launch exactly one browser")
	require.Equal(t, 1, (*drivers)[0].starts)
	require.Equal(t, []string{m.loginURL, m.loginURL}, navigations,
		"a reused session must be restored to the login page")
}

func TestTestScopeIsolatesSessions(t *testing.T) {
	m, drivers := newTestManager(t, ScopeTest)

	first, err := m.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Release(first))

	second, err := m.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Release(second))

	require.NotSame(t, first, second)
	require.Len(t, *drivers, 2, "test scope must launch one browser per scenario")
	for _, d := range *drivers {
		require.Equal(t, 1, d.stops, "every launched browser must be stopped")
	}
}

func TestReleaseIsExactlyOnce(t *testing.T) {
	m, drivers := newTestManager(t, ScopeTest)

	session, err := m.Acquire(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.Release(session))
	require.NoError(t, m.Release(session))
	require.NoError(t, m.Close())

	require.Equal(t, 1, (*drivers)[0].stops, "driver must be stopped exactly once")
}

func TestCloseReleasesLiveSession(t *testing.T) {
	m, drivers := newTestManager(t, ScopeSuite)

	_, err := m.Acquire(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.Equal(t, 1, (*drivers)[0].stops)
}

func TestAcquireRetriesDriverStart(t *testing.T) {
	m, _ := newTestManager(t, ScopeTest)
	flaky := &fakeDriver{failStarts: 2}
	m.newDriver = func() browserDriver { return flaky }

	session, err := m.Acquire(context.Background())
	require.NoError(t, err)
	defer m.Release(session)

	require.Equal(t, 3, flaky.starts, "startup failures should be retried")
}

func TestAcquireReportsSessionError(t *testing.T) {
	m, _ := newTestManager(t, ScopeTest)
	m.navigate = func(*agouti.Page, string) error {
		return trace.ConnectionProblem(nil, "connection refused")
	}

	_, err := m.Acquire(context.Background())
	require.Error(t, err)
	require.True(t, IsSessionError(err))
}

func TestNewReadsScopeFromConfig(t *testing.T) {
	m := New(&config.TestConfig{
		Scope: config.ScopeSuite,
		URLs:  config.URLs{Login: "https://www.hudl.com/login"},
	})
	require.Equal(t, ScopeSuite, m.Scope())
}
