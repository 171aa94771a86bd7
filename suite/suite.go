// Package suite runs login scenarios sequentially against a managed browser
// session and reports one result per scenario.
package suite

import (
	"context"
	"time"

	"github.com/kalenwallin/hudltest/driver/web"
	"github.com/kalenwallin/hudltest/lib/wait"

	"github.com/gravitational/trace"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// Scenario is one independent login test case
type Scenario struct {
	// Name identifies the scenario in logs and results
	Name string
	// Run drives the scenario against an acquired browser session
	Run func(ctx context.Context, session *web.Session) error
}

// Diagnostic is the page state captured when a scenario fails, kept with
// the result so a failure can be triaged without re-running
type Diagnostic struct {
	// URL is the address the browser was at when the scenario failed
	URL string
	// Title is the page title at failure time
	Title string
	// Banner is the error banner text, if one was observed
	Banner string
}

// Result is the outcome of one scenario run
type Result struct {
	// UID uniquely identifies this scenario run
	UID string
	// Name is the scenario name
	Name string
	// Failed indicates the scenario did not pass
	Failed bool
	// Error explains the failure
	Error error
	// Elapsed is the scenario wall-clock duration
	Elapsed time.Duration
	// Diagnostic is the page state captured on failure
	Diagnostic *Diagnostic
}

// sessionManager is the slice of web.Manager the runner depends on
type sessionManager interface {
	Acquire(ctx context.Context) (*web.Session, error)
	Release(session *web.Session) error
	Close() error
	Scope() web.Scope
}

// Runner executes scenarios one at a time: a failed or timed-out scenario
// is recorded and the remaining scenarios still run, only the session
// acquire/release discipline isolates them from each other.
type Runner struct {
	manager sessionManager
	log     logrus.FieldLogger
}

// NewRunner returns a runner on top of the given session manager
func NewRunner(manager *web.Manager) *Runner {
	return &Runner{
		manager: manager,
		log:     logrus.StandardLogger().WithField("from", "suite"),
	}
}

// Run executes all scenarios sequentially and returns one result each.
// The managed session is disposed of before returning, whatever the
// outcomes were.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) []Result {
	defer func() {
		if err := r.manager.Close(); err != nil {
			r.log.WithError(err).Warn("failed to close browser session")
		}
	}()

	results := make([]Result, 0, len(scenarios))
	for _, scenario := range scenarios {
		results = append(results, r.runScenario(ctx, scenario))
	}
	return results
}

func (r *Runner) runScenario(ctx context.Context, scenario Scenario) (result Result) {
	result = Result{
		UID:  uuid.NewV4().String(),
		Name: scenario.Name,
	}
	log := r.log.WithFields(logrus.Fields{"scenario": scenario.Name, "uid": result.UID})
	log.Info("started")
	start := time.Now()

	session, err := r.manager.Acquire(ctx)
	if err != nil {
		result.Failed = true
		result.Error = trace.Wrap(err)
		result.Elapsed = time.Since(start)
		log.WithError(err).Error("failed to acquire browser session")
		return result
	}

	defer func() {
		if rec := recover(); rec != nil {
			result.Failed = true
			result.Error = trace.Errorf("scenario panicked: %v", rec)
		}
		if result.Failed && result.Diagnostic == nil {
			result.Diagnostic = capture(session, result.Error)
		}
		if r.manager.Scope() == web.ScopeTest {
			if err := r.manager.Release(session); err != nil {
				log.WithError(err).Warn("failed to release browser session")
			}
		}
		result.Elapsed = time.Since(start)
		if result.Failed {
			log.WithError(result.Error).Error("failed")
		} else {
			log.Info("passed")
		}
	}()

	if err := scenario.Run(ctx, session); err != nil {
		result.Failed = true
		result.Error = trace.Wrap(err)
	}
	return result
}

// capture extracts the page state to attach to a failed result, preferring
// the state the failed wait last observed over a fresh lookup
func capture(session *web.Session, err error) *Diagnostic {
	state := session.Observe()
	if timeoutErr, ok := trace.Unwrap(err).(*wait.TimeoutError); ok {
		state = timeoutErr.Last
	}
	return &Diagnostic{URL: state.URL, Title: state.Title, Banner: state.Message}
}

// AllPassed reports whether every scenario in the run passed
func AllPassed(results []Result) bool {
	for _, result := range results {
		if result.Failed {
			return false
		}
	}
	return true
}
