package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/kalenwallin/hudltest/lib/defaults"

	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// State captures page state observed by a condition probe: the current URL,
// the page title and an optional free-form message (e.g. error banner text).
// The last observed state travels with TimeoutError so a failed wait can be
// triaged without re-running the scenario.
type State struct {
	URL     string
	Title   string
	Message string
}

func (s State) String() string {
	return fmt.Sprintf("url=%q title=%q message=%q", s.URL, s.Title, s.Message)
}

// Condition is a named predicate over observable page state.
// Probe returns a nil error once the condition holds, along with the
// satisfying state. Any other error counts as "not yet satisfied" and keeps
// the poll loop going, except errors returned via Abort which stop it
// immediately.
type Condition struct {
	// Name identifies the condition in logs and error messages
	Name string
	// Timeout is the maximum time to wait for the condition to hold
	Timeout time.Duration
	// Interval is the poll interval, 0 < Interval < Timeout
	Interval time.Duration
	// Probe evaluates the condition once
	Probe func() (State, error)
}

func (c *Condition) checkAndSetDefaults() error {
	if c.Probe == nil {
		return trace.BadParameter("condition %q has no probe", c.Name)
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.FindTimeout
	}
	if c.Interval == 0 {
		c.Interval = defaults.PollInterval
	}
	if c.Interval <= 0 || c.Interval >= c.Timeout {
		return trace.BadParameter("condition %q: poll interval %v must be positive and less than timeout %v",
			c.Name, c.Interval, c.Timeout)
	}
	return nil
}

// TimeoutError is returned when a condition does not hold within its timeout.
// Last carries the state observed on the final unsuccessful probe.
type TimeoutError struct {
	// Name is the name of the condition that timed out
	Name string
	// Timeout is the configured maximum wait duration
	Timeout time.Duration
	// Last is the page state observed by the last probe
	Last State
	// Reason is the error returned by the last probe
	Reason error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("condition %q not satisfied after %v, last state: %v (%v)",
		e.Name, e.Timeout, e.Last, e.Reason)
}

// IsTimeout reports whether err is a condition wait timeout
func IsTimeout(err error) bool {
	_, ok := trace.Unwrap(err).(*TimeoutError)
	return ok
}

// Waiter polls conditions using a configurable clock and log sink.
// The zero value is usable and polls on the wall clock.
type Waiter struct {
	// Clock is the time source, defaults to the wall clock
	Clock clockwork.Clock
	// FieldLogger specifies the log sink
	logrus.FieldLogger
}

// Until polls the condition with a default Waiter.
// See Waiter.Until for semantics.
func Until(ctx context.Context, cond Condition) (State, error) {
	return Waiter{}.Until(ctx, cond)
}

// Until blocks until the condition probe succeeds and returns the observed
// state, or fails with TimeoutError once the condition's timeout elapses.
// A condition that already holds on the first probe returns without
// sleeping. Probe errors are treated as transient (element detached during
// a redraw, stale references) and swallowed until the timeout, unless
// wrapped with Abort.
func (w Waiter) Until(ctx context.Context, cond Condition) (State, error) {
	if err := cond.checkAndSetDefaults(); err != nil {
		return State{}, trace.Wrap(err)
	}
	if w.Clock == nil {
		w.Clock = clockwork.NewRealClock()
	}
	if w.FieldLogger == nil {
		w.FieldLogger = logrus.StandardLogger().WithField("condition", cond.Name)
	}

	deadline := w.Clock.After(cond.Timeout)
	var last State
	var lastErr error
	for attempt := 1; ; attempt++ {
		state, err := cond.Probe()
		if err == nil {
			w.Debugf("satisfied on attempt %v: %v", attempt, state)
			return state, nil
		}
		if abort, ok := err.(AbortRetry); ok {
			w.WithError(abort.Err).Error("aborted")
			return state, trace.Wrap(abort.Err)
		}
		last, lastErr = state, err
		w.Debugf("attempt %v: %v, next poll in %v", attempt, trace.UserMessage(err), cond.Interval)

		select {
		case <-deadline:
			w.Warnf("giving up after %v: %v", cond.Timeout, last)
			return last, trace.Wrap(&TimeoutError{
				Name:    cond.Name,
				Timeout: cond.Timeout,
				Last:    last,
				Reason:  lastErr,
			})
		case <-ctx.Done():
			return last, trace.Wrap(ctx.Err())
		case <-w.Clock.After(cond.Interval):
		}
	}
}

// Sleep is a context-interruptible sleep
func Sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
