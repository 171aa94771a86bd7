package wait

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kalenwallin/hudltest/lib/defaults"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// Abort causes Retry to stop with the given error
func Abort(err error) AbortRetry {
	return AbortRetry{Err: err}
}

// Continue causes Retry to keep trying while logging the message
func Continue(format string, args ...interface{}) ContinueRetry {
	return ContinueRetry{Message: fmt.Sprintf(format, args...)}
}

// AbortRetry, if returned from a retried function or a condition probe,
// stops the attempts and surfaces the wrapped error
type AbortRetry struct {
	Err error
}

func (r AbortRetry) Error() string {
	return fmt.Sprintf("Abort(%v)", r.Err)
}

// ContinueRetry, if returned from a retried function, schedules another attempt
type ContinueRetry struct {
	Message string
}

func (r ContinueRetry) Error() string {
	return fmt.Sprintf("ContinueRetry(%v)", r.Message)
}

// Retry executes fn with the default delay and attempt budget.
// fn can return AbortRetry to abort or ContinueRetry to continue.
func Retry(ctx context.Context, fn func() error) error {
	r := Retryer{
		Delay:    defaults.RetryDelay,
		Attempts: defaults.RetryAttempts,
	}
	return r.Do(ctx, fn)
}

// Retryer retries a function a bounded number of times with exponential backoff
type Retryer struct {
	// Delay specifies the interval between the first and second attempts
	Delay time.Duration
	// Attempts specifies the number of attempts to execute before failing
	Attempts int
	// FieldLogger specifies the log sink
	logrus.FieldLogger
}

// Do retries fn until it succeeds or the attempt budget is exhausted
func (r Retryer) Do(ctx context.Context, fn func() error) (err error) {
	if r.FieldLogger == nil {
		r.FieldLogger = logrus.NewEntry(logrus.StandardLogger())
	}
	if ctx.Err() != nil {
		return trace.Wrap(ctx.Err())
	}

	for i := 1; i <= r.Attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		switch origErr := err.(type) {
		case AbortRetry:
			r.WithError(origErr.Err).Error("aborted")
			return origErr.Err
		case ContinueRetry:
			r.Debugf("%v, retry in %v", origErr.Message, r.Delay)
		default:
			r.Debugf("unsuccessful attempt %v: %v, retry in %v", i, trace.UserMessage(err), r.Delay)
		}

		Sleep(ctx, backoff(r.Delay, i))
		if ctx.Err() != nil {
			r.Error("context closed, giving up")
			return err
		}
	}
	r.Errorf("all %v attempts failed:\n%v", r.Attempts, trace.DebugReport(err))
	return err
}

func backoff(baseDelay time.Duration, errCount int) time.Duration {
	delay := baseDelay * time.Duration(math.Pow(2, float64(errCount)-1))
	if delay > defaults.RetryMaxDelay {
		return defaults.RetryMaxDelay
	}
	return delay
}
