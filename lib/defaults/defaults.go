package defaults

import "time"

const (
	// RetryDelay defines the interval between retry attempts
	RetryDelay = 500 * time.Millisecond
	// RetryAttempts defines the maximum number of retry attempts
	RetryAttempts = 20
	// RetryMaxDelay defines the ceiling for exponential retry backoff
	RetryMaxDelay = 10 * time.Second

	// FindTimeout defines the timeout to use for element lookup operations
	FindTimeout = 10 * time.Second

	// PollInterval defines the frequency of condition polling attempts
	PollInterval = 300 * time.Millisecond

	// PageLoadTimeout specifies the amount of time needed for the web app to load
	PageLoadTimeout = 40 * time.Second

	// LoginTimeout defines the amount of time to wait for the post-login page
	LoginTimeout = 20 * time.Second

	// DriverStartTimeout caps browser driver startup, including restart attempts
	DriverStartTimeout = 1 * time.Minute
)
