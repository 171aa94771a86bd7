package uimodel

import (
	"context"

	"github.com/kalenwallin/hudltest/lib/wait"
	"github.com/kalenwallin/hudltest/uimodel/defaults"

	"github.com/gravitational/trace"
)

// Login models the login form page
type Login struct {
	UI
}

// Banner identifies an expected login error banner
type Banner string

const (
	// BannerCredentials is shown for an unrecognized email or password
	BannerCredentials Banner = "credentials"
	// BannerRequiredFields is shown when the form is submitted with empty fields
	BannerRequiredFields Banner = "empty"
)

// expectedText maps a banner kind to the text the application renders
func (b Banner) expectedText() (string, error) {
	switch b {
	case BannerCredentials:
		return defaults.CredentialsErrorText, nil
	case BannerRequiredFields:
		return defaults.RequiredFieldsErrorText, nil
	}
	return "", trace.NotFound("unknown error banner kind %q, use one of %q or %q",
		b, BannerCredentials, BannerRequiredFields)
}

// Navigate opens the login page directly
func (l Login) Navigate() error {
	return trace.Wrap(l.page.Navigate(l.conf.URLs.Login))
}

// RenderedCondition holds once the login page has rendered
func (l Login) RenderedCondition() wait.Condition {
	return wait.Condition{
		Name: "login page rendered",
		Probe: func() (wait.State, error) {
			state := l.observe()
			if state.Title != defaults.LoginPageTitle {
				return state, trace.NotFound("login page not rendered yet, title %q", state.Title)
			}
			return state, nil
		},
	}
}

// SubmitCredentials waits for the login form, fills it in and submits it.
// Empty values are allowed, the application is expected to reject those
// with a validation banner.
func (l Login) SubmitCredentials(ctx context.Context, email, password string) error {
	if _, err := wait.Until(ctx, l.RenderedCondition()); err != nil {
		return trace.Wrap(err)
	}
	l.log.Info("submitting login form")
	err := wait.Retry(ctx, func() error {
		if err := l.page.FindByID(defaults.EmailFieldID).Fill(email); err != nil {
			return trace.Wrap(err)
		}
		if err := l.page.FindByID(defaults.PasswordFieldID).Fill(password); err != nil {
			return trace.Wrap(err)
		}
		return trace.Wrap(l.page.FindByID(defaults.LoginButtonID).Click())
	})
	return trace.Wrap(err)
}

// BannerCondition holds once the expected error banner is visible with the
// expected text. A visible banner with different text aborts the wait,
// waiting longer will not change what the application decided to show.
func (l Login) BannerCondition(banner Banner) wait.Condition {
	return wait.Condition{
		Name: "error banner visible",
		Probe: func() (wait.State, error) {
			state := l.observe()
			expected, err := banner.expectedText()
			if err != nil {
				return state, wait.Abort(err)
			}
			element := l.page.Find(defaults.ErrorBannerSelector)
			count, err := element.Count()
			if err != nil || count == 0 {
				return state, trace.NotFound("error banner not present")
			}
			visible, err := element.Visible()
			if err != nil || !visible {
				return state, trace.NotFound("error banner not visible")
			}
			text, err := element.Text()
			if err != nil {
				return state, trace.Wrap(err)
			}
			state.Message = text
			if text != expected {
				return state, wait.Abort(trace.CompareFailed(
					"unrecognized login error message %q, expected %q", text, expected))
			}
			return state, nil
		},
	}
}

// WaitForBanner blocks until the expected error banner shows up and returns
// the observed state including the banner text
func (l Login) WaitForBanner(ctx context.Context, banner Banner) (wait.State, error) {
	state, err := wait.Until(ctx, l.BannerCondition(banner))
	return state, trace.Wrap(err)
}
