// Package login defines the login flow scenarios the suite runs.
package login

import (
	"context"

	"github.com/kalenwallin/hudltest/driver/web"
	"github.com/kalenwallin/hudltest/lib/config"
	"github.com/kalenwallin/hudltest/suite"
	"github.com/kalenwallin/hudltest/uimodel"

	"github.com/gravitational/trace"
)

// invalidCredential is a value the account under test is known not to use
const invalidCredential = "invalid"

// Scenarios returns the login flow scenarios for the configured account
func Scenarios(conf *config.TestConfig) []suite.Scenario {
	return []suite.Scenario{
		{Name: "valid login from the landing page", Run: validLoginFromLanding(conf)},
		{Name: "valid login from the login page", Run: validLoginFromLoginPage(conf)},
		{Name: "invalid email is rejected", Run: loginError(conf, invalidCredential, conf.Login.Password, uimodel.BannerCredentials)},
		{Name: "invalid password is rejected", Run: loginError(conf, conf.Login.Email, invalidCredential, uimodel.BannerCredentials)},
		{Name: "empty credentials are rejected", Run: loginError(conf, "", "", uimodel.BannerRequiredFields)},
	}
}

// validLoginFromLanding reaches the login form through the landing page
// menu, logs in, verifies the authenticated home page and logs back out
func validLoginFromLanding(conf *config.TestConfig) func(context.Context, *web.Session) error {
	return func(ctx context.Context, session *web.Session) error {
		ui := uimodel.New(session.Page, conf)
		if err := ui.Landing().Navigate(); err != nil {
			return trace.Wrap(err)
		}
		if err := ui.Landing().GoToLoginPage(ctx); err != nil {
			return trace.Wrap(err)
		}
		return trace.Wrap(loginAndSignOut(ctx, ui, conf))
	}
}

// validLoginFromLoginPage logs in straight from the login page, verifies
// the authenticated home page and logs back out
func validLoginFromLoginPage(conf *config.TestConfig) func(context.Context, *web.Session) error {
	return func(ctx context.Context, session *web.Session) error {
		ui := uimodel.New(session.Page, conf)
		if err := ui.Login().Navigate(); err != nil {
			return trace.Wrap(err)
		}
		return trace.Wrap(loginAndSignOut(ctx, ui, conf))
	}
}

// loginError submits the given credentials and expects the application to
// reject them with the given error banner
func loginError(conf *config.TestConfig, email, password string, banner uimodel.Banner) func(context.Context, *web.Session) error {
	return func(ctx context.Context, session *web.Session) error {
		ui := uimodel.New(session.Page, conf)
		if err := ui.Login().Navigate(); err != nil {
			return trace.Wrap(err)
		}
		if err := ui.Login().SubmitCredentials(ctx, email, password); err != nil {
			return trace.Wrap(err)
		}
		_, err := ui.Login().WaitForBanner(ctx, banner)
		return trace.Wrap(err)
	}
}

func loginAndSignOut(ctx context.Context, ui uimodel.UI, conf *config.TestConfig) error {
	if err := ui.Login().SubmitCredentials(ctx, conf.Login.Email, conf.Login.Password); err != nil {
		return trace.Wrap(err)
	}
	if _, err := ui.Home().WaitForLoggedIn(ctx); err != nil {
		return trace.Wrap(err)
	}
	// leave the session logged out so a shared suite-scope session starts
	// the next scenario from neutral state
	_, err := ui.Home().Logout(ctx)
	return trace.Wrap(err)
}
