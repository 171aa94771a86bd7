package uimodel

import (
	"context"
	"strings"

	"github.com/kalenwallin/hudltest/lib/defaults"
	"github.com/kalenwallin/hudltest/lib/wait"
	udefaults "github.com/kalenwallin/hudltest/uimodel/defaults"

	"github.com/gravitational/trace"
)

// Home models the authenticated home page
type Home struct {
	UI
}

// LoggedInCondition holds once the user menu logout control is present,
// which only renders for an authenticated user
func (h Home) LoggedInCondition() wait.Condition {
	return wait.Condition{
		Name:    "logged in indicator present",
		Timeout: defaults.LoginTimeout,
		Probe: func() (wait.State, error) {
			state := h.observe()
			count, err := h.page.Find(udefaults.LogoutControlSelector).Count()
			if err != nil {
				return state, trace.Wrap(err)
			}
			if count == 0 {
				return state, trace.NotFound("logout control not present")
			}
			return state, nil
		},
	}
}

// WaitForLoggedIn blocks until the post-login indicator is visible
func (h Home) WaitForLoggedIn(ctx context.Context) (wait.State, error) {
	state, err := wait.Until(ctx, h.LoggedInCondition())
	return state, trace.Wrap(err)
}

// Logout signs the user out through the logout endpoint and waits for the
// landing page, restoring the neutral state a shared session needs between
// scenarios
func (h Home) Logout(ctx context.Context) (wait.State, error) {
	h.log.Info("logging out")
	if err := h.page.Navigate(h.conf.URLs.Logout); err != nil {
		return wait.State{}, trace.Wrap(err)
	}
	state, err := wait.Until(ctx, wait.Condition{
		Name: "landing page after logout",
		Probe: func() (wait.State, error) {
			state := h.observe()
			if !strings.HasPrefix(state.URL, h.conf.URLs.Landing) {
				return state, trace.NotFound("still away from the landing page at %v", state.URL)
			}
			return state, nil
		},
	})
	return state, trace.Wrap(err)
}
