package uimodel

import (
	"context"

	"github.com/kalenwallin/hudltest/lib/wait"
	"github.com/kalenwallin/hudltest/uimodel/defaults"

	"github.com/gravitational/trace"
)

// Landing models the public landing page
type Landing struct {
	UI
}

// Navigate opens the landing page
func (l Landing) Navigate() error {
	return trace.Wrap(l.page.Navigate(l.conf.URLs.Landing))
}

// GoToLoginPage reaches the login form through the landing page login menu:
// opens the login select, picks the Hudl option and waits for the login
// page to render
func (l Landing) GoToLoginPage(ctx context.Context) error {
	l.log.Info("navigating to login through the landing page menu")
	err := wait.Retry(ctx, func() error {
		if err := l.page.Find(defaults.LoginDropdownSelector).Click(); err != nil {
			return trace.Wrap(err)
		}
		return trace.Wrap(l.page.Find(defaults.LoginHudlOptionSelector).Click())
	})
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = wait.Until(ctx, l.Login().RenderedCondition())
	return trace.Wrap(err)
}
