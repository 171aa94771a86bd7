// Package uimodel models the application pages the login suite interacts
// with. All interactions return errors rather than failing the test
// directly, so the same model serves both the scenario runner and the
// ginkgo specs.
package uimodel

import (
	"github.com/kalenwallin/hudltest/lib/config"
	"github.com/kalenwallin/hudltest/lib/wait"

	"github.com/sclevine/agouti"
	"github.com/sirupsen/logrus"
)

// UI binds a browser page to the configured application URLs
type UI struct {
	page *agouti.Page
	conf *config.TestConfig
	log  logrus.FieldLogger
}

// New returns a UI model for the given page
func New(page *agouti.Page, conf *config.TestConfig) UI {
	return UI{
		page: page,
		conf: conf,
		log:  logrus.StandardLogger().WithField("from", "uimodel"),
	}
}

// Landing returns the landing page model
func (u UI) Landing() Landing {
	return Landing{UI: u}
}

// Login returns the login page model
func (u UI) Login() Login {
	return Login{UI: u}
}

// Home returns the home page model
func (u UI) Home() Home {
	return Home{UI: u}
}

// observe snapshots current URL and title, tolerating lookup failures so a
// diagnostic can still be captured from a half-loaded page
func (u UI) observe() wait.State {
	var state wait.State
	state.URL, _ = u.page.URL()
	state.Title, _ = u.page.Title()
	return state
}
