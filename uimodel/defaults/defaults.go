package defaults

// Selectors and expected texts for the application under test. These track
// the target markup and change with it, they are configuration rather than
// part of the suite core.
const (
	// LoginDropdownSelector is the login select control on the landing page
	LoginDropdownSelector = `[data-qa-id="login-select"]`
	// LoginHudlOptionSelector is the Hudl option in the login select menu
	LoginHudlOptionSelector = `[data-qa-id="login-hudl"]`

	// EmailFieldID is the email input on the login form
	EmailFieldID = "email"
	// PasswordFieldID is the password input on the login form
	PasswordFieldID = "password"
	// LoginButtonID is the login form submit control
	LoginButtonID = "logIn"
	// ErrorBannerSelector is the login form error banner
	ErrorBannerSelector = `[data-qa-id="undefined-text"]`

	// LogoutControlSelector marks the user menu entry present only when logged in
	LogoutControlSelector = `[data-qa-id="webnav-usermenu-logout"]`

	// LoginPageTitle is the title of the login page once it has rendered
	LoginPageTitle = "Log In"

	// CredentialsErrorText is shown for an unrecognized email or password
	CredentialsErrorText = "We don't recognize that email and/or password"
	// RequiredFieldsErrorText is shown when required fields are left empty
	RequiredFieldsErrorText = "Please fill in all of the required fields"
)
