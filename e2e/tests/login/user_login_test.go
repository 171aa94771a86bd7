package login_test

import (
	"github.com/kalenwallin/hudltest/lib/defaults"
	"github.com/kalenwallin/hudltest/uimodel"
	udefaults "github.com/kalenwallin/hudltest/uimodel/defaults"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/sclevine/agouti/matchers"
)

var _ = Describe("Login", func() {

	It("should render the login form", func() {
		ui := uimodel.New(session.Page, conf)
		Expect(ui.Login().Navigate()).To(Succeed())
		Eventually(session.Page.FindByID(udefaults.EmailFieldID), defaults.FindTimeout).Should(BeFound())
		Expect(session.Page.FindByID(udefaults.PasswordFieldID)).To(BeFound())
		Expect(session.Page.FindByID(udefaults.LoginButtonID)).To(BeFound())
	})

	It("should log in from the landing page", func() {
		ui := uimodel.New(session.Page, conf)
		Expect(ui.Landing().Navigate()).To(Succeed())
		Expect(ui.Landing().GoToLoginPage(ctx)).To(Succeed())
		Expect(ui.Login().SubmitCredentials(ctx, conf.Login.Email, conf.Login.Password)).To(Succeed())

		_, err := ui.Home().WaitForLoggedIn(ctx)
		Expect(err).NotTo(HaveOccurred())

		state, err := ui.Home().Logout(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(state.URL).To(HavePrefix(conf.URLs.Landing))
	})

	It("should log in from the login page", func() {
		ui := uimodel.New(session.Page, conf)
		Expect(ui.Login().Navigate()).To(Succeed())
		Expect(ui.Login().SubmitCredentials(ctx, conf.Login.Email, conf.Login.Password)).To(Succeed())

		_, err := ui.Home().WaitForLoggedIn(ctx)
		Expect(err).NotTo(HaveOccurred())

		_, err = ui.Home().Logout(ctx)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should reject an invalid email", func() {
		ui := uimodel.New(session.Page, conf)
		Expect(ui.Login().Navigate()).To(Succeed())
		Expect(ui.Login().SubmitCredentials(ctx, "invalid", conf.Login.Password)).To(Succeed())

		state, err := ui.Login().WaitForBanner(ctx, uimodel.BannerCredentials)
		Expect(err).NotTo(HaveOccurred())
		Expect(state.Message).To(Equal(udefaults.CredentialsErrorText))
	})

	It("should reject an invalid password", func() {
		ui := uimodel.New(session.Page, conf)
		Expect(ui.Login().Navigate()).To(Succeed())
		Expect(ui.Login().SubmitCredentials(ctx, conf.Login.Email, "invalid")).To(Succeed())

		state, err := ui.Login().WaitForBanner(ctx, uimodel.BannerCredentials)
		Expect(err).NotTo(HaveOccurred())
		Expect(state.Message).To(Equal(udefaults.CredentialsErrorText))
	})

	It("should reject empty credentials", func() {
		ui := uimodel.New(session.Page, conf)
		Expect(ui.Login().Navigate()).To(Succeed())
		Expect(ui.Login().SubmitCredentials(ctx, "", "")).To(Succeed())

		state, err := ui.Login().WaitForBanner(ctx, uimodel.BannerRequiredFields)
		Expect(err).NotTo(HaveOccurred())
		Expect(state.Message).To(Equal(udefaults.RequiredFieldsErrorText))
	})
})
