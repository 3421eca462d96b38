package render

import "github.com/tayothecoder/cornerfield-sub004/model"

type LoginPageData struct {
	Identifier string
	CSRFToken  string
	ErrorMsg   string
	FlashMsg   string
	StatusCode int // optional override, e.g. 429 when rate limited
}

type RegisterPageData struct {
	Username   string
	FullName   string
	Email      string
	CSRFToken  string
	FormErrors map[string]string
	ErrorMsg   string
}

type ForgotPasswordPageData struct {
	Email     string
	CSRFToken string
	ErrorMsg  string
	InfoMsg   string
}

type ResetPasswordPageData struct {
	Token     string
	CSRFToken string
	ErrorMsg  string
}

type DashboardPageData struct {
	User          *model.User
	Investments   []*model.Investment
	Transactions  []*model.Transaction
	CSRFToken     string
	FlashMsg      string
	Impersonating bool
}

type InvestPageData struct {
	User       *model.User
	Plans      []*model.Plan
	CSRFToken  string
	FormErrors map[string]string
	ErrorMsg   string
}

type DepositPageData struct {
	User       *model.User
	CSRFToken  string
	FormErrors map[string]string
	ErrorMsg   string
}

type WithdrawPageData struct {
	User       *model.User
	CSRFToken  string
	FormErrors map[string]string
	ErrorMsg   string
}

type AdminPageData struct {
	Users           []*model.User
	AuditEvents     []*model.AuditEvent
	MaintenanceMode bool
	CSRFToken       string
	FlashMsg        string
}
