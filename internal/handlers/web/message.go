package web

const (
	MsgLoginWrongCredentials = "Invalid username or password."
	MsgLoginAccountDisabled  = "This account has been disabled."
	MsgTooManyFailedLogin    = "Too many failed login attempts. Please try again later."
	MsgLoginSessionExpired   = "Session expired. Please log in again."
	MsgRegisterSuccess       = "Your account has been created. You can sign in now."
	MsgResetLinkSent         = "If an account exists for that address, a reset link has been sent."
	MsgResetTokenInvalid     = "The reset link is invalid or has expired."
	MsgPasswordsDoNotMatch   = "Passwords do not match."
	MsgPasswordResetDone     = "Your password has been reset. Please sign in."
	MsgInvestSuccess         = "Your investment is now active."
	MsgDepositReceived       = "Your deposit has been credited."
	MsgWithdrawSubmitted     = "Your withdrawal request has been submitted for review."
	MsgInsufficientBalance   = "Your balance is not sufficient for this operation."
	MsgMaintenanceToggled    = "Maintenance mode updated."
	MsgImpersonationStarted  = "You are now viewing the platform as the selected user."
	MsgImpersonationStopped  = "Returned to your admin account."
)
