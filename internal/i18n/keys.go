// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"
	KeyWarning = "warning"
	KeyInfo    = "info"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Editions
	KeyEditionCreated           = "edition.created"
	KeyEditionNotFound          = "edition.not_found"
	KeyEditionSoldOut           = "edition.sold_out"
	KeyEditionInvalidCommission = "edition.invalid_commission"
	KeyEditionPurchased         = "edition.purchased"

	// Tokens
	KeyTokenNotFound     = "token.not_found"
	KeyTokenNotSold      = "token.not_sold"
	KeyTokenTransferred  = "token.transferred"
	KeyTokenApproved     = "token.approved"
	KeyTokenNotOwner     = "token.not_owner"
	KeyTokenUnauthorized = "token.unauthorized"

	// Accounts
	KeyAccountFrozen   = "account.frozen"
	KeyAccountNotFound = "account.not_found"

	// Payments
	KeyPaymentSuccess        = "payment.success"
	KeyPaymentFailed         = "payment.failed"
	KeyPaymentPending        = "payment.pending"
	KeyPaymentInvalidAmount  = "payment.invalid_amount"
	KeyPaymentAlreadySettled = "payment.already_settled"

	// Events
	KeyEventNotFound    = "event.not_found"
	KeyEventChainBroken = "event.chain_broken"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooShort = "validation.too_short"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationPassword = "validation.invalid_password"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
