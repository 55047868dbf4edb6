// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// Users
	KeyUserNotFound = "user.not_found"
	KeyUserBanned   = "user.banned"
	KeyUserUpdated  = "user.updated"

	// Games
	KeyGameCreated      = "game.created"
	KeyGameUpdated      = "game.updated"
	KeyGameDeleted      = "game.deleted"
	KeyGameNotFound     = "game.not_found"
	KeyGameKeyTaken     = "game.key_taken"
	KeyGameOutOfStock   = "game.out_of_stock"
	KeyGameDownloadSent = "game.download_sent"

	// Genres / platforms / publishers
	KeyGenreNotFound     = "genre.not_found"
	KeyGenreExists       = "genre.exists"
	KeyPlatformNotFound  = "platform.not_found"
	KeyPublisherNotFound = "publisher.not_found"
	KeyPublisherExists   = "publisher.exists"

	// Comments
	KeyCommentAdded    = "comment.added"
	KeyCommentDeleted  = "comment.deleted"
	KeyCommentNotFound = "comment.not_found"
	KeyCommentBanned   = "comment.author_banned"

	// Orders / payments
	KeyOrderNotFound     = "order.not_found"
	KeyOrderEmpty        = "order.empty"
	KeyOrderPaid         = "order.paid"
	KeyOrderShipped      = "order.shipped"
	KeyBasketItemAdded   = "basket.item_added"
	KeyBasketItemRemoved = "basket.item_removed"
	KeyPaymentFailed     = "payment.failed"
	KeyInvoiceReady      = "payment.invoice_ready"

	// Files
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyRateLimited       = "rate.limited"
)
