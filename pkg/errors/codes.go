package errors

// AppCode is the stable numeric error code exposed to clients. Codes are
// grouped by range: validation 3000s, authentication 3100s, data 3200s,
// email 3300s, general 3400s. The ranges are part of the public API contract
// and must not be renumbered.
type AppCode int

const (
	// Validation (3000-3099)
	AppInvalidEmailFormat AppCode = 3000
	AppPasswordTooShort   AppCode = 3001
	AppInvalidOTP         AppCode = 3002
	AppInvalidUsername    AppCode = 3003
	AppInvalidFieldFormat AppCode = 3004
	AppRouteNotFound      AppCode = 3005

	// Authentication (3100-3199)
	AppUnauthorizedAccess AppCode = 3100
	AppInvalidToken       AppCode = 3101
	AppExpiredToken       AppCode = 3102
	AppAccessDenied       AppCode = 3103
	AppInvalidCredentials AppCode = 3104
	AppAccountNotVerified AppCode = 3105

	// Data (3200-3299)
	AppUserNotFound       AppCode = 3200
	AppDuplicateEntry     AppCode = 3201
	AppDatabaseConnection AppCode = 3202
	AppUserDataNotFound   AppCode = 3203
	AppStoreNotFound      AppCode = 3204
	AppNotFound           AppCode = 3205
	AppOfferNotFound      AppCode = 3206

	// Email (3300-3399)
	AppEmailSendFailed      AppCode = 3300
	AppEmailAlreadyVerified AppCode = 3301

	// General (3400-3499)
	AppServerError AppCode = 3400
)
