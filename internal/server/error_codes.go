package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidJSON     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidQuery    = 1003
	ErrCodeInvalidID       = 1004
	ErrCodeMissingRequired = 1005
	ErrCodeInvalidPrice    = 1006
	ErrCodeInvalidUpload   = 1007

	// Domain state (2xxx)
	ErrCodeProductNotFound  = 2001
	ErrCodeBrandNotFound    = 2002
	ErrCodeCategoryNotFound = 2003
	ErrCodeImageNotFound    = 2004
	ErrCodeDuplicateName    = 2101
	ErrCodeConflict         = 2102

	// Auth & limits (3xxx)
	ErrCodeUnauthorized      = 3001
	ErrCodeForbidden         = 3002
	ErrCodeResourceExhausted = 3003

	// Internal/system (4xxx)
	ErrCodeInternal     = 4001
	ErrCodeStoreFailure = 4002
	ErrCodeBlobWrite    = 4003
	ErrCodeBlobDelete   = 4004
	ErrCodeImportFailed = 4005
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeProductNotFound
	case 409:
		return ErrCodeConflict
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	default:
		return 0
	}
}
