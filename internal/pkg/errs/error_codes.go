package errs

// 1xxx: General request handling errors.
const (
	// ErrInvalidParams indicates request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates the request body is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates the caller exceeded the request rate limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Question bank errors.
const (
	// ErrQuestionNotFound indicates no question matches the given id or level.
	ErrQuestionNotFound = 2001

	// ErrQuestionInvalid indicates a question payload is missing required fields.
	ErrQuestionInvalid = 2002

	// ErrBackupFailed indicates the question bank backup could not be stored.
	ErrBackupFailed = 2101

	// ErrRestoreFailed indicates the question bank restore could not be applied.
	ErrRestoreFailed = 2102

	// ErrBackupStorageDisabled indicates no object storage is configured.
	ErrBackupStorageDisabled = 2103
)

// 3xxx: User, session and security errors.
const (
	// ErrInvalidUsername indicates the username does not meet format rules.
	ErrInvalidUsername = 3001

	// ErrInvalidPassword indicates the password does not meet length rules.
	ErrInvalidPassword = 3002

	// ErrUserAlreadyExists indicates the username is taken.
	ErrUserAlreadyExists = 3003

	// ErrInvalidCredentials indicates username/password verification failed.
	ErrInvalidCredentials = 3004

	// ErrUserNotFound indicates the account does not exist.
	ErrUserNotFound = 3005

	// ErrAlreadyLoggedIn indicates an authenticated caller hit a guest-only endpoint.
	ErrAlreadyLoggedIn = 3006

	// ErrUnauthorized indicates a missing or invalid identity token.
	ErrUnauthorized = 3007
)

// 5xxx: Internal system errors.
const (
	// ErrUnknown is the catch-all internal server error.
	ErrUnknown = 5000

	// ErrDatabaseUnavailable indicates the persistence layer rejected the operation.
	ErrDatabaseUnavailable = 5001
)
