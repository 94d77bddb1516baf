package errs

import "net/http"

// errorMap holds the CustomError template for every registered error code.
// A zero Status is normalized to 200 by NewError; auth and throttling errors
// carry their conventional HTTP statuses.
var errorMap = map[int]CustomError{
	// 1xxx: General request handling errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Request body is not valid JSON.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Question bank errors
	ErrQuestionNotFound:      {Code: ErrQuestionNotFound, Message: "Question not found.", Status: http.StatusNotFound},
	ErrQuestionInvalid:       {Code: ErrQuestionInvalid, Message: "Question is missing required fields.", Status: http.StatusBadRequest},
	ErrBackupFailed:          {Code: ErrBackupFailed, Message: "Backup failed. Please try again.", Status: http.StatusInternalServerError},
	ErrRestoreFailed:         {Code: ErrRestoreFailed, Message: "Restore failed. Please try again.", Status: http.StatusInternalServerError},
	ErrBackupStorageDisabled: {Code: ErrBackupStorageDisabled, Message: "Backup storage is not configured.", Status: http.StatusServiceUnavailable},

	// 3xxx: User, session and security errors
	ErrInvalidUsername:    {Code: ErrInvalidUsername, Message: "Invalid username."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Invalid password."},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "Username is already taken."},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect username or password."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal system errors
	ErrUnknown:             {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrDatabaseUnavailable: {Code: ErrDatabaseUnavailable, Message: "Service is temporarily unavailable.", Status: http.StatusServiceUnavailable},
}
