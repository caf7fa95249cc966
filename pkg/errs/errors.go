package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer       = errors.New("Internal server error")
	ErrValidation           = errors.New("Invalid request payload")
	ErrInvalidQueryParam    = errors.New("Invalid query parameter")
	ErrNotFound             = errors.New("Resource not found")
	ErrRatingNotFound       = errors.New("Rating not found for this user")
	ErrAccountNotFound      = errors.New("Account not found")
	ErrUsernameAlreadyUsed  = errors.New("Username has already been used")
	ErrEmailAlreadyUsed     = errors.New("Email has already been used")
	ErrInvalidCredentials   = errors.New("Username or password is incorrect")
	ErrProjectNotAuthorized = errors.New("User is not authorized for this project")
	ErrNotLoggedIn          = errors.New("Unauthorized access")
)

var errorMap = map[error]int{
	ErrInternalServer:       ErrStatusInternalServer,
	ErrValidation:           ErrStatusClient,
	ErrInvalidQueryParam:    ErrStatusClient,
	ErrNotFound:             ErrStatusNotFound,
	ErrRatingNotFound:       ErrStatusNotFound,
	ErrAccountNotFound:      ErrStatusNotFound,
	ErrUsernameAlreadyUsed:  ErrStatusConflict,
	ErrEmailAlreadyUsed:     ErrStatusConflict,
	ErrInvalidCredentials:   ErrStatusUnauthorized,
	ErrProjectNotAuthorized: ErrStatusNoPermission,
	ErrNotLoggedIn:          ErrStatusUnauthorized,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
