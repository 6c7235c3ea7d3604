package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserNotFound is returned when a user id has no backing record.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrSelfDelete is returned when an administrator tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrForbidden is returned when the session lacks the administrator role.
	ErrForbidden = errors.New("unauthorized access")
	// ErrMissingFields is returned when required submission fields are absent.
	ErrMissingFields = errors.New("please fill in all required fields")
	// ErrInvalidEmail is returned when an email address fails validation.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidStatus is returned when an appointment status is not one of the allowed values.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrAppointmentNotFound is returned when an appointment id has no backing record.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrApplicationNotFound is returned when an application filename has no backing record.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrEmptyBody is returned when a submission carries no data.
	ErrEmptyBody = errors.New("no data received")
	// ErrInvalidFilename is returned when an application filename is not a plain .json name.
	ErrInvalidFilename = errors.New("invalid file")
	// ErrParse is returned when a stored record is not well-formed JSON.
	ErrParse = errors.New("invalid record data")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDuplicateUsername):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_USERNAME")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DELETE")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrInvalidEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_EMAIL")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrAppointmentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPOINTMENT_NOT_FOUND")
	case errors.Is(err, ErrApplicationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPLICATION_NOT_FOUND")
	case errors.Is(err, ErrEmptyBody):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_BODY")
	case errors.Is(err, ErrInvalidFilename):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FILENAME")
	case errors.Is(err, ErrParse):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RECORD")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
