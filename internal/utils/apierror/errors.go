package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization;
// every implementation carries "success": false in its JSON form.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

// StructuredError aggregates every field violation of one validation pass
// instead of failing on the first.
type StructuredError struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
	Status  int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// ScheduleConflictError reports the live appointment that already holds the
// requested window, so the caller can show which booking is in the way.
type ScheduleConflictError struct {
	Success     bool                    `json:"success"`
	Message     string                  `json:"message"`
	Conflicting *ConflictingAppointment `json:"conflictingAppointment"`
	Status      int                     `json:"-"`
}

type ConflictingAppointment struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (s *ScheduleConflictError) Code() int {
	return s.Status
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed request body")
	MalformedQueryError = NewSimple(400, "Malformed query parameters")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError         = NewSimple(404, "Resource not found")
	UnauthorizedError     = NewSimple(401, "Missing or invalid credentials")
	InvalidAuthTokenError = NewSimple(401, "Invalid or expired auth token")

	InvalidClientRefError      = NewSimple(400, "Invalid client ID or client not found")
	InvalidAppointmentRefError = NewSimple(400, "Invalid appointment ID or appointment not found")
	DuplicateCaseNumberError   = NewSimple(400, "Client with this case number already exists")
	EndBeforeStartError        = NewSimple(400, "End time must be after start time")

	MissingFileNameError = NewSimple(400, "Uploaded file has no name")
	MissingUploadError   = NewSimple(400, "Upload file is required")

	UserAlreadyExistsError    = NewSimple(400, "User already exists")
	UserAlreadyConfirmedError = NewSimple(400, "User is already confirmed")

	/*
	 * Mapped from the identity provider
	 */
	IDPInvalidPasswordError     = NewSimple(400, "Provided password does not meet requirements")
	IDPExistingEmailError       = NewSimple(400, "Email already exists")
	IDPUserNotFoundError        = NewSimple(404, "User not found")
	IDPUserNotConfirmedError    = NewSimple(400, "User is not confirmed yet")
	IDPCredentialsMismatchError = NewSimple(400, "Credentials mismatch")
	IDPConfirmCodeMismatchError = NewSimple(400, "Confirmation code mismatch")
	IDPConfirmCodeExpiredError  = NewSimple(400, "Confirmation code has expired")
	IDPInvalidParameterError    = NewSimple(400, "Invalid parameters provided, the user is likely already verified")
)

// FromValidationError converts a validator failure into a per-field 400.
// Anything that is not a validator.ValidationErrors means the validation
// pass itself blew up, which is on us, not on the request.
func FromValidationError(err error) ErrorResponse {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return InternalServerError
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "gte":
			problems[field] = append(problems[field], "Value cannot be below "+fe.Param())
		case "lte":
			problems[field] = append(problems[field], "Value cannot exceed "+fe.Param())
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "phoneformat":
			problems[field] = append(problems[field], "Value must be a valid phone number")
		case "nodupes":
			problems[field] = append(problems[field], "Value cannot contain duplicates")
		case "nospaces":
			problems[field] = append(problems[field], "Value cannot contain whitespace")
		case "hasupper":
			problems[field] = append(problems[field], "Value must have at least one uppercase character")
		case "haslower":
			problems[field] = append(problems[field], "Value must have at least one lowercase character")
		case "hasdigit":
			problems[field] = append(problems[field], "Value must have at least one number")
		case "hasspecial":
			problems[field] = append(problems[field], "Value must have at least one special character")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Message: "Validation error",
		Errors:  problems,
		Status:  http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewScheduleConflict(id int64, title, start, end string) *ScheduleConflictError {
	return &ScheduleConflictError{
		Message: "Time slot conflicts with existing appointment",
		Status:  http.StatusBadRequest,
		Conflicting: &ConflictingAppointment{
			ID:        id,
			Title:     title,
			StartTime: start,
			EndTime:   end,
		},
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewInvalidDateError(field string) *APIError {
	return NewSimple(http.StatusBadRequest, "Field '%s' must be an RFC 3339 datetime", field)
}

func NewFileTooLargeError(maxBytes int64) *APIError {
	return NewSimple(http.StatusBadRequest, "Uploaded file exceeds the maximum size of %d bytes", maxBytes)
}

func NewInvalidFileExtError(ext string) *APIError {
	return NewSimple(http.StatusBadRequest, "File extension '%s' is not allowed", ext)
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}
