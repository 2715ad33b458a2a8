package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/trendprints/storefront/internal/errors"
)

// ErrorResponse is the body of every failed JSON API call.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

// WriteJson encodes data before touching the response, so a value that
// cannot be encoded answers 500 instead of an empty success.
func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	body, err := json.Marshal(data)
	if err != nil {
		body, _ = json.Marshal(ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  errors.ErrCodeInternal,
		})
		statusCode = http.StatusInternalServerError
		err = fmt.Errorf("failed to encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, writeErr := w.Write(append(body, '\n')); writeErr != nil && err == nil {
		err = writeErr
	}

	return err
}

// PlainText answers the form routes, which report failures as bare text.
func PlainText(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, message)
}

func Error(w http.ResponseWriter, err error) {

	var statusCode int
	var errorResponse ErrorResponse

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		errorResponse = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}

		if appErr.Detail != "" {
			errorResponse.Details = []string{appErr.Detail}
		}

	} else {

		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  errors.ErrCodeInternal,
		}

	}

	WriteJson(w, statusCode, errorResponse)
}

// package sends the list of errors
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	var errMsgs []string

	for _, err := range errs {

		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field %s must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s characters", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)

	}

	WriteJson(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Code:    errors.ErrCodeValidation,
		Details: errMsgs,
	})

}
