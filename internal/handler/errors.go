package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"forumCPT/internal/storage"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Message string   `json:"message"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// writeError sends message with the raw error text when err is non-nil.
func writeError(w http.ResponseWriter, message string, err error, statusCode int) {
	response := ErrorResponse{Message: message}
	if err != nil {
		response.Error = err.Error()
	}
	writeSuccess(w, response, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, MessageResponse{Message: message}, statusCode)
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeSuccess(w, ErrorResponse{
		Message: "Validation failed",
		Errors:  validationMessages(err),
	}, http.StatusBadRequest)
}

func validationMessages(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldMessage(fe))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "e164":
		return fmt.Sprintf("%s must be an E.164 phone number", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// writeUploadError handles rejected uploads and reports whether err was one.
func writeUploadError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		writeError(w, "Only image uploads are allowed", err, http.StatusBadRequest)
	case errors.Is(err, storage.ErrFileTooLarge):
		writeError(w, "File too large", err, http.StatusRequestEntityTooLarge)
	default:
		return false
	}
	return true
}
