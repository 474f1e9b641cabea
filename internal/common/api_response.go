package common

import (
	"encoding/json"
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/logging"
	"helo-luxury-air/portal/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondError sends a standardized JSON error response. err is logged, never
// echoed to the client.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	if err != nil && code >= http.StatusInternalServerError {
		logging.Error(message, "error", err.Error(), "status_code", code)
	}

	writeJSON(w, code, dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
	})
}

// RespondValidation returns field-scoped errors for inline rendering.
func RespondValidation(w http.ResponseWriter, initTime time.Time, fieldErrors map[string]string, data any) {
	RespondFieldErrors(w, initTime, http.StatusBadRequest, constants.MsgValidationFailed, fieldErrors, data)
}

// RespondFieldErrors is RespondValidation with a caller-chosen status and message.
func RespondFieldErrors(w http.ResponseWriter, initTime time.Time, code int, message string, fieldErrors map[string]string, data any) {
	writeJSON(w, code, dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Errors:       fieldErrors,
		Data:         data,
	})
}

// RespondRedirect tells the client where to navigate instead.
func RespondRedirect(w http.ResponseWriter, initTime time.Time, code int, message, redirect, from string) {
	writeJSON(w, code, dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Redirect:     redirect,
		From:         from,
	})
}

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}
