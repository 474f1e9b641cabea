package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/auth"
	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/db/repositories"
	"helo-luxury-air/portal/internal/services"
	"helo-luxury-air/portal/internal/wizard"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// decodeJSON reads the request body into dst and answers 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, initTime time.Time, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		common.RespondError(w, initTime, err, constants.MsgInvalidBody, http.StatusBadRequest)
		return false
	}
	return true
}

// sessionUser is only called behind AuthMiddleware.
func sessionUser(r *http.Request) common.SessionUser {
	if s := auth.GetSession(r.Context()); s != nil {
		return s.User
	}
	return common.SessionUser{}
}

// respondServiceError maps service and domain errors onto the response
// envelope. notFoundMsg names the record a lookup miss refers to.
func respondServiceError(w http.ResponseWriter, initTime time.Time, err error, notFoundMsg string) {
	var (
		validationErr *wizard.ValidationError
		inputErr      *services.InputError
	)

	switch {
	case errors.Is(err, wizard.ErrIncomplete):
		var fields map[string]string
		if errors.As(err, &validationErr) {
			fields = validationErr.Fields
		}
		common.RespondFieldErrors(w, initTime, http.StatusConflict, constants.MsgDraftIncomplete, fields, nil)
	case errors.As(err, &validationErr):
		common.RespondValidation(w, initTime, validationErr.Fields, nil)
	case errors.As(err, &inputErr):
		common.RespondValidation(w, initTime, inputErr.Fields, nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		common.RespondError(w, initTime, err, constants.MsgInvalidCredentials, http.StatusUnauthorized)
	case errors.Is(err, services.ErrEmailAlreadyRegistered):
		common.RespondError(w, initTime, err, constants.MsgEmailRegistered, http.StatusConflict)
	case errors.Is(err, services.ErrInvalidTransition):
		common.RespondError(w, initTime, err, constants.MsgInvalidTransition, http.StatusConflict)
	case errors.Is(err, repositories.ErrConflict):
		common.RespondError(w, initTime, err, constants.MsgConflict, http.StatusConflict)
	case errors.Is(err, wizard.ErrAlreadySubmitted):
		common.RespondError(w, initTime, err, constants.MsgDraftSubmitted, http.StatusConflict)
	case errors.Is(err, wizard.ErrStepNotReached):
		common.RespondError(w, initTime, err, constants.MsgStepNotReached, http.StatusConflict)
	case errors.Is(err, services.ErrDraftNotFound):
		common.RespondError(w, initTime, err, constants.MsgDraftNotFound, http.StatusNotFound)
	case errors.Is(err, repositories.ErrNotFound):
		common.RespondError(w, initTime, err, notFoundMsg, http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		common.RespondError(w, initTime, err, constants.MsgForbidden, http.StatusForbidden)
	case errors.Is(err, services.ErrBookingCreateFailed):
		common.RespondError(w, initTime, err, constants.MsgBookingCreateFailed, http.StatusInternalServerError)
	default:
		common.RespondError(w, initTime, err, constants.MsgGenericFailure, http.StatusInternalServerError)
	}
}
