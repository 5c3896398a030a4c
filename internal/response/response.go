package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/apperr"
)

const (
	DefaultMessage     = "Query Successful"
	serverErrorMessage = "An unexpected error occurred. Please try again later."
)

// Envelope is the wire body of every outward result.
type Envelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`

	omitData bool
}

// OK builds the default success envelope around data.
func OK(data any) Envelope {
	return Envelope{Code: http.StatusOK, Status: "OK", Message: DefaultMessage, Data: data}
}

func Created(message string, data any) Envelope {
	return Envelope{Code: http.StatusCreated, Status: "Created", Message: message, Data: data}
}

func BadRequest(message string) Envelope {
	return Envelope{Code: http.StatusBadRequest, Status: "Bad Request", Message: message}
}

func Unauthorized(message string) Envelope {
	return Envelope{Code: http.StatusUnauthorized, Status: "Unauthorized", Message: message}
}

func AccessDenied() Envelope {
	return Envelope{
		Code:    http.StatusForbidden,
		Status:  "Forbidden",
		Message: apperr.Message(apperr.AccessDenied()),
	}
}

func NotFound(message string) Envelope {
	return Envelope{Code: http.StatusNotFound, Status: "Not found", Message: message}
}

func ServerError(message string) Envelope {
	if message == "" {
		message = serverErrorMessage
	}
	return Envelope{Code: http.StatusInternalServerError, Status: "Internal Server Error", Message: message}
}

func Unimplemented() Envelope {
	return Envelope{
		Code:    http.StatusNotImplemented,
		Status:  "Not Implemented.",
		Message: "Sorry, This feature is not yet implemented.",
	}
}

// WithMessage returns a copy of e carrying message.
func (e Envelope) WithMessage(message string) Envelope {
	e.Message = message
	return e
}

// WithoutData returns a copy of e whose encoding has no data key at all.
func (e Envelope) WithoutData() Envelope {
	e.Data = nil
	e.omitData = true
	return e
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	type body struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if e.omitData {
		return json.Marshal(body{Code: e.Code, Status: e.Status, Message: e.Message})
	}
	return json.Marshal(struct {
		body
		Data any `json:"data"`
	}{body{e.Code, e.Status, e.Message}, e.Data})
}

// FromError maps the error taxonomy onto an envelope. Errors outside the
// taxonomy and store failures become a 500 with a generic message.
func FromError(err error) Envelope {
	msg := apperr.Message(err)
	switch {
	case err == nil:
		return OK(nil)
	case errors.Is(err, apperr.ErrStore):
		return ServerError(msg)
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrAlreadyLinked),
		errors.Is(err, apperr.ErrReferential),
		errors.Is(err, apperr.ErrCycleDetected),
		errors.Is(err, apperr.ErrIncompatibleVariation):
		return BadRequest(msg)
	case errors.Is(err, apperr.ErrNotFound):
		return NotFound(msg)
	case errors.Is(err, apperr.ErrAccessDenied):
		return AccessDenied()
	case errors.Is(err, apperr.ErrUnauthorized):
		return Unauthorized(msg)
	default:
		return ServerError("")
	}
}
