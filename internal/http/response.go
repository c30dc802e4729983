package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"contas/internal/core"
)

// Message codes returned in the result envelope.
const (
	MsgInvalidObject        = "INVALID_OBJECT"
	MsgCardNotFound         = "CARD_NOT_FOUND"
	MsgWalletNotFound       = "WALLET_NOT_FOUND"
	MsgUserNotFound         = "USER_NOT_FOUND"
	MsgTransactionNotFound  = "TRANSACTION_NOT_FOUND"
	MsgFamilyMemberNotFound = "FAMILY_MEMBER_NOT_FOUND"
	MsgSendEmailFail        = "SEND_EMAIL_FAIL"
	MsgSendEmailSuccess     = "SEND_EMAIL_SUCCESS"
	MsgCodeInvalid          = "CODE_INVALID"
	MsgEmailInUse           = "EMAIL_IN_USE"
	MsgTooManyRequests      = "TOO_MANY_REQUESTS"
	MsgSuccessfullyAdded    = "SUCCESSFULLY_ADDED"
	MsgSuccessfullyUpdated  = "SUCCESSFULLY_UPDATED"
	MsgSuccessfullyDeleted  = "SUCCESSFULLY_DELETED"
	MsgInternalServerError  = "INTERNAL_SERVER_ERROR"
)

// ResultValue is the uniform envelope every endpoint answers with, success
// or failure. Detail carries the underlying error text outside production.
type ResultValue struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, result ResultValue) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) ok(w http.ResponseWriter, status int, message string, data any) {
	s.writeJSON(w, status, ResultValue{Success: true, Message: message, Data: data})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status, message := classify(err)
	result := ResultValue{Success: false, Message: message}
	if !s.prod {
		result.Detail = err.Error()
	}
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "message", message, "error", err)
	}
	s.writeJSON(w, status, result)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidObject),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidRepetition),
		errors.Is(err, core.ErrInvalidDay),
		errors.Is(err, core.ErrEmptyName):
		return http.StatusBadRequest, MsgInvalidObject
	case errors.Is(err, core.ErrCardNotFound):
		return http.StatusNotFound, MsgCardNotFound
	case errors.Is(err, core.ErrWalletNotFound):
		return http.StatusNotFound, MsgWalletNotFound
	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound, MsgUserNotFound
	case errors.Is(err, core.ErrTransactionNotFound):
		return http.StatusNotFound, MsgTransactionNotFound
	case errors.Is(err, core.ErrFamilyMemberNotFound):
		return http.StatusNotFound, MsgFamilyMemberNotFound
	case errors.Is(err, core.ErrSendEmail):
		return http.StatusBadGateway, MsgSendEmailFail
	case errors.Is(err, core.ErrInvalidCode):
		return http.StatusBadRequest, MsgCodeInvalid
	case errors.Is(err, core.ErrEmailInUse):
		return http.StatusConflict, MsgEmailInUse
	default:
		return http.StatusInternalServerError, MsgInternalServerError
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return core.ErrInvalidObject
	}
	return nil
}
