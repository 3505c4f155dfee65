package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// SuccessResponse wraps every successful API payload
type SuccessResponse struct {
	Success   bool  `json:"success"`
	Data      any   `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// ErrorResponse is returned for every failed request. Kind and Retryable are
// set whenever the failure came from the engine.
type ErrorResponse struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error"`
	Kind      domain.ErrorKind  `json:"kind,omitempty"`
	Retryable bool              `json:"retryable"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

func respondSuccess(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, SuccessResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

// respondError sends a failure that did not come from the engine, e.g. a malformed body
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// RespondError writes the standard error envelope for failures raised
// outside a handler, such as middleware rejections
func RespondError(w http.ResponseWriter, status int, message string) {
	respondError(w, status, message)
}

// respondServiceError classifies err and sends it with its kind and retry hint
func respondServiceError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	respondJSON(w, statusForKind(kind), ErrorResponse{
		Error:     userMessage(err),
		Kind:      kind,
		Retryable: kind.Retryable(),
		Timestamp: time.Now().UnixMilli(),
	})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInsufficientFunds, domain.KindNotReady, domain.KindUnknownAction:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// userMessage maps domain errors to messages a player can act on
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrSlotNotFound):
		return ErrMsgSlotNotFoundError
	case errors.Is(err, domain.ErrCropMasterNotFound):
		return ErrMsgCropNotFoundError
	case errors.Is(err, domain.ErrSlotOccupied):
		return ErrMsgSlotOccupiedError
	case errors.Is(err, domain.ErrSlotEmpty):
		return ErrMsgSlotEmptyError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return ErrMsgInsufficientFundsError
	case errors.Is(err, domain.ErrCropNotReady):
		return ErrMsgCropNotReadyError
	case errors.Is(err, domain.ErrUnknownAction):
		return ErrMsgUnknownActionError
	}
	return ErrMsgGenericServerError
}
