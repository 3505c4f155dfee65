package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON body into req and validates its tags.
// On failure the response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn(LogMsgValidationFailed, "action", actionName, "error", err)
		if isUnknownAction(err) {
			respondServiceError(w, fmt.Errorf("%w: %v", domain.ErrUnknownAction, err))
			return err
		}
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     ErrMsgInvalidRequestSummary,
			Fields:    FormatValidationError(err),
			Timestamp: time.Now().UnixMilli(),
		})
		return err
	}

	return nil
}

// GetQueryParam returns a required query parameter. If it is missing an error
// response has been written and ok is false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetOptionalIntQueryParam parses an optional non-negative integer parameter
func GetOptionalIntQueryParam(r *http.Request, paramName string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", paramName, raw)
	}
	return v, nil
}
