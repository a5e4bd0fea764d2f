package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "shopadmin/internal/errors"
)

const maxJSONBody = 1 << 20

type ErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
	TraceID string                       `json:"traceId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		Logger(r.Context()).Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps err to a status code and error body. Errors without a
// known type are logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := Logger(r.Context())
	resp := ErrorResponse{TraceID: TraceID(r.Context())}
	status := http.StatusInternalServerError

	if ve, ok := apperrors.IsValidationError(err); ok {
		status, resp.Error, resp.Message, resp.Details = http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details
		logger.Debug("validation failed", zap.Any("details", ve.Details))
	} else if ule, ok := apperrors.IsUploadLimitError(err); ok {
		status, resp.Error, resp.Message = http.StatusBadRequest, ule.Code, ule.Message
		if ule.Field != "" {
			resp.Details = []apperrors.ValidationDetail{{Field: ule.Field, Message: ule.Message}}
		}
		logger.Warn("upload rejected", zap.String("code", ule.Code), zap.String("field", ule.Field))
	} else if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		status, resp.Error, resp.Message = http.StatusUnauthorized, "UNAUTHORIZED", ue.Message
	} else if nfe, ok := apperrors.IsNotFoundError(err); ok {
		status, resp.Error, resp.Message = http.StatusNotFound, "NOT_FOUND", nfe.Message
	} else if ce, ok := apperrors.IsConflictError(err); ok {
		status, resp.Error, resp.Message = http.StatusConflict, "CONFLICT", ce.Message
	} else if de, ok := apperrors.IsDeadlockError(err); ok {
		status, resp.Error, resp.Message = http.StatusConflict, "DEADLOCK", de.Message
		logger.Warn("request gave up after lock contention", zap.Error(err))
	} else if ie, ok := apperrors.IsInternalError(err); ok {
		logger.Error(ie.Message, zap.NamedError("cause", ie.Cause))
		resp.Error, resp.Message = "INTERNAL_ERROR", "an unexpected error occurred"
	} else {
		logger.Error("unexpected error", zap.Error(err))
		resp.Error, resp.Message = "INTERNAL_ERROR", "an unexpected error occurred"
	}

	WriteJSON(w, r, status, resp)
}

// DecodeJSON reads a JSON body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "request body must be valid JSON"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "request body is too large"
		} else if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: msg,
		})
	}
	return nil
}

// PathID parses a positive integer URL parameter.
func PathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
	}
	return id, nil
}

// QueryBool is true only for an explicit "true" or "1".
func QueryBool(r *http.Request, name string) bool {
	v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name)))
	return v == "true" || v == "1"
}
