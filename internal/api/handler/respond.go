package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

const (
	headerAuthorization = "Authorization"
	msgInternalError    = "An unexpected error occurred."
)

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// respondError maps err onto a status code and the JSON error envelope. Only
// classified errors expose their message; anything else becomes a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := classifyError(err)
	if status == http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), "Unhandled internal error", slog.Any("error", err), slog.String("path", r.URL.Path))
	}
	respondJSON(w, status, dto.NewErrorResponse(r, status, detail))
}

func classifyError(err error) (int, dto.ErrorDetail) {
	var validationErr *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, dto.ErrorDetail{Code: "VALIDATION_ERROR", Message: validationErr.Message, Field: validationErr.Field}
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest, dto.ErrorDetail{Code: "INVALID_ARGUMENT", Message: err.Error()}
	case errors.As(err, &appErr):
		status := statusForKind(appErr.Kind)
		if status == http.StatusInternalServerError {
			return status, dto.ErrorDetail{Code: "INTERNAL_ERROR", Message: msgInternalError}
		}
		return status, dto.ErrorDetail{Code: appErr.Code, Message: appErr.Message}
	default:
		return http.StatusInternalServerError, dto.ErrorDetail{Code: "INTERNAL_ERROR", Message: msgInternalError}
	}
}

func statusForKind(kind error) int {
	switch kind {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrDuplicateResource:
		return http.StatusConflict
	case apperrors.ErrRequestValidation, apperrors.ErrValidation, apperrors.ErrInvalidArgument:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerId")
	if idStr == "" {
		return 0, fmt.Errorf("%w: customerId not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid customerId format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}
