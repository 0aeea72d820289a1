package dto

import (
	"net/http"
	"time"
)

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error      ErrorDetail `json:"error"`
	Path       string      `json:"path"`
	StatusCode int         `json:"statusCode"`
	Timestamp  time.Time   `json:"timestamp"`
}

func NewErrorResponse(r *http.Request, status int, detail ErrorDetail) ErrorResponse {
	return ErrorResponse{
		Error:      detail,
		Path:       r.URL.Path,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	}
}
