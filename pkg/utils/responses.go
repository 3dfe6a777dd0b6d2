package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Response struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data,omitempty"`
	Message    string     `json:"message,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
	Pagination *PageMeta  `json:"pagination,omitempty"`
	Timestamp  string     `json:"timestamp"`
	TraceID    string     `json:"traceId,omitempty"`
	Path       string     `json:"path,omitempty"`
}

type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue,omitempty"`
}

// ResponseJSON writes the envelope with the given status code
func ResponseJSON(w http.ResponseWriter, r *http.Request, code int, resp Response) {
	resp.Timestamp = time.Now().UTC().Format(TimestampLayout)
	if r != nil {
		resp.TraceID = middleware.GetReqID(r.Context())
		resp.Path = r.URL.Path
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, r *http.Request, message string, data any) {
	ResponseJSON(w, r, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, r *http.Request, message string, data any) {
	ResponseJSON(w, r, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// returns 200 OK with pagination metadata
func ResponsePaginated[T any](w http.ResponseWriter, r *http.Request, message string, page *Page[T]) {
	ResponseJSON(w, r, http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       page.Items,
		Pagination: &page.Meta,
	})
}

// ------------- Error responses -------------

// ResponseFailure writes an error envelope with an explicit status
func ResponseFailure(w http.ResponseWriter, r *http.Request, status int, code, message string, details []FieldError) {
	ResponseJSON(w, r, status, Response{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message, Details: details},
	})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, r *http.Request, message string, details []FieldError) {
	ResponseFailure(w, r, http.StatusBadRequest, CodeValidation, message, details)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, r *http.Request) {
	ResponseFailure(w, r, http.StatusInternalServerError, CodeInternal, MsgInternal, nil)
}

// ResponseError maps err onto the envelope. Errors that are not AppErrors are
// logged and reported as a generic internal error.
func ResponseError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	appErr, known := AsAppError(err)

	switch {
	case !known || appErr.Kind == KindInternal:
		log.Error("Request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		ResponseInternalError(w, r)
		return
	case appErr.Err != nil:
		log.Warn("Request rejected", zap.String("code", appErr.Code), zap.Error(appErr.Err))
	}

	ResponseFailure(w, r, appErr.Status(), appErr.Code, appErr.Message, appErr.Details)
}
