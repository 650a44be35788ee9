package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// mapError converts any error reaching the HTTP layer into a status code
// and a stable machine-readable code. Unknown errors surface as opaque 500s.
func mapError(err error) (status int, code, message, details string) {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return domainErrors.GetStatusCode(appErr), appErr.Code, appErr.Message, ""
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			"request validation failed", strings.Join(fields, ", ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return http.StatusBadRequest, "MALFORMED_JSON", "request body is not valid JSON", ""
	}

	if errors.Is(err, context.Canceled) {
		return http.StatusRequestTimeout, "REQUEST_CANCELED", "request was canceled", ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "request timed out", ""
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred", ""
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message, details := mapError(err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"code", code,
			"error", err,
		)
	}

	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
