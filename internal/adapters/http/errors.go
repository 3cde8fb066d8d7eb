package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"revamp/internal/domain"
	"revamp/internal/infrastructure/logging"
	"revamp/internal/ports/output"
)

const (
	codeValidation   = "validation_failed"
	codeInvalidBody  = "invalid_request_body"
	codeInternal     = "internal"
	codeHTTPFallback = "http_error"
)

// domainStatus maps domain error codes to HTTP statuses. Unlisted domain
// codes are client errors.
var domainStatus = map[string]int{
	"event_not_found":         http.StatusNotFound,
	"registration_not_found":  http.StatusNotFound,
	"payment_not_found":       http.StatusNotFound,
	"user_not_found":          http.StatusNotFound,
	"notification_not_found":  http.StatusNotFound,
	"application_not_found":   http.StatusNotFound,
	"event_full":              http.StatusConflict,
	"already_registered":      http.StatusConflict,
	"profile_exists":          http.StatusConflict,
	"application_exists":      http.StatusConflict,
	"application_not_pending": http.StatusConflict,
	"unauthenticated":         http.StatusUnauthorized,
	"forbidden":               http.StatusForbidden,
	"gateway_unavailable":     http.StatusBadGateway,
}

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func statusOf(code string) int {
	if status, ok := domainStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// newHTTPErrorHandler returns an echo.HTTPErrorHandler rendering domain,
// validation and echo errors as JSON. Anything else is a server error and
// is reported.
func newHTTPErrorHandler(tr output.T, reporter logging.Reporter, logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		locale := c.Request().Header.Get("Accept-Language")

		var (
			status int
			resp   errorResponse
			vErrs  validator.ValidationErrors
			hErr   *echo.HTTPError
		)
		switch {
		case errors.As(err, &vErrs):
			status = http.StatusBadRequest
			resp = errorResponse{Error: "validation failed", Code: codeValidation}
			if v, ok := c.Echo().Validator.(*requestValidator); ok {
				resp.Fields = v.fieldErrors(vErrs)
			}
		case domain.Code(err) != "":
			code := domain.Code(err)
			status = statusOf(code)
			resp = errorResponse{Error: translate(tr, locale, "error."+code, err.Error()), Code: code}
		case errors.As(err, &hErr):
			status = hErr.Code
			resp = errorResponse{Error: http.StatusText(status), Code: codeHTTPFallback}
			if msg, ok := hErr.Message.(string); ok {
				resp.Error = msg
			}
			if status == http.StatusBadRequest {
				resp.Code = codeInvalidBody
			}
		default:
			status = http.StatusInternalServerError
			resp = errorResponse{
				Error: translate(tr, locale, "error.internal", http.StatusText(status)),
				Code:  codeInternal,
			}
			extras := map[string]any{"path": c.Path()}
			if id, idErr := identityFrom(c); idErr == nil {
				extras["uid"] = id.UID
				extras["email"] = id.Email
			}
			logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			reporter.Report(c.Request(), err, extras)
		}

		if c.Echo().Debug && status == http.StatusInternalServerError {
			resp.Error = err.Error()
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, resp)
		}
		if werr != nil {
			logger.Warn("write error response", zap.Error(werr))
		}
	}
}

// translate renders key, or fallback when no catalog has it.
func translate(tr output.T, locale, key, fallback string) string {
	if tr == nil {
		return fallback
	}
	if msg := tr.T(locale, key, nil); msg != key {
		return msg
	}
	return fallback
}
