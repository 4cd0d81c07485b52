package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/logger"
)

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// errorHandler renders every handler error as {code, message, details}.
// Server-side failures are reported to Sentry.
func errorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := toResponse(err)

		entry := log.WithRequest(c.Request()).
			WithField("status", status).
			WithField("code", body.Code).
			WithField("error", err.Error())
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
			captureError(c.Request(), err)
		} else {
			entry.Warn("request rejected")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func toResponse(err error) (int, errorResponse) {
	if appErr, ok := apperror.As(err); ok {
		return apperror.HTTPStatus(appErr), errorResponse{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return http.StatusBadRequest, errorResponse{
			Code:    string(apperror.CodeInvalidArgument),
			Message: "Request validation failed",
			Details: details,
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, errorResponse{
			Code:    strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_")),
			Message: msg,
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Code:    string(apperror.CodeInternal),
		Message: "Internal server error",
	}
}

// captureError sends an error to Sentry with request context
func captureError(req *http.Request, err error) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(req)
		sentry.CaptureException(err)
	})
}
