package http

import (
	"errors"
	"net/http"

	"orderservice/internal/generated/servers"
	"orderservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusCode maps a use case error to the HTTP status it is reported with.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail reports err to the client. Internal errors are logged and replaced by
// fallback so that storage details do not leak.
func (s *Server) fail(ctx echo.Context, err error, fallback string) error {
	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), fallback,
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = fallback
	}

	return ctx.JSON(code, servers.MessageResponse{Success: false, Message: message})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.MessageResponse{Success: false, Message: message})
}
