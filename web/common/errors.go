package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamop.dk/bosted/auth"
	directus "teamop.dk/bosted/directus/v1"
	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/store"
)

// ErrorStatus maps an error onto an HTTP status and a Danish message for
// the staff app.
func ErrorStatus(err error) (int, string) {
	var authErr *auth.AuthenticationFailedError
	var serverErr *directus.ServerError

	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusUnauthorized, "Email ikke fundet i systemet"
	case errors.As(err, &authErr):
		return http.StatusBadGateway, "Login mislykkedes"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Ikke fundet"
	case errors.As(err, &serverErr):
		return http.StatusBadGateway, fmt.Sprintf("Serverfejl (%d): %s", serverErr.StatusCode, serverErr.Message)
	}

	switch directus.KindOf(err) {
	case directus.KindNotAuthenticated:
		return http.StatusServiceUnavailable, "Ikke logget ind - log venligst ind først"
	case directus.KindNoRefreshToken, directus.KindTokenRefreshFailed:
		return http.StatusServiceUnavailable, "Sessionen kunne ikke fornyes"
	case directus.KindAuthFailure:
		return http.StatusBadGateway, "Login mislykkedes"
	case directus.KindInvalidResponse:
		return http.StatusBadGateway, "Ugyldigt svar fra serveren"
	case directus.KindNotImplemented:
		return http.StatusNotImplemented, "Funktionen er ikke tilgængelig endnu"
	}
	return http.StatusInternalServerError, "Uventet fejl"
}

// RespondError logs err and writes the mapped message, prefixed with what
// the handler was trying to do.
func RespondError(c *gin.Context, action string, err error) {
	status, message := ErrorStatus(err)
	logging.FromContext(c.Request.Context()).Error(action,
		"error", err,
		"status", status,
		"kind", directus.KindOf(err),
	)
	if action != "" {
		message = action + ": " + message
	}
	c.JSON(status, NewErrorResponse(message))
}
