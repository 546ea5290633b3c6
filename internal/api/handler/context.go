package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/team9/crm-auth/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware. An empty
// user id means the middleware never ran for this route; reject rather than
// proceed with a blank subject.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role, nil
}
