package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the user id injected by the Auth middleware. A
// missing or non-positive id means the token carried no usable
// identity, so the request is rejected with 401 before any service
// call. Ownership is only ever taken from here, never from a request
// body.
func ctxUserID(c echo.Context) (int64, error) {
	userID, _ := c.Get("user_id").(int64)
	if userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}
	return userID, nil
}
