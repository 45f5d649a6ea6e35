package handler

import (
	"github.com/labstack/echo/v4"

	"seminar/internal/auth"
	"seminar/internal/errors"
)

const (
	// ContextKeyClaims is where the JWT middleware stores *auth.Claims.
	ContextKeyClaims = "user"
	// ContextKeyToken holds the raw bearer token of the request.
	ContextKeyToken = "token"
)

func claimsFrom(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ContextKeyClaims).(*auth.Claims)
	if !ok || claims == nil {
		return nil, errors.Forbidden(errors.MsgUnidentifiedUser)
	}
	return claims, nil
}

func requesterID(c echo.Context) (uint, error) {
	claims, err := claimsFrom(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest(errors.MsgInvalidRequestBody)
	}
	return c.Validate(req)
}

func pathID(c echo.Context, name string) (uint, error) {
	var id uint
	if err := echo.PathParamsBinder(c).MustUint(name, &id).BindError(); err != nil {
		return 0, errors.BadRequest(errors.MsgInvalidRequestBody)
	}
	return id, nil
}
