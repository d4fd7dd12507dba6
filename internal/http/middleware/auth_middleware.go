package middleware

import (
	"legalpad/internal/service"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type AuthMiddleware struct {
	UserRepo service.UserRepository
}

func NewAuthMiddleware(userRepo service.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{UserRepo: userRepo}
}

// RequireUser validates the bearer token against the pool's published keys
// and resolves it to a local account, which downstream handlers read through
// utils.GetUserFromContext.
func (m *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := utils.ParseTokenDataCtx(c)
		if err != nil {
			apierr := apierror.InvalidAuthTokenError
			return c.JSON(apierr.Code(), apierr)
		}

		user, ferr := m.UserRepo.FindActiveBySub(data.Sub)
		if ferr != nil {
			log.Errorf("failed to resolve user for sub %s: %v", data.Sub, ferr)
			apierr := apierror.InternalServerError
			return c.JSON(apierr.Code(), apierr)
		}
		if user == nil {
			apierr := apierror.UnauthorizedError
			return c.JSON(apierr.Code(), apierr)
		}
		if user.Suspended {
			apierr := apierror.NewForbiddenError("Account is suspended")
			return c.JSON(apierr.Code(), apierr)
		}

		c.Set("user", user)
		return next(c)
	}
}
