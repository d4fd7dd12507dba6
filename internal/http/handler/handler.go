package handler

import (
	"net/http"
	"strconv"

	"legalpad/internal/contract"
	"legalpad/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

func fail(c echo.Context, err apierror.ErrorResponse) error {
	return c.JSON(err.Code(), err)
}

func paramID(c echo.Context, name string) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError(name, "int64")
	}
	return id, nil
}

// Health is wired outside the authenticated group.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, contract.OK(echo.Map{"status": "healthy"}))
}
