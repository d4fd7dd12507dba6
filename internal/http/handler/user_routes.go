package handler

import (
	"net/http"

	"legalpad/internal/contract"
	"legalpad/internal/service"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service *service.DefaultUserService
}

func NewUserHandler(svc *service.DefaultUserService) *UserHandler {
	return &UserHandler{Service: svc}
}

func (h *UserHandler) Signup(c echo.Context) error {
	req := new(contract.SignupRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	user, apierr := h.Service.CreateUser(c.Request().Context(), req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusCreated, contract.OKMessage("User created, confirmation code sent", user))
}

func (h *UserHandler) Login(c echo.Context) error {
	req := new(contract.LoginRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	tokens, apierr := h.Service.Login(c.Request().Context(), req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(tokens))
}

func (h *UserHandler) ConfirmSignup(c echo.Context) error {
	req := new(contract.ConfirmSignupRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	if apierr := h.Service.ConfirmSignup(c.Request().Context(), req); apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Account confirmed successfully", nil))
}

func (h *UserHandler) ResendConfirmation(c echo.Context) error {
	req := new(contract.ResendConfirmationRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	if apierr := h.Service.ResendConfirmation(c.Request().Context(), req); apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Confirmation code resent", nil))
}

func (h *UserHandler) CheckEmail(c echo.Context) error {
	req := new(contract.CheckEmailRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	resp, apierr := h.Service.CheckEmail(req.Email)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(resp))
}

func (h *UserHandler) GetSelf(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(h.Service.GetCurrentUser(user)))
}
