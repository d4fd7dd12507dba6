package handler

import (
	"net/http"

	"legalpad/internal/contract"
	"legalpad/internal/service"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AppointmentHandler struct {
	Service *service.DefaultAppointmentService
}

func NewAppointmentHandler(svc *service.DefaultAppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

func (h *AppointmentHandler) ListAppointments(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	query := new(contract.AppointmentListQuery)
	if err := c.Bind(query); err != nil {
		return fail(c, apierror.MalformedQueryError)
	}

	apts, page, apierr := h.Service.ListAppointments(user, query)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKPage(apts, page))
}

func (h *AppointmentHandler) CalendarView(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	query := new(contract.CalendarQuery)
	if err := c.Bind(query); err != nil {
		return fail(c, apierror.MalformedQueryError)
	}

	entries, apierr := h.Service.CalendarView(user, query)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(entries))
}

func (h *AppointmentHandler) GetAppointment(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	apt, apierr := h.Service.GetAppointment(user, id)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(apt))
}

func (h *AppointmentHandler) CreateAppointment(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	req := new(contract.AppointmentRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	apt, apierr := h.Service.CreateAppointment(user, req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusCreated, contract.OKMessage("Appointment created successfully", apt))
}

func (h *AppointmentHandler) UpdateAppointment(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	req := new(contract.UpdateAppointmentRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	apt, apierr := h.Service.UpdateAppointment(user, id, req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Appointment updated successfully", apt))
}

func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	req := new(contract.UpdateAppointmentStatusRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	apt, apierr := h.Service.UpdateStatus(user, id, req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Appointment status updated", apt))
}

func (h *AppointmentHandler) DeleteAppointment(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	if apierr := h.Service.DeleteAppointment(user, id); apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Appointment deleted successfully", nil))
}
