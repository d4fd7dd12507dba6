package handler

import (
	"net/http"

	"legalpad/internal/contract"
	"legalpad/internal/service"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ClientHandler struct {
	Service *service.DefaultClientService
}

func NewClientHandler(svc *service.DefaultClientService) *ClientHandler {
	return &ClientHandler{Service: svc}
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	query := new(contract.ClientListQuery)
	if err := c.Bind(query); err != nil {
		return fail(c, apierror.MalformedQueryError)
	}

	clients, page, apierr := h.Service.ListClients(user, query)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKPage(clients, page))
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	client, apierr := h.Service.GetClient(user, id)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(client))
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	req := new(contract.ClientRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	client, apierr := h.Service.CreateClient(user, req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusCreated, contract.OKMessage("Client created successfully", client))
}

func (h *ClientHandler) UpdateClient(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	req := new(contract.UpdateClientRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	client, apierr := h.Service.UpdateClient(user, id, req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Client updated successfully", client))
}

func (h *ClientHandler) DeleteClient(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	if apierr := h.Service.DeleteClient(user, id); apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Client deleted successfully", nil))
}

func (h *ClientHandler) AddClientNote(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	req := new(contract.ClientNotePayload)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	client, apierr := h.Service.AddClientNote(user, id, req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusCreated, contract.OKMessage("Note added successfully", client))
}

func (h *ClientHandler) Suggestions(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	suggestions, apierr := h.Service.Suggestions(user, c.QueryParam("q"))
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(suggestions))
}
