package handler

import (
	"net/http"

	"legalpad/internal/contract"
	"legalpad/internal/service"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type NoteHandler struct {
	Service *service.DefaultNoteService
}

func NewNoteHandler(svc *service.DefaultNoteService) *NoteHandler {
	return &NoteHandler{Service: svc}
}

func (h *NoteHandler) ListNotes(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	query := new(contract.NoteListQuery)
	if err := c.Bind(query); err != nil {
		return fail(c, apierror.MalformedQueryError)
	}

	notes, page, apierr := h.Service.ListNotes(user, query)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKPage(notes, page))
}

func (h *NoteHandler) ListTags(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	tags, apierr := h.Service.ListTags(user)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(tags))
}

func (h *NoteHandler) GetNote(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	note, apierr := h.Service.GetNote(user, id)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(note))
}

func (h *NoteHandler) CreateNote(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	req := new(contract.NoteRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	note, apierr := h.Service.CreateNote(user, req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusCreated, contract.OKMessage("Note created successfully", note))
}

func (h *NoteHandler) UpdateNote(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	req := new(contract.UpdateNoteRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, apierror.MalformedBodyError)
	}

	note, apierr := h.Service.UpdateNote(user, id, req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Note updated successfully", note))
}

func (h *NoteHandler) DeleteNote(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	if apierr := h.Service.DeleteNote(user, id); apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OKMessage("Note deleted successfully", nil))
}

func (h *NoteHandler) ToggleFavorite(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	fav, apierr := h.Service.ToggleFavorite(user, id)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusOK, contract.OK(fav))
}

func (h *NoteHandler) UploadVoice(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	file, err := c.FormFile("voiceRecording")
	if err != nil {
		return fail(c, apierror.MissingUploadError)
	}

	voice, apierr := h.Service.UploadVoice(c.Request().Context(), user, id, file)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusCreated, contract.OKMessage("Voice recording uploaded", voice))
}

func (h *NoteHandler) UploadAttachment(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	id, apierr := paramID(c, "id")
	if apierr != nil {
		return fail(c, apierr)
	}

	file, err := c.FormFile("attachment")
	if err != nil {
		return fail(c, apierror.MissingUploadError)
	}

	att, apierr := h.Service.UploadAttachment(c.Request().Context(), user, id, file)
	if apierr != nil {
		return fail(c, apierr)
	}
	return c.JSON(http.StatusCreated, contract.OKMessage("Attachment uploaded", att))
}
