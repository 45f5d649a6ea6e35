package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"seminar/internal/errors"
	"seminar/internal/service"
)

// SeminarHandler handles seminar endpoints.
type SeminarHandler struct {
	seminarService service.SeminarService
}

// NewSeminarHandler creates a new seminar handler.
func NewSeminarHandler(seminarService service.SeminarService) *SeminarHandler {
	return &SeminarHandler{seminarService: seminarService}
}

// CreateSeminarRequest represents a new seminar. Missing values are reported
// by the service with domain messages, so nothing is tagged required here.
type CreateSeminarRequest struct {
	Name     string `json:"name"`
	Capacity *int   `json:"capacity"`
	Count    *int   `json:"count"`
	Time     string `json:"time" example:"09:30"`
	Online   *bool  `json:"online"`
}

// ModifySeminarRequest changes the supplied fields of a seminar.
type ModifySeminarRequest struct {
	ID       uint    `json:"id" validate:"required"`
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	Count    *int    `json:"count"`
	Time     *string `json:"time"`
	Online   *bool   `json:"online"`
}

// ApplySeminarRequest selects the role to join with.
type ApplySeminarRequest struct {
	Role string `json:"role" example:"participant"`
}

// CreateSeminar godoc
// @Summary Create a seminar
// @Tags seminars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSeminarRequest true "Seminar data"
// @Success 201 {object} model.SeminarDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /seminar [post]
func (h *SeminarHandler) CreateSeminar(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return err
	}
	var req CreateSeminarRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	detail, err := h.seminarService.CreateSeminar(c.Request().Context(), uid, service.CreateSeminarInput{
		Name:     req.Name,
		Capacity: req.Capacity,
		Count:    req.Count,
		Time:     req.Time,
		Online:   req.Online,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, detail)
}

// ModifySeminar godoc
// @Summary Modify a seminar
// @Description Only the owning instructor may modify. Omitted fields are unchanged.
// @Tags seminars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ModifySeminarRequest true "Fields to change"
// @Success 200 {object} model.SeminarDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /seminar [put]
func (h *SeminarHandler) ModifySeminar(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return err
	}
	var req ModifySeminarRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	detail, err := h.seminarService.ModifySeminar(c.Request().Context(), uid, service.ModifySeminarInput{
		ID:       req.ID,
		Name:     req.Name,
		Capacity: req.Capacity,
		Count:    req.Count,
		Time:     req.Time,
		Online:   req.Online,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// ListSeminars godoc
// @Summary List seminars
// @Tags seminars
// @Produce json
// @Security BearerAuth
// @Param name query string false "Case-insensitive name filter"
// @Param order query string false "earliest for oldest first"
// @Param page query int false "0-based page"
// @Param size query int false "Page size (max 100)"
// @Success 200 {object} model.SeminarPage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /seminar [get]
func (h *SeminarHandler) ListSeminars(c echo.Context) error {
	in := service.ListSeminarsInput{
		Name:  c.QueryParam("name"),
		Order: c.QueryParam("order"),
	}
	if err := echo.QueryParamsBinder(c).
		Int("page", &in.Page).
		Int("size", &in.PageSize).
		BindError(); err != nil {
		return errors.BadRequest(errors.MsgInvalidRequestBody)
	}

	page, err := h.seminarService.ListSeminars(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetSeminar godoc
// @Summary Get a seminar
// @Tags seminars
// @Produce json
// @Param id path int true "Seminar ID"
// @Success 200 {object} model.SeminarDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /seminar/{id} [get]
func (h *SeminarHandler) GetSeminar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.seminarService.GetSeminar(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// ApplySeminar godoc
// @Summary Join a seminar as instructor or participant
// @Tags seminars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Seminar ID"
// @Param request body ApplySeminarRequest true "Role"
// @Success 201 {object} model.SeminarDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /seminar/{id}/user [post]
func (h *SeminarHandler) ApplySeminar(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ApplySeminarRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	detail, err := h.seminarService.ApplySeminar(c.Request().Context(), uid, id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, detail)
}

// DropSeminar godoc
// @Summary Leave a seminar
// @Description The membership row is kept as dropped and blocks re-joining.
// @Tags seminars
// @Produce json
// @Security BearerAuth
// @Param id path int true "Seminar ID"
// @Success 200 {object} model.SeminarDetail
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /seminar/{id}/user [delete]
func (h *SeminarHandler) DropSeminar(c echo.Context) error {
	uid, err := requesterID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.seminarService.DropSeminar(c.Request().Context(), uid, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}
