package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"seminar/internal/service"
)

// UserHandler exposes user profile endpoints.
type UserHandler struct {
	service service.UserService
}

// NewUserHandler builds handlers for user routes.
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// EditUserRequest is a partial profile update.
type EditUserRequest struct {
	Username   *string `json:"username"`
	Password   *string `json:"password" validate:"omitempty,min=1"`
	University *string `json:"university"`
	Company    *string `json:"company"`
	Year       *int    `json:"year"`
}

// ParticipantRequest adds a participant profile to the current user.
type ParticipantRequest struct {
	University   string `json:"university"`
	IsRegistered *bool  `json:"is_registered"`
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// EditMe godoc
// @Summary Edit the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EditUserRequest true "Fields to change"
// @Success 200 {object} model.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /user/me [put]
func (h *UserHandler) EditMe(c echo.Context) error {
	id, err := requesterID(c)
	if err != nil {
		return err
	}
	var req EditUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := h.service.EditUser(c.Request().Context(), id, service.EditUserInput{
		Username:   req.Username,
		Password:   req.Password,
		University: req.University,
		Company:    req.Company,
		Year:       req.Year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// RegisterParticipant godoc
// @Summary Register the current user as a participant
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ParticipantRequest true "Participant profile"
// @Success 201 {object} model.UserView
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /user/participant [post]
func (h *UserHandler) RegisterParticipant(c echo.Context) error {
	id, err := requesterID(c)
	if err != nil {
		return err
	}
	var req ParticipantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := h.service.RegisterParticipant(c.Request().Context(), id, service.RegisterParticipantInput{
		University:   req.University,
		IsRegistered: req.IsRegistered,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}
