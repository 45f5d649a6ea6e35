package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"seminar/internal/model"
	"seminar/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// SignUpRequest represents a user registration request. Role is
// "participant" or "instructor"; the matching profile fields are read.
type SignUpRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Role         string `json:"role" validate:"required"`
	University   string `json:"university"`
	IsRegistered *bool  `json:"is_registered"`
	Company      string `json:"company"`
	Year         *int   `json:"year"`
}

// SignInRequest represents a user login request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Token string          `json:"token"`
	User  *model.UserView `json:"user,omitempty"`
}

// SignUp godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.SignUp(c.Request().Context(), service.SignUpInput{
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		Role:         req.Role,
		University:   req.University,
		IsRegistered: req.IsRegistered,
		Company:      req.Company,
		Year:         req.Year,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: model.NewUserView(user)})
}

// SignIn godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.LogIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: model.NewUserView(user)})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := requesterID(c)
	if err != nil {
		return err
	}
	view, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Logout godoc
// @Summary Revoke the current access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(ContextKeyToken).(string)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}
