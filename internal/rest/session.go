package rest

import (
	"context"
	"myFitLane/domain"
	"myFitLane/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SessionHandler struct {
		sessionService SessionService
		validator      *validator.Validate
		timeout        time.Duration
	}

	SessionService interface {
		Login(ctx context.Context, username, password string) (domain.Session, error)
		Logout(ctx context.Context) error
		CurrentUser(ctx context.Context) (string, error)
		GetProfile(ctx context.Context, id int) (domain.UpstreamUser, error)
		UpdateProfile(ctx context.Context, id int, user domain.UpstreamUser) (domain.UpstreamUser, error)
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileRequest struct {
		Email     string `json:"email" validate:"omitempty,email"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Phone     string `json:"phone"`
	}
)

func NewSessionHandler(sessionService SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

func (h *SessionHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind login request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate login request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessionService.Login(ctx, req.Username, req.Password)
	if err != nil {
		logger.Error("Failed to login", "error", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"token":    session.Token,
		"username": session.Username,
	})
}

func (h *SessionHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sessionService.Logout(ctx); err != nil {
		logger.Error("Failed to logout", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

// Me reports the persisted active username, null when nobody is logged in.
func (h *SessionHandler) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	username, err := h.sessionService.CurrentUser(ctx)
	if err != nil {
		logger.Error("Failed to read current user", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	var current *string
	if username != "" {
		current = &username
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"username": current,
	})
}

func (h *SessionHandler) GetProfile(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.Atoi(idStr)
	if err != nil {
		logger.Error("Invalid user id", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.sessionService.GetProfile(ctx, id)
	if err != nil {
		if err.Error() == "invalid user id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get profile",
		"user":    user,
	})
}

func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.Atoi(idStr)
	if err != nil {
		logger.Error("Invalid user id", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind profile request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate profile request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	user := domain.UpstreamUser{
		ID:    id,
		Email: req.Email,
		Name: domain.UpstreamName{
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
		},
		Phone: req.Phone,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.sessionService.UpdateProfile(ctx, id, user)
	if err != nil {
		if err.Error() == "invalid user id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update profile",
		"user":    updated,
	})
}
