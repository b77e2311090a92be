package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type LoyaltyHandler struct {
	uc *usecase.LoyaltyUsecase
}

func NewLoyaltyHandler(uc *usecase.LoyaltyUsecase) *LoyaltyHandler {
	return &LoyaltyHandler{uc: uc}
}

func (h *LoyaltyHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/loyalty")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/profile", h.profile)
	g.GET("/notifications", h.notifications)
	g.PUT("/notifications/:id/read", h.markRead)
}

func (h *LoyaltyHandler) profile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoyaltyHandler) notifications(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListNotifications(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoyaltyHandler) markRead(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.MarkNotificationRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
