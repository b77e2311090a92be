package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.GET("/orders/:id", h.detail)
	admin.PUT("/orders/:id/status", h.updateStatus)
	//破損台帳の復旧用。支払履歴を捨てるので管理者限定
	admin.POST("/orders/:id/reinitialize-tranches", h.reinitializeTranches)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	status := c.QueryParam("status")

	var clientID *int64
	if v := c.QueryParam("client_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid client_id"})
		}
		clientID = &id
	}

	var fromPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		fromPtr = &tm
	}

	var toPtr *time.Time
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		toPtr = &tm
	}

	out, err := h.uc.List(c.Request().Context(), usecase.AdminOrderListInput{
		Page:     page,
		Limit:    limit,
		Status:   status,
		ClientID: clientID,
		From:     fromPtr,
		To:       toPtr,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetDetail(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// ★操作した管理者IDを取得（監査ログ用）
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.UpdateStatus(
		c.Request().Context(),
		adminID,
		orderID,
		usecase.UpdateOrderStatusInput{Status: req.Status},
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) reinitializeTranches(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ReinitializeTranches(c.Request().Context(), adminID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
