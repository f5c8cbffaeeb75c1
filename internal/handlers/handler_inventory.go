package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
	"github.com/fxbureau/fxbureau_backend/internal/middleware"
)

// inventoryHandler handles branch currency-inventory requests.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to branch currency inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	branch := rg.Group("/branches/:branchID/inventory")
	{
		branch.GET("", h.getInventory)
		branch.POST("/initialize", h.initializeInventory)
		branch.POST("/adjust", h.adjustInventory)
		branch.POST("/wholesale-buy", h.wholesaleBuy)
		branch.POST("/wholesale-sell", h.wholesaleSell)
		branch.GET("/movements", h.getMovements)
		branch.PUT("/:currencyCode/thresholds", h.setThresholds)
	}
	rg.GET("/inventory/alerts", h.getAlerts)
}

// getInventory godoc
// @Summary Get branch inventory
// @Description Retrieves the branch's per-currency stock positions
// @Tags inventory
// @Produce json
// @Param branchID path string true "Branch ID"
// @Success 200 {array} dto.InventoryResponse
// @Failure 500 {object} map[string]string "Failed to retrieve inventory"
// @Security BearerAuth
// @Router /branches/{branchID}/inventory [get]
func (h *inventoryHandler) getInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.inventoryService.GetInventory(c.Request.Context(), c.Param("branchID"))
	if err != nil {
		logger.Error("Failed to retrieve inventory", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inventory"})
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryResponses(rows))
}

// initializeInventory godoc
// @Summary Initialize branch inventory
// @Description Creates zero-balance inventory rows for every active currency the branch lacks; idempotent
// @Tags inventory
// @Produce json
// @Param branchID path string true "Branch ID"
// @Success 200 {object} dto.InitializeInventoryResponse
// @Failure 500 {object} map[string]string "Failed to initialize inventory"
// @Security BearerAuth
// @Router /branches/{branchID}/inventory/initialize [post]
func (h *inventoryHandler) initializeInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.inventoryService.InitializeInventory(c.Request.Context(), c.Param("branchID"), userID)
	if err != nil {
		logger.Error("Failed to initialize inventory", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize inventory"})
		return
	}
	c.JSON(http.StatusOK, dto.InitializeInventoryResponse{Created: created})
}

// adjustInventory godoc
// @Summary Adjust branch inventory
// @Description Applies a signed manual delta with a mandatory reason
// @Tags inventory
// @Accept json
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param adjustment body dto.AdjustInventoryRequest true "Adjustment details"
// @Success 201 {object} dto.InventoryMovementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Inventory row not found"
// @Failure 422 {object} map[string]string "Insufficient inventory"
// @Failure 500 {object} map[string]string "Failed to adjust inventory"
// @Security BearerAuth
// @Router /branches/{branchID}/inventory/adjust [post]
func (h *inventoryHandler) adjustInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.inventoryService.AdjustInventory(c.Request.Context(), c.Param("branchID"), req, userID)
	if err != nil {
		h.respondMovementError(c, logger, err, "Failed to adjust inventory")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryMovementResponse(movement))
}

// wholesaleBuy godoc
// @Summary Record a wholesale buy
// @Description Adds stock bought from a wholesale counterparty
// @Tags inventory
// @Accept json
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param purchase body dto.WholesaleRequest true "Purchase details"
// @Success 201 {object} dto.InventoryMovementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to record wholesale buy"
// @Security BearerAuth
// @Router /branches/{branchID}/inventory/wholesale-buy [post]
func (h *inventoryHandler) wholesaleBuy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WholesaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.inventoryService.RecordWholesaleBuy(c.Request.Context(), c.Param("branchID"), req, userID)
	if err != nil {
		h.respondMovementError(c, logger, err, "Failed to record wholesale buy")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryMovementResponse(movement))
}

// wholesaleSell godoc
// @Summary Record a wholesale sell
// @Description Removes stock sold to a wholesale counterparty; the balance may not go negative
// @Tags inventory
// @Accept json
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param sale body dto.WholesaleRequest true "Sale details"
// @Success 201 {object} dto.InventoryMovementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Inventory row not found"
// @Failure 422 {object} map[string]string "Insufficient inventory"
// @Failure 500 {object} map[string]string "Failed to record wholesale sell"
// @Security BearerAuth
// @Router /branches/{branchID}/inventory/wholesale-sell [post]
func (h *inventoryHandler) wholesaleSell(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WholesaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.inventoryService.RecordWholesaleSell(c.Request.Context(), c.Param("branchID"), req, userID)
	if err != nil {
		h.respondMovementError(c, logger, err, "Failed to record wholesale sell")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryMovementResponse(movement))
}

// getMovements godoc
// @Summary List inventory movements
// @Description Retrieves the branch's movement log, newest first
// @Tags inventory
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param currencyCode query string false "Currency code"
// @Param limit query int false "Maximum number of movements"
// @Success 200 {array} dto.InventoryMovementResponse
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Security BearerAuth
// @Router /branches/{branchID}/inventory/movements [get]
func (h *inventoryHandler) getMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var currencyCode *string
	if v := c.Query("currencyCode"); v != "" {
		currencyCode = &v
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	movements, err := h.inventoryService.GetMovements(c.Request.Context(), c.Param("branchID"), currencyCode, limit)
	if err != nil {
		logger.Error("Failed to list inventory movements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryMovementResponses(movements))
}

// setThresholds godoc
// @Summary Set inventory thresholds
// @Description Upserts the low/high alert thresholds without touching the balance
// @Tags inventory
// @Accept json
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param currencyCode path string true "Currency code"
// @Param thresholds body dto.SetThresholdsRequest true "Threshold values"
// @Success 204 "Thresholds updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Inventory row not found"
// @Failure 500 {object} map[string]string "Failed to set thresholds"
// @Security BearerAuth
// @Router /branches/{branchID}/inventory/{currencyCode}/thresholds [put]
func (h *inventoryHandler) setThresholds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.inventoryService.SetThresholds(c.Request.Context(), c.Param("branchID"), c.Param("currencyCode"), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory row not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to set thresholds", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set thresholds"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// getAlerts godoc
// @Summary List low-inventory alerts
// @Description Retrieves every inventory row at or under its low threshold, across branches
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.InventoryAlertResponse
// @Failure 500 {object} map[string]string "Failed to list alerts"
// @Security BearerAuth
// @Router /inventory/alerts [get]
func (h *inventoryHandler) getAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	alerts, err := h.inventoryService.GetLowInventoryAlerts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list low-inventory alerts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list alerts"})
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryAlertResponses(alerts))
}

func (h *inventoryHandler) respondMovementError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory row not found"})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient inventory"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
