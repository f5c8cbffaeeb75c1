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

// rateHandler handles exchange rate registry requests.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to the rate registry.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.POST("", h.setRate)
		rates.GET("/:base", h.listCurrentRates)
		rates.GET("/:base/:target", h.getRate)
		rates.GET("/:base/:target/history", h.getRateHistory)
	}
}

// setRate godoc
// @Summary Publish a rate
// @Description Closes the pair's active rate and publishes a new buy/sell pair with derived mid and spread
// @Tags rates
// @Accept json
// @Produce json
// @Param rate body dto.SetRateRequest true "Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown currency"
// @Failure 500 {object} map[string]string "Failed to set rate"
// @Security BearerAuth
// @Router /rates [post]
func (h *rateHandler) setRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.SetRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown currency"})
		default:
			logger.Error("Failed to set rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set rate"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listCurrentRates godoc
// @Summary List current rates
// @Description Retrieves one currently effective rate per target for a base currency
// @Tags rates
// @Produce json
// @Param base path string true "Base currency code"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Security BearerAuth
// @Router /rates/{base} [get]
func (h *rateHandler) listCurrentRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.GetCurrentRates(c.Request.Context(), c.Param("base"))
	if err != nil {
		logger.Error("Failed to list current rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponses(rates))
}

// getRate godoc
// @Summary Get the current rate
// @Description Retrieves the currently effective rate for one pair
// @Tags rates
// @Produce json
// @Param base path string true "Base currency code"
// @Param target path string true "Target currency code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "No effective rate for pair"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Security BearerAuth
// @Router /rates/{base}/{target} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.GetRate(c.Request.Context(), c.Param("base"), c.Param("target"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No effective rate for pair"})
		} else {
			logger.Error("Failed to get rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getRateHistory godoc
// @Summary Get rate history
// @Description Retrieves a pair's immutable rate history, most-recent-first
// @Tags rates
// @Produce json
// @Param base path string true "Base currency code"
// @Param target path string true "Target currency code"
// @Param limit query int false "Max rows"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to retrieve history"
// @Security BearerAuth
// @Router /rates/{base}/{target}/history [get]
func (h *rateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	history, err := h.rateService.GetRateHistory(c.Request.Context(), c.Param("base"), c.Param("target"), limit)
	if err != nil {
		logger.Error("Failed to get rate history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponses(history))
}
