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

// tillHandler handles till, balance and till-transaction requests.
type tillHandler struct {
	tillService portssvc.TillSvcFacade
}

func newTillHandler(ts portssvc.TillSvcFacade) *tillHandler {
	return &tillHandler{tillService: ts}
}

// registerTillRoutes registers routes related to tills and their cash activity.
func registerTillRoutes(rg *gin.RouterGroup, tillService portssvc.TillSvcFacade) {
	h := newTillHandler(tillService)

	tills := rg.Group("/tills")
	{
		tills.POST("", h.createTill)
		tills.GET("", h.listTills)
		tills.GET("/:tillID", h.getTill)
		tills.PUT("/:tillID", h.updateTill)
		tills.DELETE("/:tillID", h.removeTill)
		tills.POST("/:tillID/sign-in", h.signIn)
		tills.POST("/:tillID/sign-out", h.signOut)
		tills.POST("/:tillID/cash-accounts", h.createCashAccounts)
		tills.GET("/:tillID/balances", h.getBalances)
		tills.POST("/:tillID/cash-movements", h.createCashMovement)
		tills.POST("/:tillID/exchanges", h.createExchange)
		tills.GET("/:tillID/transactions", h.getTillTransactions)
	}
	rg.GET("/transactions", h.listTransactions)
}

// createTill godoc
// @Summary Create a till
// @Description Creates a new till in a branch
// @Tags tills
// @Accept json
// @Produce json
// @Param till body dto.CreateTillRequest true "Till details"
// @Success 201 {object} dto.TillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create till"
// @Security BearerAuth
// @Router /tills [post]
func (h *tillHandler) createTill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	till, err := h.tillService.CreateTill(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create till", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create till"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToTillResponse(till))
}

// listTills godoc
// @Summary List tills
// @Description Retrieves tills, optionally scoped to a branch
// @Tags tills
// @Produce json
// @Param branchID query string false "Branch ID"
// @Success 200 {array} dto.TillResponse
// @Failure 500 {object} map[string]string "Failed to list tills"
// @Security BearerAuth
// @Router /tills [get]
func (h *tillHandler) listTills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var branchID *string
	if v := c.Query("branchID"); v != "" {
		branchID = &v
	}

	tills, err := h.tillService.ListTills(c.Request.Context(), branchID)
	if err != nil {
		logger.Error("Failed to list tills", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tills"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTillResponses(tills))
}

// getTill godoc
// @Summary Get a till
// @Description Retrieves one till by id
// @Tags tills
// @Produce json
// @Param tillID path string true "Till ID"
// @Success 200 {object} dto.TillResponse
// @Failure 404 {object} map[string]string "Till not found"
// @Failure 500 {object} map[string]string "Failed to retrieve till"
// @Security BearerAuth
// @Router /tills/{tillID} [get]
func (h *tillHandler) getTill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	till, err := h.tillService.GetTillByID(c.Request.Context(), c.Param("tillID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Till not found"})
		} else {
			logger.Error("Failed to get till", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve till"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTillResponse(till))
}

// updateTill godoc
// @Summary Update a till
// @Description Applies a typed partial update to a till
// @Tags tills
// @Accept json
// @Produce json
// @Param tillID path string true "Till ID"
// @Param update body dto.UpdateTillRequest true "Fields to update"
// @Success 200 {object} dto.TillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Till not found"
// @Failure 500 {object} map[string]string "Failed to update till"
// @Security BearerAuth
// @Router /tills/{tillID} [put]
func (h *tillHandler) updateTill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateTillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	till, err := h.tillService.UpdateTill(c.Request.Context(), c.Param("tillID"), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Till not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update till", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update till"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTillResponse(till))
}

// removeTill godoc
// @Summary Remove a till
// @Description Deactivates a till; an occupied till cannot be removed
// @Tags tills
// @Produce json
// @Param tillID path string true "Till ID"
// @Success 204 "Till removed"
// @Failure 404 {object} map[string]string "Till not found"
// @Failure 409 {object} map[string]string "Till is occupied"
// @Failure 500 {object} map[string]string "Failed to remove till"
// @Security BearerAuth
// @Router /tills/{tillID} [delete]
func (h *tillHandler) removeTill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.tillService.RemoveTill(c.Request.Context(), c.Param("tillID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Till not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Till is occupied"})
		default:
			logger.Error("Failed to remove till", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove till"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// signIn godoc
// @Summary Sign in to a till
// @Description Makes the caller the till occupant; an occupied non-shared till conflicts
// @Tags tills
// @Produce json
// @Param tillID path string true "Till ID"
// @Success 200 {object} dto.TillResponse
// @Failure 400 {object} map[string]string "Till is inactive"
// @Failure 404 {object} map[string]string "Till not found"
// @Failure 409 {object} map[string]string "Till occupied by another user"
// @Failure 500 {object} map[string]string "Failed to sign in"
// @Security BearerAuth
// @Router /tills/{tillID}/sign-in [post]
func (h *tillHandler) signIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	till, err := h.tillService.SignIn(c.Request.Context(), c.Param("tillID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Till not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Till occupied by another user"})
		default:
			logger.Error("Failed to sign in to till", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTillResponse(till))
}

// signOut godoc
// @Summary Sign out of a till
// @Description Releases the till; only the current occupant may sign out
// @Tags tills
// @Produce json
// @Param tillID path string true "Till ID"
// @Success 204 "Signed out"
// @Failure 403 {object} map[string]string "Caller is not the occupant"
// @Failure 404 {object} map[string]string "Till not found"
// @Failure 500 {object} map[string]string "Failed to sign out"
// @Security BearerAuth
// @Router /tills/{tillID}/sign-out [post]
func (h *tillHandler) signOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.tillService.SignOut(c.Request.Context(), c.Param("tillID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Till not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not the occupant"})
		default:
			logger.Error("Failed to sign out of till", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// createCashAccounts godoc
// @Summary Provision till cash accounts
// @Description Creates one cash account per active currency the till lacks; idempotent
// @Tags tills
// @Produce json
// @Param tillID path string true "Till ID"
// @Success 200 {object} dto.CreateCashAccountsResponse
// @Failure 404 {object} map[string]string "Till not found"
// @Failure 500 {object} map[string]string "Failed to create cash accounts"
// @Security BearerAuth
// @Router /tills/{tillID}/cash-accounts [post]
func (h *tillHandler) createCashAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.tillService.CreateCashAccounts(c.Request.Context(), c.Param("tillID"), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Till or assets main account not found"})
		} else {
			logger.Error("Failed to create cash accounts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cash accounts"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.CreateCashAccountsResponse{Created: created})
}

// getBalances godoc
// @Summary Get till balances
// @Description Retrieves the till's per-currency cash balances
// @Tags tills
// @Produce json
// @Param tillID path string true "Till ID"
// @Success 200 {array} dto.CashAccountResponse
// @Failure 404 {object} map[string]string "Till not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balances"
// @Security BearerAuth
// @Router /tills/{tillID}/balances [get]
func (h *tillHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.tillService.GetCurrentTillBalances(c.Request.Context(), c.Param("tillID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Till not found"})
		} else {
			logger.Error("Failed to retrieve till balances", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balances"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAccountResponses(accounts))
}

// createCashMovement godoc
// @Summary Record a till cash movement
// @Description Applies a cash_in, cash_out or adjustment to the till's cash account
// @Tags transactions
// @Accept json
// @Produce json
// @Param tillID path string true "Till ID"
// @Param movement body dto.CreateCashMovementRequest true "Movement details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Caller is not the occupant"
// @Failure 404 {object} map[string]string "Till or cash account not found"
// @Failure 422 {object} map[string]string "Insufficient cash balance"
// @Failure 500 {object} map[string]string "Failed to record cash movement"
// @Security BearerAuth
// @Router /tills/{tillID}/cash-movements [post]
func (h *tillHandler) createCashMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transaction, err := h.tillService.CreateCashMovement(c.Request.Context(), c.Param("tillID"), req, userID)
	if err != nil {
		h.respondTransactionError(c, logger, err, "Failed to record cash movement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction))
}

// createExchange godoc
// @Summary Record a currency exchange
// @Description Applies both legs of a customer buy/sell exchange atomically
// @Tags transactions
// @Accept json
// @Produce json
// @Param tillID path string true "Till ID"
// @Param exchange body dto.CreateExchangeRequest true "Exchange details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Caller is not the occupant"
// @Failure 404 {object} map[string]string "Till or cash account not found"
// @Failure 422 {object} map[string]string "Insufficient cash balance"
// @Failure 500 {object} map[string]string "Failed to record exchange"
// @Security BearerAuth
// @Router /tills/{tillID}/exchanges [post]
func (h *tillHandler) createExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transaction, err := h.tillService.CreateCurrencyExchange(c.Request.Context(), c.Param("tillID"), req, userID)
	if err != nil {
		h.respondTransactionError(c, logger, err, "Failed to record exchange")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction))
}

// getTillTransactions godoc
// @Summary List the caller's transactions on a till
// @Description Retrieves the caller's transactions on a till, optionally limited to the active sign-in session
// @Tags transactions
// @Produce json
// @Param tillID path string true "Till ID"
// @Param currentSessionOnly query bool false "Only transactions since the caller signed in"
// @Success 200 {array} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Till not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /tills/{tillID}/transactions [get]
func (h *tillHandler) getTillTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	currentSessionOnly := c.Query("currentSessionOnly") == "true"

	transactions, err := h.tillService.GetCurrentTillTransactions(c.Request.Context(), c.Param("tillID"), userID, currentSessionOnly)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Till not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to list till transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(transactions))
}

// listTransactions godoc
// @Summary List till transactions
// @Description Retrieves till transactions visible to the caller: managers and compliance officers see everything, tellers only their own
// @Tags transactions
// @Produce json
// @Param tillID query string false "Till ID"
// @Param status query string false "Transaction status"
// @Param limit query int false "Maximum number of transactions"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *tillHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if v := c.Query("tillID"); v != "" {
		params.TillID = &v
	}
	if v := c.Query("status"); v != "" {
		params.Status = &v
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		params.Limit = limit
	}

	transactions, err := h.tillService.ListTransactions(c.Request.Context(), params, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(transactions))
}

func (h *tillHandler) respondTransactionError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not the occupant"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Till or cash account not found"})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient cash balance"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
