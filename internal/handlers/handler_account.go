package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
	"github.com/fxbureau/fxbureau_backend/internal/middleware"
)

// accountHandler handles chart-of-accounts requests.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to the account directory.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/main", h.listMainAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
	}
}

// createAccount godoc
// @Summary Create a ledger account
// @Description Creates a sub-ledger account under a main-account category
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateLedgerAccountRequest true "Account details"
// @Success 201 {object} dto.LedgerAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLedgerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateLedgerAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Account code already exists"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown currency or main account"})
		default:
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerAccountResponse(account))
}

// listAccounts godoc
// @Summary List ledger accounts
// @Description Retrieves ledger accounts, filterable by currency, branch and cash flag
// @Tags accounts
// @Produce json
// @Param currencyCode query string false "Currency code"
// @Param branchID query string false "Branch ID"
// @Param isCash query bool false "Cash accounts only"
// @Param activeOnly query bool false "Only active accounts"
// @Success 200 {array} dto.LedgerAccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter := portsrepo.LedgerAccountFilter{
		ActiveOnly: c.Query("activeOnly") == "true",
	}
	if v := c.Query("currencyCode"); v != "" {
		filter.CurrencyCode = &v
	}
	if v := c.Query("branchID"); v != "" {
		filter.BranchID = &v
	}
	if v := c.Query("isCash"); v != "" {
		isCash := v == "true"
		filter.IsCash = &isCash
	}

	accounts, err := h.accountService.ListLedgerAccounts(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerAccountResponses(accounts))
}

// listMainAccounts godoc
// @Summary List main accounts
// @Description Retrieves the five chart-of-accounts category roots
// @Tags accounts
// @Produce json
// @Success 200 {array} dto.MainAccountResponse
// @Failure 500 {object} map[string]string "Failed to list main accounts"
// @Security BearerAuth
// @Router /accounts/main [get]
func (h *accountHandler) listMainAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	mains, err := h.accountService.ListMainAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list main accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list main accounts"})
		return
	}

	responses := make([]dto.MainAccountResponse, len(mains))
	for i := range mains {
		responses[i] = dto.ToMainAccountResponse(&mains[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getAccount godoc
// @Summary Get a ledger account
// @Description Retrieves one ledger account by id
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.LedgerAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.accountService.GetLedgerAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerAccountResponse(account))
}

// updateAccount godoc
// @Summary Update a ledger account
// @Description Applies a partial update to a ledger account's mutable fields
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param update body dto.UpdateLedgerAccountRequest true "Fields to update"
// @Success 200 {object} dto.LedgerAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateLedgerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateLedgerAccount(c.Request.Context(), c.Param("accountID"), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerAccountResponse(account))
}
