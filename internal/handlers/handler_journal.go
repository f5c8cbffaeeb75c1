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

// journalHandler handles journal posting and reading requests.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to the double-entry journal.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journal := rg.Group("/journal-entries")
	{
		journal.POST("", h.createEntry)
		journal.GET("", h.listEntries)
		journal.GET("/:entryID", h.getEntry)
		journal.POST("/from-transaction/:transactionID", h.postFromTransaction)
		journal.POST("/backfill", h.backfill)
	}
}

// createEntry godoc
// @Summary Create a manual journal entry
// @Description Posts a manually authored entry; debit and credit totals must balance
// @Tags journal
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 404 {object} map[string]string "Unknown ledger account"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown ledger account"})
		default:
			logger.Error("Failed to create journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves journal entries newest first
// @Tags journal
// @Produce json
// @Param limit query int false "Maximum number of entries"
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.journalService.GetJournalEntries(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves one entry with its lines
// @Tags journal
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entry, err := h.journalService.GetJournalEntryWithLines(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to get journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postFromTransaction godoc
// @Summary Post a transaction to the journal
// @Description Posts the balanced two-line entry for a completed exchange; idempotent, a repeat call returns the existing entry
// @Tags journal
// @Produce json
// @Param transactionID path string true "Till transaction ID"
// @Success 200 {object} dto.PostTransactionResponse "Entry already existed"
// @Success 201 {object} dto.PostTransactionResponse "Entry created"
// @Failure 400 {object} map[string]string "Transaction not postable"
// @Failure 404 {object} map[string]string "Transaction or cash account not found"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Security BearerAuth
// @Router /journal-entries/from-transaction/{transactionID} [post]
func (h *journalHandler) postFromTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, alreadyExists, err := h.journalService.CreateJournalEntryFromTransaction(c.Request.Context(), c.Param("transactionID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction or cash account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post transaction to journal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		}
		return
	}

	status := http.StatusCreated
	if alreadyExists {
		status = http.StatusOK
	}
	c.JSON(status, dto.PostTransactionResponse{
		Entry:         dto.ToJournalEntryResponse(entry),
		AlreadyExists: alreadyExists,
	})
}

// backfill godoc
// @Summary Back-fill journal entries
// @Description Posts entries for every completed exchange lacking one; safe to re-run
// @Tags journal
// @Produce json
// @Success 200 {object} dto.BackfillResult
// @Failure 500 {object} map[string]string "Failed to back-fill journal entries"
// @Security BearerAuth
// @Router /journal-entries/backfill [post]
func (h *journalHandler) backfill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.journalService.GenerateAllJournalEntries(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to back-fill journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to back-fill journal entries"})
		return
	}
	c.JSON(http.StatusOK, result)
}
