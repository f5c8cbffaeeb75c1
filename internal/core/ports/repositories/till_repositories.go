package repositories

import (
	"context"
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// TillReader defines read operations for tills and their cash accounts.
type TillReader interface {
	// FindTillByID retrieves a till by id.
	FindTillByID(ctx context.Context, tillID string) (*domain.Till, error)

	// ListTills retrieves tills, optionally scoped to a branch.
	ListTills(ctx context.Context, branchID *string) ([]domain.Till, error)

	// ListCashAccountsByTill retrieves the till's per-currency cash balances.
	ListCashAccountsByTill(ctx context.Context, tillID string) ([]domain.CashLedgerAccount, error)
}

// TillWriter defines write operations for tills and their cash accounts.
//
// SignIn and SignOut are check-and-set operations: the till row is locked,
// occupancy is verified against that single consistent read, and the patch
// commits in the same unit. SignIn returns apperrors.ErrConflict when the till
// is occupied by another user and not shared; SignOut returns
// apperrors.ErrForbidden when the caller is not the current occupant.
type TillWriter interface {
	// SaveTill persists a new till.
	SaveTill(ctx context.Context, till domain.Till) error

	// UpdateTill applies a typed partial update.
	UpdateTill(ctx context.Context, tillID string, update domain.TillUpdate, userID string, now time.Time) (*domain.Till, error)

	// DeactivateTill marks a till inactive.
	DeactivateTill(ctx context.Context, tillID string, userID string, now time.Time) error

	// SignIn records userID as the till occupant.
	SignIn(ctx context.Context, tillID, userID string, at time.Time) (*domain.Till, error)

	// SignOut clears the till occupancy.
	SignOut(ctx context.Context, tillID, userID string, at time.Time) error

	// SaveMissingCashAccounts inserts the given cash accounts, skipping any
	// (till, currency) that already exists. Returns the number created.
	SaveMissingCashAccounts(ctx context.Context, accounts []domain.CashLedgerAccount) (int, error)
}

// TillRepositoryFacade combines all till-related repository interfaces.
type TillRepositoryFacade interface {
	TillReader
	TillWriter
}
