package domain

// MainAccountCategory is one of the five chart-of-accounts roots.
type MainAccountCategory string

const (
	CategoryAssets      MainAccountCategory = "ASSETS"
	CategoryLiabilities MainAccountCategory = "LIABILITIES"
	CategoryEquity      MainAccountCategory = "EQUITY"
	CategoryRevenue     MainAccountCategory = "REVENUE"
	CategoryExpenses    MainAccountCategory = "EXPENSES"
)

// MainAccount is a chart-of-accounts category root that ledger accounts roll up under.
type MainAccount struct {
	MainAccountID string              `json:"mainAccountID"`
	Name          string              `json:"name"`
	Category      MainAccountCategory `json:"category"`
	AuditFields
}

// LedgerAccount is a sub-ledger account under a main account. Cash accounts
// (IsCash) carry a currency and may be scoped to a branch or a till; the
// journal poster resolves one cash account per currency leg through them.
type LedgerAccount struct {
	AccountID     string  `json:"accountID"`
	Code          string  `json:"code"` // Unique
	Name          string  `json:"name"`
	MainAccountID string  `json:"mainAccountID"`
	CurrencyCode  string  `json:"currencyCode"`
	BranchID      *string `json:"branchID,omitempty"`
	TillID        *string `json:"tillID,omitempty"`
	IsCash        bool    `json:"isCash"`
	IsBank        bool    `json:"isBank"`
	IsActive      bool    `json:"isActive"`
	AuditFields
}

// LedgerAccountUpdate exposes the genuinely mutable fields of a ledger account.
type LedgerAccountUpdate struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
