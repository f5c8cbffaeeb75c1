package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a till transaction.
type TransactionType string

const (
	TxnCashIn       TransactionType = "cash_in"
	TxnCashOut      TransactionType = "cash_out"
	TxnAdjustment   TransactionType = "adjustment"
	TxnCurrencyBuy  TransactionType = "currency_buy"
	TxnCurrencySell TransactionType = "currency_sell"
	TxnTransfer     TransactionType = "transfer"
)

// TransactionStatus is the lifecycle state of a till transaction.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnCancelled TransactionStatus = "cancelled"
	TxnVoided    TransactionStatus = "voided"
)

// TillTransaction is one completed-or-pending till operation: a cash movement
// or a two-legged currency exchange. Financial fields are immutable once the
// transaction is completed; only status and void metadata change afterwards.
type TillTransaction struct {
	TransactionID      string            `json:"transactionID"`
	TillID             string            `json:"tillID"`
	UserID             string            `json:"userID"`
	Type               TransactionType   `json:"type"`
	FromCurrencyCode   string            `json:"fromCurrencyCode"`
	FromAmount         decimal.Decimal   `json:"fromAmount"`
	ToCurrencyCode     string            `json:"toCurrencyCode,omitempty"`
	ToAmount           decimal.Decimal   `json:"toAmount"`
	ExchangeRate       decimal.Decimal   `json:"exchangeRate"`
	ServiceFee         decimal.Decimal   `json:"serviceFee"`
	CustomerName       string            `json:"customerName,omitempty"`
	CustomerIDNumber   string            `json:"customerIDNumber,omitempty"`
	Status             TransactionStatus `json:"status"`
	RequiresCompliance bool              `json:"requiresCompliance"`
	Notes              string            `json:"notes,omitempty"`
	CompletedAt        *time.Time        `json:"completedAt,omitempty"`
	AuditFields
}

// IsExchange reports whether the transaction has two currency legs.
func (t TillTransaction) IsExchange() bool {
	return t.Type == TxnCurrencyBuy || t.Type == TxnCurrencySell
}
