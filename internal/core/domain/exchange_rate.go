package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one effective-dated row of buy/sell/mid rates for a currency
// pair. At most one row per pair has EffectiveTo unset at any instant; history
// is immutable apart from EffectiveTo being stamped when a newer row arrives.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	BuyRate            decimal.Decimal `json:"buyRate"`
	SellRate           decimal.Decimal `json:"sellRate"`
	MidRate            decimal.Decimal `json:"midRate"`   // (buy+sell)/2
	SpreadPct          decimal.Decimal `json:"spreadPct"` // (sell-buy)/mid*100
	Source             string          `json:"source"`
	EffectiveFrom      time.Time       `json:"effectiveFrom"`
	EffectiveTo        *time.Time      `json:"effectiveTo,omitempty"`
	AuditFields
}

// IsCurrent reports whether the rate row is effective at the given instant.
func (r ExchangeRate) IsCurrent(at time.Time) bool {
	if at.Before(r.EffectiveFrom) {
		return false
	}
	return r.EffectiveTo == nil || at.Before(*r.EffectiveTo)
}
