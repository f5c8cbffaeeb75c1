package accounting

import (
	"fmt"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ManualEntryTolerance is the rounding slack allowed between the debit and
// credit totals of a manually authored journal entry.
var ManualEntryTolerance = decimal.NewFromFloat(0.01)

// MidRate computes the mid rate of a buy/sell pair: (buy+sell)/2.
func MidRate(buy, sell decimal.Decimal) decimal.Decimal {
	return buy.Add(sell).Div(decimal.NewFromInt(2))
}

// SpreadPct computes the spread of a buy/sell pair as a percentage of mid:
// (sell-buy)/mid*100.
func SpreadPct(buy, sell decimal.Decimal) decimal.Decimal {
	mid := MidRate(buy, sell)
	if mid.IsZero() {
		return decimal.Zero
	}
	return sell.Sub(buy).Div(mid).Mul(decimal.NewFromInt(100))
}

// ApplyCashMovement returns the till cash balance after a cash movement.
// cash_in adds, cash_out subtracts and fails with ErrInsufficientBalance when
// the result would be negative, adjustment sets the balance absolutely with no
// floor check. Decimal arithmetic is exact, so the negative check needs no
// epsilon.
func ApplyCashMovement(balance decimal.Decimal, movementType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch movementType {
	case domain.TxnCashIn:
		return balance.Add(amount), nil
	case domain.TxnCashOut:
		after := balance.Sub(amount)
		if after.IsNegative() {
			return balance, fmt.Errorf("%w: cash out of %s exceeds balance %s", apperrors.ErrInsufficientBalance, amount.String(), balance.String())
		}
		return after, nil
	case domain.TxnAdjustment:
		return amount, nil
	default:
		return balance, fmt.Errorf("%w: unsupported cash movement type %q", apperrors.ErrValidation, movementType)
	}
}

// ApplyExchangeLegs returns the post-exchange balances of both currency legs.
// Buy: from leg gains fromAmount, to leg loses toAmount. Sell: mirrored.
// Either leg going negative fails the whole operation with
// ErrInsufficientBalance; no partial application.
func ApplyExchangeLegs(fromBalance, toBalance decimal.Decimal, exchangeType domain.TransactionType, fromAmount, toAmount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	var newFrom, newTo decimal.Decimal
	switch exchangeType {
	case domain.TxnCurrencyBuy:
		newFrom = fromBalance.Add(fromAmount)
		newTo = toBalance.Sub(toAmount)
	case domain.TxnCurrencySell:
		newFrom = fromBalance.Sub(fromAmount)
		newTo = toBalance.Add(toAmount)
	default:
		return fromBalance, toBalance, fmt.Errorf("%w: unsupported exchange type %q", apperrors.ErrValidation, exchangeType)
	}
	if newFrom.IsNegative() {
		return fromBalance, toBalance, fmt.Errorf("%w: source leg would go negative (%s)", apperrors.ErrInsufficientBalance, newFrom.String())
	}
	if newTo.IsNegative() {
		return fromBalance, toBalance, fmt.Errorf("%w: target leg would go negative (%s)", apperrors.ErrInsufficientBalance, newTo.String())
	}
	return newFrom, newTo, nil
}

// RequiresCompliance reports whether either leg of an exchange meets the
// reporting threshold.
func RequiresCompliance(fromAmount, toAmount, threshold decimal.Decimal) bool {
	return fromAmount.GreaterThanOrEqual(threshold) || toAmount.GreaterThanOrEqual(threshold)
}

// ValidateManualEntryLines checks a manually authored journal entry: at least
// two lines, each line strictly debit-or-credit with a positive amount, and
// debit and credit totals equal within ManualEntryTolerance.
func ValidateManualEntryLines(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	debitSum := decimal.Zero
	creditSum := decimal.Zero
	for _, line := range lines {
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("%w: each line must carry exactly one of debit or credit, account %s", apperrors.ErrValidation, line.AccountID)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line amounts must be positive, account %s", apperrors.ErrValidation, line.AccountID)
		}
		debitSum = debitSum.Add(line.Debit)
		creditSum = creditSum.Add(line.Credit)
	}

	if debitSum.Sub(creditSum).Abs().GreaterThan(ManualEntryTolerance) {
		return fmt.Errorf("%w: debits %s do not balance credits %s", apperrors.ErrValidation, debitSum.String(), creditSum.String())
	}
	return nil
}

// EstimatedProfit computes the spread-based profit estimate of one completed
// exchange against the current mid rate: buys gain when the market has moved
// above the transacted rate, sells when it has moved below.
func EstimatedProfit(exchangeType domain.TransactionType, txnRate, currentMid, sourceAmount, targetAmount decimal.Decimal) decimal.Decimal {
	switch exchangeType {
	case domain.TxnCurrencyBuy:
		return currentMid.Sub(txnRate).Mul(targetAmount)
	case domain.TxnCurrencySell:
		return txnRate.Sub(currentMid).Mul(sourceAmount)
	default:
		return decimal.Zero
	}
}
