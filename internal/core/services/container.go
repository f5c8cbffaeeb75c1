package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, complianceThreshold decimal.Decimal, baseCurrencyCode string) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Currency:  NewCurrencyService(repos.CurrencyRepo),
		Rate:      NewRateService(repos.ExchangeRateRepo, repos.CurrencyRepo),
		Account:   NewAccountService(repos.AccountRepo, repos.CurrencyRepo),
		Inventory: NewInventoryService(repos.InventoryRepo, repos.CurrencyRepo),
		Till:      NewTillService(repos.TillRepo, repos.TransactionRepo, repos.CurrencyRepo, repos.UserRepo, repos.AccountRepo, complianceThreshold),
		Journal:   NewJournalService(repos.JournalRepo, repos.TransactionRepo, repos.AccountRepo, baseCurrencyCode),
		Reporting: NewReportingService(repos.ReportingRepo, repos.InventoryRepo, repos.ExchangeRateRepo),
		User:      NewUserService(repos.UserRepo),
	}
}
