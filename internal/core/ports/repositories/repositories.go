package repositories

// RepositoryProvider bundles every repository a service container needs.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	TillRepo         TillRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	InventoryRepo    InventoryRepositoryFacade
	UserRepo         UserRepositoryFacade
	ReportingRepo    ReportingReader
}
