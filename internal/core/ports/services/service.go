package services

// ServiceContainer holds instances of all the application services.
// Handlers reach every piece of functionality through it.
type ServiceContainer struct {
	Currency  CurrencySvcFacade
	Rate      RateSvcFacade
	Account   AccountSvcFacade
	Inventory InventorySvcFacade
	Till      TillSvcFacade
	Journal   JournalSvcFacade
	Reporting ReportingSvcFacade
	User      UserSvcFacade
}
