package services

// ServiceContainer holds all service interfaces needed by the handlers.
type ServiceContainer struct {
	Currency CurrencySvcFacade
	Gold     GoldSvcFacade
	Seed     SeedSvcFacade
}
