package services

import (
	"time"

	portsrepo "github.com/mmexchange/price_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider
// and the upstream reference API client.
func NewServiceContainer(repos portsrepo.RepositoryProvider, upstream ReferenceAPI, pacingDelay time.Duration) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Currency: NewCurrencyService(repos.CurrencyRepo),
		Gold:     NewGoldService(repos.GoldRepo),
		Seed:     NewSeedService(repos.CurrencyRepo, repos.GoldRepo, upstream, pacingDelay),
	}
}
