package providers

import (
	"github.com/samber/do/v2"

	"github.com/brewlogapp/brewlog-server/internal/auth"
	"github.com/brewlogapp/brewlog-server/internal/config"
	"github.com/brewlogapp/brewlog-server/internal/logger"
	"github.com/brewlogapp/brewlog-server/internal/service"
)

// ProvideAuthService provides the identity resolution service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tokens := do.MustInvoke[*auth.TokenService](i)

	return service.NewAuthService(tokens, cfg.Auth.Required, cfg.Auth.GuestUserID, log.Logger), nil
}

// ProvideBagService provides the bag service.
func ProvideBagService(i do.Injector) (*service.BagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBagService(storeHandle.Store, log.Logger), nil
}

// ProvideBrewService provides the brew service.
func ProvideBrewService(i do.Injector) (*service.BrewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBrewService(storeHandle.Store, log.Logger), nil
}

// ProvideAnalyticsService provides the bag analytics service.
func ProvideAnalyticsService(i do.Injector) (*service.AnalyticsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAnalyticsService(storeHandle.Store, log.Logger), nil
}

// ProvideFeedService provides the shared brew feed service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFeedService(storeHandle.Store, log.Logger), nil
}
