package app

import (
	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/config"
	"github.com/amberleaf/amberspa/internal/cart"
)

// NewTestApplication wires an Application around an existing database
// handle, migrating the schema and seeding nothing. Used by handler
// tests, which bring their own fixtures.
func NewTestApplication(cfg *config.AppConfig, db *gorm.DB, cartPath string) (*Application, error) {
	a := &Application{
		appConfig: cfg,
		gormDB:    db,
		bus:       EventBus.New(),
	}
	a.configManager = NewConfigManager(a)
	if err := a.MigrateDB(false); err != nil {
		return nil, err
	}
	store, err := cart.NewStore(cartPath)
	if err != nil {
		return nil, err
	}
	a.cartStore = store
	return a, nil
}
