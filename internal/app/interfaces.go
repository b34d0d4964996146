package app

import (
	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/config"
	"github.com/amberleaf/amberspa/internal/cart"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides site settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider

	ConfigMgr() *ConfigManager
	CartStore() *cart.Store
	Bus() EventBus.Bus

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
