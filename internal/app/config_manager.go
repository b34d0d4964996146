package app

import (
	"errors"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/pkg/common"
)

// Settings keys under the 'site' category. Structured sub-documents are
// stored as JSON values.
const (
	SettingsCategorySite = "site"

	KeyBookingEnabled  = "booking_enabled"
	KeyMaintenanceMode = "maintenance_mode"
	KeyBusinessHours   = "business_hours"
	KeyContactInfo     = "contact_info"
	KeySocialMedia     = "social_media"
	KeySiteContent     = "site_content"
)

const configCacheTTL = 30 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type cachedValue struct {
	value    string
	loadedAt time.Time
}

// ConfigManager reads and writes sys_config rows with a short-lived
// read cache. Writes go straight to the database and drop the cache.
type ConfigManager struct {
	app   *Application
	mu    sync.RWMutex
	cache map[string]cachedValue
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app, cache: make(map[string]cachedValue)}
}

func (cm *ConfigManager) GetString(category, name string) string {
	ckey := category + "." + name

	cm.mu.RLock()
	if cv, ok := cm.cache[ckey]; ok && time.Since(cv.loadedAt) < configCacheTTL {
		cm.mu.RUnlock()
		return cv.value
	}
	cm.mu.RUnlock()

	var cfg domain.SysConfig
	err := cm.app.DB().Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.S().Errorf("failed to read config %s: %v", ckey, err)
		}
		return ""
	}

	cm.mu.Lock()
	cm.cache[ckey] = cachedValue{value: cfg.Value, loadedAt: time.Now()}
	cm.mu.Unlock()
	return cfg.Value
}

func (cm *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(cm.GetString(category, name))
}

func (cm *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(cm.GetString(category, name))
}

// SetValue upserts a single config row and drops the read cache.
func (cm *ConfigManager) SetValue(category, name, value string) error {
	db := cm.app.DB()
	var cfg domain.SysConfig
	err := db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = db.Create(&domain.SysConfig{
			ID:    common.UUIDint64(),
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	case err == nil:
		err = db.Model(&domain.SysConfig{}).
			Where("id = ?", cfg.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	}
	if err != nil {
		return err
	}

	cm.mu.Lock()
	delete(cm.cache, category+"."+name)
	cm.mu.Unlock()
	return nil
}

// Website assembles the settings document from sys_config rows. When no
// site rows exist yet, the default document is written and returned.
func (cm *ConfigManager) Website() (domain.WebsiteSettings, error) {
	var count int64
	cm.app.DB().Model(&domain.SysConfig{}).
		Where("type = ?", SettingsCategorySite).
		Count(&count)
	if count == 0 {
		defaults := domain.DefaultWebsiteSettings()
		if err := cm.SaveWebsite(defaults); err != nil {
			return defaults, err
		}
		return defaults, nil
	}

	settings := domain.WebsiteSettings{
		BookingEnabled:  cm.GetBool(SettingsCategorySite, KeyBookingEnabled),
		MaintenanceMode: cm.GetBool(SettingsCategorySite, KeyMaintenanceMode),
	}
	if v := cm.GetString(SettingsCategorySite, KeyBusinessHours); v != "" {
		if err := json.UnmarshalFromString(v, &settings.BusinessHours); err != nil {
			return settings, err
		}
	}
	if v := cm.GetString(SettingsCategorySite, KeyContactInfo); v != "" {
		if err := json.UnmarshalFromString(v, &settings.ContactInfo); err != nil {
			return settings, err
		}
	}
	if v := cm.GetString(SettingsCategorySite, KeySocialMedia); v != "" {
		if err := json.UnmarshalFromString(v, &settings.SocialMedia); err != nil {
			return settings, err
		}
	}
	if v := cm.GetString(SettingsCategorySite, KeySiteContent); v != "" {
		if err := json.UnmarshalFromString(v, &settings.SiteContent); err != nil {
			return settings, err
		}
	}
	return settings, nil
}

// SaveWebsite decomposes the settings document into sys_config rows.
func (cm *ConfigManager) SaveWebsite(settings domain.WebsiteSettings) error {
	boolStr := func(b bool) string {
		if b {
			return "true"
		}
		return "false"
	}
	if err := cm.SetValue(SettingsCategorySite, KeyBookingEnabled, boolStr(settings.BookingEnabled)); err != nil {
		return err
	}
	if err := cm.SetValue(SettingsCategorySite, KeyMaintenanceMode, boolStr(settings.MaintenanceMode)); err != nil {
		return err
	}

	jsonKeys := []struct {
		key   string
		value interface{}
	}{
		{KeyBusinessHours, settings.BusinessHours},
		{KeyContactInfo, settings.ContactInfo},
		{KeySocialMedia, settings.SocialMedia},
		{KeySiteContent, settings.SiteContent},
	}
	for _, kv := range jsonKeys {
		encoded, err := json.MarshalToString(kv.value)
		if err != nil {
			return err
		}
		if err := cm.SetValue(SettingsCategorySite, kv.key, encoded); err != nil {
			return err
		}
	}
	return nil
}
