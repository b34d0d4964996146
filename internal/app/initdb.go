package app

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "admin123"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var user domain.SysUser
	err := a.gormDB.Where("username = ?", superUsername).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysUser{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Email:     "admin@amberleaf.example",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "admin",
			Status:    common.ENABLED,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("username", superUsername))
		}
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
	}
}

// checkSettings seeds the site settings document on first boot.
func (a *Application) checkSettings() {
	if _, err := a.configManager.Website(); err != nil {
		zap.L().Error("failed to initialize site settings", zap.Error(err))
	}
}

// checkCatalog seeds a starter catalog so a fresh install renders a
// non-empty storefront.
func (a *Application) checkCatalog() {
	defaultTreatments := []domain.Treatment{
		{
			Slug:        "classic-massage",
			Title:       "Classic Massage",
			Description: "A full-body massage to release everyday tension.",
			Price:       69.0,
			Duration:    60,
			Image:       "classic-massage.jpg",
			Featured:    true,
		},
		{
			Slug:        "hot-stone-ritual",
			Title:       "Hot Stone Ritual",
			Description: "Warm basalt stones combined with slow strokes.",
			Price:       89.0,
			Duration:    75,
			Image:       "hot-stone.jpg",
		},
		{
			Slug:        "glow-facial",
			Title:       "Glow Facial",
			Description: "Deep cleanse, peeling and a hydrating mask.",
			Price:       59.0,
			Duration:    45,
			Image:       "glow-facial.jpg",
		},
	}
	for _, t := range defaultTreatments {
		var count int64
		a.gormDB.Model(&domain.Treatment{}).Where("slug = ?", t.Slug).Count(&count)
		if count == 0 {
			t.CreatedAt = time.Now()
			t.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&t).Error; err != nil {
				zap.L().Error("failed to create default treatment", zap.String("slug", t.Slug), zap.Error(err))
			} else {
				zap.L().Info("initialized default treatment", zap.String("slug", t.Slug))
			}
		}
	}

	defaultProducts := []domain.Product{
		{
			Slug:          "lavender-body-oil",
			Title:         "Lavender Body Oil",
			Description:   "Cold-pressed almond oil with lavender.",
			Price:         24.5,
			Image:         "lavender-oil.jpg",
			Category:      "body",
			Badge:         "bestseller",
			Featured:      true,
			StockQuantity: 40,
		},
		{
			Slug:          "rose-clay-mask",
			Title:         "Rose Clay Mask",
			Description:   "Gentle weekly mask for sensitive skin.",
			Price:         19.0,
			Image:         "rose-clay.jpg",
			Category:      "face",
			StockQuantity: 25,
		},
	}
	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("slug = ?", p.Slug).Count(&count)
		if count == 0 {
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("slug", p.Slug), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("slug", p.Slug))
			}
		}
	}
}
