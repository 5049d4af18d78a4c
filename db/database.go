package db

import (
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kioskmart/auth"
	"kioskmart/config"
	"kioskmart/models"
)

// Open connects to the sqlite database at path, creating the file and its
// directory when missing, and migrates the schema. The returned handle is
// constructed once at startup and injected into whoever needs it; there is
// no package-level client.
func Open(path string) (*gorm.DB, error) {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("database file does not exist, creating", "path", path)
		file, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		file.Close()
	}

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "path", path)

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.Admin{}, &models.AdminBrand{}, &models.Brand{},
		&models.Category{}, &models.Subcategory{},
		&models.Product{}, &models.ProductImage{}, &models.ProductVariant{},
		&models.Order{}, &models.OrderItem{}, &models.Setting{},
	)
}

// Seed creates the initial super admin when no admins exist and fills in any
// missing default settings rows. It is idempotent.
func Seed(gdb *gorm.DB, cfg *config.Config) error {
	var adminCount int64
	if err := gdb.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}
		admin := models.Admin{
			Email:            cfg.AdminEmail,
			Password:         hash,
			Name:             "Administrator",
			Role:             models.RoleSuperAdmin,
			RequiresApproval: false,
		}
		if err := gdb.Create(&admin).Error; err != nil {
			return err
		}
		slog.Info("seeded super admin", "email", cfg.AdminEmail)
	}

	for key, value := range models.DefaultSettings {
		setting := models.Setting{Key: key, Value: value}
		if err := gdb.Where(models.Setting{Key: key}).
			Attrs(models.Setting{Value: value}).
			FirstOrCreate(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}
