package models

import "time"

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

const (
	SettingCurrency          = "currency"
	SettingNotificationEmail = "notification_email"
	SettingSlideshowImages   = "slideshow_images"
	SettingIdleTimeout       = "idle_timeout"
	SettingCacheVersion      = "cache_version"
)

// DefaultSettings are created on first run when the key is missing.
var DefaultSettings = map[string]string{
	"grid_columns_mobile":    "2",
	"grid_columns_tablet":    "3",
	"grid_columns_desktop":   "4",
	"grid_columns_kiosk":     "4",
	SettingCurrency:          "$",
	SettingNotificationEmail: "",
	SettingSlideshowImages:   "[]",
	SettingIdleTimeout:       "120",
	SettingCacheVersion:      "0",
}
