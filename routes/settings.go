package routes

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kioskmart/apperr"
	"kioskmart/models"
	"kioskmart/ws"
)

func (h *Handler) settingsMap() (map[string]string, error) {
	var settings []models.Setting
	if err := h.DB.Find(&settings).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}

// internalSettingKeys never leave the admin API; notification_email holds
// staff addresses no kiosk needs.
var internalSettingKeys = map[string]bool{
	models.SettingNotificationEmail: true,
}

// Kiosks read the settings map at boot and on reload events. Internal keys
// are stripped from the public read.
func (h *Handler) getPublicSettings(c *fiber.Ctx) error {
	settings, err := h.settingsMap()
	if err != nil {
		return h.respondError(c, err)
	}
	for key := range internalSettingKeys {
		delete(settings, key)
	}
	return c.JSON(settings)
}

func (h *Handler) getAdminSettings(c *fiber.Ctx) error {
	settings, err := h.settingsMap()
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(settings)
}

// updateSettings bulk-upserts the posted key/value map.
func (h *Handler) updateSettings(c *fiber.Ctx) error {
	var body map[string]string
	if err := c.BodyParser(&body); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if len(body) == 0 {
		return h.respondError(c, apperr.Validation("no settings provided"))
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for key, value := range body {
			setting := models.Setting{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&setting).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}

	settings, err := h.settingsMap()
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(settings)
}

// refreshKiosks bumps cache_version and pushes a reload event so every
// connected kiosk picks up the new catalog and settings.
func (h *Handler) refreshKiosks(c *fiber.Ctx) error {
	version := fmt.Sprintf("%d", time.Now().UnixMilli())
	setting := models.Setting{Key: models.SettingCacheVersion, Value: version}
	err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.Event{Type: "reload", Payload: version})
	}
	return c.JSON(fiber.Map{"success": true, "cacheVersion": version})
}
