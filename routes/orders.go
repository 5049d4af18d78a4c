package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/models"
	"kioskmart/orders"
)

// createOrder is the public kiosk checkout. The response returns as soon as
// the order is committed; notification dispatch runs in the background.
func (h *Handler) createOrder(c *fiber.Ctx) error {
	req := new(orders.CreateRequest)
	if err := c.BodyParser(req); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	order, err := h.Orders.Create(req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			return h.respondError(c, apperr.Validation("invalid order status %q", status))
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}

	var result []models.Order
	err := query.Preload("Items").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return c.JSON(fiber.Map{
		"data": result,
		"pagination": fiber.Map{
			"page": page, "limit": limit, "total": total, "totalPages": totalPages,
		},
	})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	var order models.Order
	err := h.DB.Preload("Items").First(&order, "id = ?", c.Params("id")).Error
	if err != nil {
		return h.respondError(c, apperr.FromDB(err, "order", ""))
	}
	return c.JSON(order)
}

// updateOrderStatus is the only mutation an order supports after creation.
func (h *Handler) updateOrderStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return h.respondError(c, apperr.Validation("failed to parse request body"))
	}
	if !models.ValidOrderStatus(body.Status) {
		return h.respondError(c, apperr.Validation("invalid order status %q", body.Status))
	}

	var order models.Order
	if err := h.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "order", ""))
	}
	if err := h.DB.Model(&order).Update("status", body.Status).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}

	if err := h.DB.Preload("Items").First(&order, order.ID).Error; err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(order)
}

// deleteOrder exists for manual cleanup only; orders are normally kept.
func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := h.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return h.respondError(c, apperr.FromDB(err, "order", ""))
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return h.respondError(c, apperr.Internal(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order deleted successfully"})
}
