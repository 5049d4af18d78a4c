// Package orders implements kiosk checkout: validation, atomic persistence
// of an order with its denormalized line items, and scheduling of the
// fire-and-forget notifications.
package orders

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/models"
)

// Notifier receives the persisted order after commit. Implementations must
// not block: dispatch happens on the request path, delivery must not.
type Notifier interface {
	OrderCreated(order *models.Order)
}

type CreateItem struct {
	ProductID   uint   `json:"productId" validate:"required"`
	ProductCode string `json:"productCode"`
	Title       string `json:"title" validate:"required"`
	Price       string `json:"price"`
	SizeRange   string `json:"sizeRange"`
	ImageURL    string `json:"imageUrl"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	VariantID   *uint  `json:"variantId"`
	Color       string `json:"color"`
}

type CreateRequest struct {
	FirstName string       `json:"firstName" validate:"required"`
	LastName  string       `json:"lastName" validate:"required"`
	Phone     string       `json:"phone" validate:"required"`
	Address   string       `json:"address" validate:"required"`
	Email     string       `json:"email"`
	BrandSlug string       `json:"brandSlug"`
	Items     []CreateItem `json:"items" validate:"required,min=1,dive"`
}

type Service struct {
	db       *gorm.DB
	notifier Notifier
	validate *validator.Validate
	// newNumber is substitutable so collision handling is testable
	newNumber func(time.Time) string
}

func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{
		db:        db,
		notifier:  notifier,
		validate:  validator.New(),
		newNumber: GenerateOrderNumber,
	}
}

// retries on order-number collision before giving up
const numberAttempts = 3

// Create validates the checkout, persists the order with its line items in
// one transaction and schedules the notifications. It returns as soon as the
// database write commits; notification delivery never blocks the caller.
func (s *Service) Create(req *CreateRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("invalid order: %s", err.Error())
	}

	order := &models.Order{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    models.OrderStatusPending,
	}
	if req.Email != "" {
		order.Email = &req.Email
	}
	if req.BrandSlug != "" {
		order.BrandSlug = &req.BrandSlug
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductCode: item.ProductCode,
			Title:       item.Title,
			Price:       item.Price,
			SizeRange:   item.SizeRange,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
			VariantID:   item.VariantID,
			Color:       item.Color,
		})
	}

	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		order.OrderNumber = s.newNumber(time.Now())
		err = s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(order).Error
		})
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Internal(err)
		}
		// the rolled-back attempt may have assigned ids
		order.ID = 0
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = 0
		}
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if s.notifier != nil {
		s.notifier.OrderCreated(order)
	}
	return order, nil
}
