package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/models"
)

type recordingNotifier struct {
	orders []*models.Order
}

func (n *recordingNotifier) OrderCreated(order *models.Order) {
	n.orders = append(n.orders, order)
}

func setupOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return db
}

func validRequest() *CreateRequest {
	return &CreateRequest{
		FirstName: "Ada",
		LastName:  "Mensah",
		Phone:     "+123456789",
		Address:   "1 Market Street",
		Items: []CreateItem{{
			ProductID:   1,
			ProductCode: "X1",
			Title:       "Shirt",
			Price:       "50$",
			SizeRange:   "M",
			ImageURL:    "/i.png",
			Quantity:    2,
		}},
	}
}

func TestCreatePersistsOrderWithItems(t *testing.T) {
	db := setupOrderDB(t)
	notifier := &recordingNotifier{}
	service := NewService(db, notifier)

	order, err := service.Create(validRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-\d{8}-[A-Z0-9]{4}$`, order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Shirt", stored.Items[0].Title)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.Equal(t, "50$", stored.Items[0].Price)

	require.Len(t, notifier.orders, 1)
	assert.Equal(t, order.ID, notifier.orders[0].ID)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	db := setupOrderDB(t)
	service := NewService(db, nil)

	req := validRequest()
	req.Items = nil
	_, err := service.Create(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.As(err).Kind)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateRejectsMissingCustomerFields(t *testing.T) {
	db := setupOrderDB(t)
	service := NewService(db, nil)

	for _, mutate := range []func(*CreateRequest){
		func(r *CreateRequest) { r.FirstName = "" },
		func(r *CreateRequest) { r.LastName = "" },
		func(r *CreateRequest) { r.Phone = "" },
		func(r *CreateRequest) { r.Address = "" },
		func(r *CreateRequest) { r.Items[0].Quantity = 0 },
	} {
		req := validRequest()
		mutate(req)
		_, err := service.Create(req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.As(err).Kind)
	}
}

func TestCreateKeepsOptionalFieldsNullable(t *testing.T) {
	db := setupOrderDB(t)
	service := NewService(db, nil)

	order, err := service.Create(validRequest())
	require.NoError(t, err)
	assert.Nil(t, order.Email)
	assert.Nil(t, order.BrandSlug)

	req := validRequest()
	req.Email = "ada@example.com"
	req.BrandSlug = "acme"
	order, err = service.Create(req)
	require.NoError(t, err)
	require.NotNil(t, order.Email)
	assert.Equal(t, "ada@example.com", *order.Email)
	require.NotNil(t, order.BrandSlug)
	assert.Equal(t, "acme", *order.BrandSlug)
}

func TestCreateGeneratesDistinctOrderNumbers(t *testing.T) {
	db := setupOrderDB(t)
	service := NewService(db, nil)

	first, err := service.Create(validRequest())
	require.NoError(t, err)

	second, err := service.Create(validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
}

func TestCreateRetriesOnOrderNumberCollision(t *testing.T) {
	db := setupOrderDB(t)
	taken := "ORD-20260831-AAAA"
	seeded := models.Order{OrderNumber: taken, FirstName: "Existing", LastName: "Order",
		Phone: "000", Address: "somewhere", Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&seeded).Error)

	service := NewService(db, nil)
	calls := 0
	service.newNumber = func(now time.Time) string {
		calls++
		if calls == 1 {
			return taken // collides with the seeded order
		}
		return GenerateOrderNumber(now)
	}

	order, err := service.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NotEqual(t, taken, order.OrderNumber)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.Len(t, stored.Items, 1)
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	db := setupOrderDB(t)
	taken := "ORD-20260831-BBBB"
	seeded := models.Order{OrderNumber: taken, FirstName: "Existing", LastName: "Order",
		Phone: "000", Address: "somewhere", Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&seeded).Error)

	service := NewService(db, nil)
	calls := 0
	service.newNumber = func(time.Time) string {
		calls++
		return taken
	}

	_, err := service.Create(validRequest())
	require.Error(t, err)
	assert.Equal(t, numberAttempts, calls)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count) // only the seeded order
}

func TestCreateWorksWithoutNotifier(t *testing.T) {
	db := setupOrderDB(t)
	service := NewService(db, nil)

	_, err := service.Create(validRequest())
	assert.NoError(t, err)
}
