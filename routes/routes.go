package routes

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskmart/apperr"
	"kioskmart/auth"
	"kioskmart/config"
	"kioskmart/orders"
	"kioskmart/ws"
)

var validate = validator.New()

// Handler carries the shared dependencies for every route. Everything is
// injected at startup; handlers never reach for globals.
type Handler struct {
	DB     *gorm.DB
	Config *config.Config
	Tokens *auth.TokenManager
	Orders *orders.Service
	Hub    *ws.Hub
}

func Setup(app *fiber.App, h *Handler) {
	app.Get("/health", h.health)
	if h.Hub != nil {
		app.Get("/ws", h.Hub.Handler())
	}

	// Public storefront
	products := app.Group("/products")
	products.Get("/", h.listPublicProducts)
	products.Get("/:id", h.getPublicProduct)
	products.Get("/:id/similar", h.getSimilarProducts)

	app.Get("/categories", h.listPublicCategories)
	app.Get("/brands", h.listPublicBrands)
	app.Get("/brands/:slug", h.getBrandBySlug)
	app.Get("/settings", h.getPublicSettings)
	app.Post("/orders", h.createOrder)

	// Admin API
	admin := app.Group("/admin")
	admin.Post("/login", h.login)

	admin.Use(h.requireAuth)
	admin.Get("/me", h.me)
	admin.Put("/me/password", h.changeOwnPassword)

	adminProducts := admin.Group("/products")
	adminProducts.Get("/", h.listAdminProducts)
	adminProducts.Post("/", h.createProduct)
	adminProducts.Get("/:id", h.getAdminProduct)
	adminProducts.Put("/:id", h.updateProduct)
	adminProducts.Delete("/:id", h.deleteProduct)
	adminProducts.Post("/:id/approve", h.approveProduct)
	adminProducts.Post("/:id/reject", h.rejectProduct)

	adminOrders := admin.Group("/orders")
	adminOrders.Get("/", h.listOrders)
	adminOrders.Get("/:id", h.getOrder)
	adminOrders.Put("/:id/status", h.updateOrderStatus)
	adminOrders.Delete("/:id", h.deleteOrder)

	upload := admin.Group("/upload")
	upload.Post("/image", h.uploadImage)
	upload.Post("/images", h.uploadImages)

	// Super-admin-only management
	adminBrands := admin.Group("/brands", h.requireSuper)
	adminBrands.Get("/", h.listAdminBrands)
	adminBrands.Post("/", h.createBrand)
	adminBrands.Put("/:id", h.updateBrand)
	adminBrands.Delete("/:id", h.deleteBrand)

	adminCategories := admin.Group("/categories", h.requireSuper)
	adminCategories.Get("/", h.listAdminCategories)
	adminCategories.Post("/", h.createCategory)
	adminCategories.Put("/:id", h.updateCategory)
	adminCategories.Delete("/:id", h.deleteCategory)

	adminSubcategories := admin.Group("/subcategories", h.requireSuper)
	adminSubcategories.Post("/", h.createSubcategory)
	adminSubcategories.Put("/:id", h.updateSubcategory)
	adminSubcategories.Delete("/:id", h.deleteSubcategory)

	adminUsers := admin.Group("/users", h.requireSuper)
	adminUsers.Get("/", h.listAdmins)
	adminUsers.Post("/", h.createAdmin)
	adminUsers.Put("/:id", h.updateAdmin)
	adminUsers.Delete("/:id", h.deleteAdmin)

	adminSettings := admin.Group("/settings", h.requireSuper)
	adminSettings.Get("/", h.getAdminSettings)
	adminSettings.Put("/", h.updateSettings)
	adminSettings.Post("/refresh-kiosks", h.refreshKiosks)
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"env":       h.Config.Env,
	})
}

// respondError maps a taxonomy error to its HTTP status and a {message}
// body. Internal causes are logged and only exposed in development.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	appErr := apperr.As(err)
	message := appErr.Message
	if appErr.Kind == apperr.KindInternal {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", appErr.Err)
		if h.Config.Development() && appErr.Err != nil {
			message = appErr.Err.Error()
		}
	}
	return c.Status(appErr.HTTPStatus()).JSON(fiber.Map{"message": message})
}
