// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/contact"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/domain/wallet"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/session"
)

// Services groups the domain services served over HTTP
type Services struct {
	Catalog  *catalog.Cache
	Cart     *cart.Service
	Wishlist *wishlist.Service
	Orders   *order.Service
	Wallet   *wallet.Service
	Users    *user.Service
	Contact  *contact.Service
	Bus      *events.Bus
	Sessions *session.Manager
	Seeder   middleware.Seeder
}

// SetupRoutes registers every storefront route on rg. All routes run inside
// a visitor session; the event stream is exempt from the request timeout.
func SetupRoutes(rg *gin.RouterGroup, svc Services, cfg *config.Config, logger logrus.FieldLogger) {
	rg.Use(middleware.Session(cfg, svc.Sessions, svc.Seeder, logger))

	eventsHandler := handlers.NewEventsHandler(svc.Bus, logger)
	rg.GET("/events", eventsHandler.Stream)

	api := rg.Group("")
	api.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	SetupProductRoutes(api, svc, logger)
	SetupCartRoutes(api, svc, logger)
	SetupWishlistRoutes(api, svc, logger)
	SetupOrderRoutes(api, svc, logger)
	SetupUserRoutes(api, svc, logger)
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, svc Services, logger logrus.FieldLogger) {
	productHandler := handlers.NewProductHandler(svc.Catalog, svc.Wishlist, logger)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupCartRoutes sets up cart and header badge routes
func SetupCartRoutes(rg *gin.RouterGroup, svc Services, logger logrus.FieldLogger) {
	cartHandler := handlers.NewCartHandler(svc.Cart, svc.Wishlist, logger)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.DELETE("/items/:index", cartHandler.RemoveFromCart)
		cart.POST("/products/:id", cartHandler.AddProduct)
	}

	rg.GET("/badges", cartHandler.GetBadges)
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, svc Services, logger logrus.FieldLogger) {
	wishlistHandler := handlers.NewWishlistHandler(svc.Wishlist, logger)

	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/toggle", wishlistHandler.Toggle)
		wishlist.POST("/products/:id/toggle", wishlistHandler.ToggleProduct)
		wishlist.DELETE("/items/:index", wishlistHandler.RemoveFromWishlist)
		wishlist.POST("/items/:index/move-to-cart", wishlistHandler.MoveToCart)
	}
}

// SetupOrderRoutes sets up checkout, order and wallet routes
func SetupOrderRoutes(rg *gin.RouterGroup, svc Services, logger logrus.FieldLogger) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Orders, logger)
	orderHandler := handlers.NewOrderHandler(svc.Orders, logger)
	invoiceHandler := handlers.NewInvoiceHandler(svc.Orders, logger)
	walletHandler := handlers.NewWalletHandler(svc.Wallet, logger)

	checkout := rg.Group("/checkout")
	{
		checkout.GET("", checkoutHandler.GetCheckout)
		checkout.POST("", checkoutHandler.PlaceOrder)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)
		orders.PUT("/:id/complete", orderHandler.CompleteOrder)
		orders.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
	}

	wallet := rg.Group("/wallet")
	{
		wallet.GET("", walletHandler.GetWallet)
		wallet.POST("/funds", walletHandler.AddFunds)
	}
}

// SetupUserRoutes sets up profile, address, contact and account routes
func SetupUserRoutes(rg *gin.RouterGroup, svc Services, logger logrus.FieldLogger) {
	profileHandler := handlers.NewUserProfileHandler(svc.Users, logger)
	addressHandler := handlers.NewUserAddressHandler(svc.Users, logger)
	contactHandler := handlers.NewContactHandler(svc.Contact, logger)
	accountHandler := handlers.NewAccountHandler(svc.Users, svc.Orders, svc.Wallet, svc.Cart, svc.Wishlist, logger)

	rg.GET("/profile", profileHandler.GetProfile)
	rg.PUT("/profile", profileHandler.UpdateProfile)

	addresses := rg.Group("/addresses")
	{
		addresses.GET("", addressHandler.GetAddresses)
		addresses.POST("", addressHandler.CreateAddress)
		addresses.DELETE("/:index", addressHandler.DeleteAddress)
	}

	rg.POST("/contact", contactHandler.Submit)
	rg.GET("/account", accountHandler.GetAccount)
}
