package routes

import (
	"net/http"

	"pasarin/activity"
	"pasarin/cart"
	"pasarin/catalog"
	"pasarin/checkout"
	"pasarin/filemgr"
	"pasarin/middleware"
	"pasarin/notifications"
	"pasarin/orders"
	"pasarin/payment"
	"pasarin/ratelim"
	"pasarin/refunds"
	"pasarin/reviews"
	"pasarin/shipping"
	"pasarin/wishlist"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/*filepath", http.Dir("static/uploads"))
}

func AddCatalogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", rl.Limit(catalog.GetProducts))
	router.GET("/api/products/:productid", rl.Limit(middleware.OptionalAuth(catalog.GetProduct)))
	router.GET("/api/categories", catalog.GetCategories)
	router.GET("/api/categories/:categoryid/products", rl.Limit(catalog.GetCategoryProducts))
	router.GET("/api/stores/:storeid", catalog.GetStore)

	router.GET("/api/seller/products", middleware.Authenticate(catalog.SellerProducts))
	router.POST("/api/seller/products", rl.Limit(middleware.Authenticate(catalog.CreateProduct)))
	router.PUT("/api/seller/products/:productid", rl.Limit(middleware.Authenticate(catalog.EditProduct)))
	router.DELETE("/api/seller/products/:productid", rl.Limit(middleware.Authenticate(catalog.DeleteProduct)))
	router.GET("/api/seller/store", middleware.Authenticate(catalog.GetMyStore))
	router.POST("/api/seller/store", rl.Limit(middleware.Authenticate(catalog.CreateStore)))
	router.PUT("/api/seller/store", rl.Limit(middleware.Authenticate(catalog.EditStore)))

	router.POST("/api/uploads/:entitytype/:entityid", rl.Limit(middleware.Authenticate(filemgr.UploadImages)))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", rl.Limit(middleware.Authenticate(cart.AddToCart)))
	router.PUT("/api/cart/:itemid", rl.Limit(middleware.Authenticate(cart.UpdateCartItem)))
	router.DELETE("/api/cart/:itemid", rl.Limit(middleware.Authenticate(cart.RemoveCartItem)))
	router.DELETE("/api/cart", rl.Limit(middleware.Authenticate(cart.ClearCart)))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/checkout", rl.Limit(middleware.Authenticate(checkout.Checkout)))
	router.GET("/api/orders", middleware.Authenticate(orders.GetOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:orderid/invoice", middleware.Authenticate(orders.PrintInvoice))
	router.GET("/api/orders/:orderid/shipment", middleware.Authenticate(shipping.GetShipment))

	router.GET("/api/seller/orders", middleware.Authenticate(orders.SellerOrders))
	router.PUT("/api/seller/orders/:orderid/status", rl.Limit(middleware.Authenticate(orders.UpdateOrderStatus)))
	router.PUT("/api/seller/orders/:orderid/shipment", rl.Limit(middleware.Authenticate(shipping.UpsertShipment)))
}

func AddPaymentRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	// Gateway-facing; authenticated by shared token, not JWT.
	router.POST("/api/payment/webhook", rl.Limit(payment.Webhook))
}

func AddReviewRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products/:productid/reviews", rl.Limit(reviews.GetReviews))
	router.POST("/api/products/:productid/reviews", rl.Limit(middleware.Authenticate(reviews.AddReview)))
}

func AddRefundRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders/:orderid/refund", rl.Limit(middleware.Authenticate(refunds.RequestRefund)))
	router.GET("/api/refunds", middleware.Authenticate(refunds.ListRefunds))
	router.GET("/api/refunds/:refundid", middleware.Authenticate(refunds.GetRefund))

	router.POST("/api/orders/:orderid/dispute", rl.Limit(middleware.Authenticate(refunds.CreateDispute)))
	router.GET("/api/disputes", middleware.Authenticate(refunds.ListDisputes))
}

func AddShippingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/shipping/estimate", rl.Limit(middleware.Authenticate(shipping.Estimate)))
}

func AddWishlistRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/wishlist", middleware.Authenticate(wishlist.GetWishlist))
	router.POST("/api/wishlist/:productid/toggle", rl.Limit(middleware.Authenticate(wishlist.ToggleWishlist)))
}

func AddNotificationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/notifications", middleware.Authenticate(notifications.GetNotifications))
	router.GET("/api/notifications/unread-count", middleware.Authenticate(notifications.GetUnreadCount))
	router.PUT("/api/notifications/:notifid/read", rl.Limit(middleware.Authenticate(notifications.MarkRead)))
	router.PUT("/api/notifications", rl.Limit(middleware.Authenticate(notifications.MarkAllRead)))
}

func AddActivityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/activity/log", rl.Limit(middleware.Authenticate(activity.LogActivities)))
	router.GET("/api/activity", middleware.Authenticate(activity.GetActivityFeed))
}
