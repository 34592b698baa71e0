package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamaamins/sporkbox-client-sub001/configs"
	"github.com/iamaamins/sporkbox-client-sub001/controllers"
	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/middlewares"
	"github.com/iamaamins/sporkbox-client-sub001/pkg/upstream"
	"github.com/iamaamins/sporkbox-client-sub001/repository"
	"github.com/iamaamins/sporkbox-client-sub001/services"
	"github.com/iamaamins/sporkbox-client-sub001/ws"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config) {
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	var store repository.StateStore
	if cfg.StoreDriver == "redis" {
		// abandoned carts age out on their own; items self-expire sooner
		store = repository.NewRedisStore(cfg.RedisAddr, 7*24*time.Hour)
	} else {
		store = repository.NewStateRepository(configs.DB())
	}

	api := upstream.NewClient(cfg.UpstreamURL)

	hub := ws.NewCartHub()
	go hub.Run()

	// Services
	cartSvc := services.NewCartService(store, cfg.CartTTL)
	cartSvc.Notifier = hub
	discountSvc := services.NewDiscountService(store, api)
	orderSvc := services.NewOrderService(api)
	sessionSvc := services.NewSessionService(store, api)
	quoteSvc := services.NewQuoteService(cartSvc, discountSvc, orderSvc, sessionSvc)
	checkoutSvc := services.NewCheckoutService(api, cartSvc, discountSvc, quoteSvc)

	// Controllers
	cartCtrl := controllers.NewCartController(cartSvc, quoteSvc)
	discountCtrl := controllers.NewDiscountController(discountSvc, quoteSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	sessionCtrl := controllers.NewSessionController(sessionSvc)

	customer := string(entity.RoleCustomer)

	// Session (any authenticated role)
	me := r.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		me.GET("/me", sessionCtrl.Me)
		me.DELETE("/me/cache", sessionCtrl.Refresh)
	}

	// Ordering flow (customers)
	u := r.Group("", middlewares.AuthMiddleware(cfg.JWTSecret, customer))
	{
		u.GET("/cart", cartCtrl.Get)
		u.POST("/cart/items", cartCtrl.AddItem)
		u.PATCH("/cart/items", cartCtrl.UpdateQuantity)
		u.DELETE("/cart/items", cartCtrl.RemoveItem)
		u.DELETE("/cart", cartCtrl.Clear)
		u.GET("/cart/ws", hub.Serve)

		u.POST("/discount/apply", discountCtrl.Apply)
		u.DELETE("/discount", discountCtrl.Remove)

		u.POST("/checkout", checkoutCtrl.Create)

		u.GET("/orders/upcoming", orderCtrl.Upcoming)
		u.GET("/orders/delivered", orderCtrl.Delivered)
	}
}
