package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/ecommerce/docs" // 注册Swagger文档
	appaddress "github.com/xiebiao/ecommerce/internal/application/address"
	appanalytics "github.com/xiebiao/ecommerce/internal/application/analytics"
	appcart "github.com/xiebiao/ecommerce/internal/application/cart"
	appcatalog "github.com/xiebiao/ecommerce/internal/application/catalog"
	appcheckout "github.com/xiebiao/ecommerce/internal/application/checkout"
	appinventory "github.com/xiebiao/ecommerce/internal/application/inventory"
	"github.com/xiebiao/ecommerce/internal/application/notification"
	apporder "github.com/xiebiao/ecommerce/internal/application/order"
	appreview "github.com/xiebiao/ecommerce/internal/application/review"
	appuser "github.com/xiebiao/ecommerce/internal/application/user"
	appwarehouse "github.com/xiebiao/ecommerce/internal/application/warehouse"
	"github.com/xiebiao/ecommerce/internal/domain/catalog"
	"github.com/xiebiao/ecommerce/internal/domain/user"
	"github.com/xiebiao/ecommerce/internal/infrastructure/config"
	"github.com/xiebiao/ecommerce/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/ecommerce/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/ecommerce/internal/interface/http/handler"
	"github.com/xiebiao/ecommerce/internal/interface/http/middleware"
	"github.com/xiebiao/ecommerce/pkg/jwt"
	"github.com/xiebiao/ecommerce/pkg/metrics"
	"github.com/xiebiao/ecommerce/pkg/mq"
	"github.com/xiebiao/ecommerce/pkg/response"
	"github.com/xiebiao/ecommerce/pkg/tracing"
)

// @title           电商后端API
// @version         1.0
// @description     商品、库存、购物车、结算、订单等接口文档
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

// main 主程序入口
// 依赖注入链：Repository ← Service ← UseCase ← Handler
// （wire.go提供了等价的Wire配置，`wire gen ./cmd/api`可生成自动注入版本）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化指标
	metrics.Init()

	// 3. 初始化链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(context.Background(), "ecommerce-api", cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Printf("关闭链路追踪失败: %v", err)
			}
		}()
	}

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 5. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 6. 初始化消息队列（可选，不可用时事件通知降级为空操作）
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Printf("初始化消息队列失败,事件通知已禁用: %v", err)
		} else {
			defer publisher.Close()
		}
	}

	// 7. 依赖注入（手动组装）

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	warehouseRepo := mysql.NewWarehouseRepository(db)
	inventoryRepo := mysql.NewInventoryRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	addressRepo := mysql.NewAddressRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	statsRepo := mysql.NewStatsRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	productCache := redis.NewProductCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	catalogService := catalog.NewService(productRepo, categoryRepo)

	// 事件通知（publisher为nil时自动降级为空操作）
	var notifier *notification.Notifier
	if publisher != nil {
		notifier = notification.NewNotifier(publisher)
	} else {
		notifier = notification.NewNotifier(nil)
	}

	shipping := appcheckout.ShippingConfig{
		BaseFee:    cfg.Checkout.ShippingBaseFee,
		PerItemFee: cfg.Checkout.ShippingPerItemFee,
	}
	orderShipping := apporder.ShippingConfig{
		BaseFee:    cfg.Checkout.ShippingBaseFee,
		PerItemFee: cfg.Checkout.ShippingPerItemFee,
	}

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)

	publishProductUseCase := appcatalog.NewPublishProductUseCase(catalogService)
	queryProductsUseCase := appcatalog.NewQueryProductsUseCase(catalogService, productCache)
	updateProductUseCase := appcatalog.NewUpdateProductUseCase(catalogService, productCache)
	categoryUseCase := appcatalog.NewCategoryUseCase(catalogService)

	warehouseUseCase := appwarehouse.NewWarehouseUseCase(warehouseRepo)

	createRecordUseCase := appinventory.NewCreateRecordUseCase(inventoryRepo, warehouseRepo)
	adjustStockUseCase := appinventory.NewAdjustStockUseCase(inventoryRepo, txManager)
	setStatusUseCase := appinventory.NewSetStatusUseCase(inventoryRepo, txManager)
	queryRecordsUseCase := appinventory.NewQueryRecordsUseCase(inventoryRepo)
	deleteRecordUseCase := appinventory.NewDeleteRecordUseCase(inventoryRepo, txManager)

	cartUseCase := appcart.NewCartUseCase(cartRepo, productRepo)
	addressUseCase := appaddress.NewAddressUseCase(addressRepo, txManager)
	reviewUseCase := appreview.NewReviewUseCase(reviewRepo, productRepo)

	checkoutUseCase := appcheckout.NewCheckoutUseCase(
		cartRepo, addressRepo, productRepo, inventoryRepo, orderRepo,
		txManager, notifier, shipping,
	)
	couponUseCase := appcheckout.NewCouponUseCase()

	createOrderUseCase := apporder.NewCreateOrderUseCase(
		orderRepo, productRepo, inventoryRepo, addressRepo,
		txManager, notifier, orderShipping,
	)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, inventoryRepo, txManager, notifier)
	updatePaymentUseCase := apporder.NewUpdatePaymentUseCase(orderRepo)
	cancelOrderUseCase := apporder.NewCancelOrderUseCase(orderRepo, inventoryRepo, txManager, notifier)
	deleteOrderUseCase := apporder.NewDeleteOrderUseCase(orderRepo, inventoryRepo, txManager)
	queryOrdersUseCase := apporder.NewQueryOrdersUseCase(orderRepo)

	analyticsUseCase := appanalytics.NewAnalyticsUseCase(statsRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, jwtManager)
	productHandler := handler.NewProductHandler(publishProductUseCase, queryProductsUseCase, updateProductUseCase, categoryUseCase)
	warehouseHandler := handler.NewWarehouseHandler(warehouseUseCase)
	inventoryHandler := handler.NewInventoryHandler(createRecordUseCase, adjustStockUseCase, setStatusUseCase, queryRecordsUseCase, deleteRecordUseCase)
	cartHandler := handler.NewCartHandler(cartUseCase)
	checkoutHandler := handler.NewCheckoutHandler(checkoutUseCase, couponUseCase)
	orderHandler := handler.NewOrderHandler(createOrderUseCase, updateStatusUseCase, updatePaymentUseCase, cancelOrderUseCase, deleteOrderUseCase, queryOrdersUseCase)
	addressHandler := handler.NewAddressHandler(addressUseCase)
	reviewHandler := handler.NewReviewHandler(reviewUseCase)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, &handlers{
		user:      userHandler,
		product:   productHandler,
		warehouse: warehouseHandler,
		inventory: inventoryHandler,
		cart:      cartHandler,
		checkout:  checkoutHandler,
		order:     orderHandler,
		address:   addressHandler,
		review:    reviewHandler,
		analytics: analyticsHandler,
		auth:      authMiddleware,
	})

	// 9. 启动服务（支持优雅关闭）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务关闭超时: %v", err)
	}
	log.Println("服务已退出")
}

// handlers 路由注册需要的全部处理器
type handlers struct {
	user      *handler.UserHandler
	product   *handler.ProductHandler
	warehouse *handler.WarehouseHandler
	inventory *handler.InventoryHandler
	cart      *handler.CartHandler
	checkout  *handler.CheckoutHandler
	order     *handler.OrderHandler
	address   *handler.AddressHandler
	review    *handler.ReviewHandler
	analytics *handler.AnalyticsHandler
	auth      *middleware.AuthMiddleware
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, h *handlers) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	// 生产环境建议禁用或添加访问控制
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", h.user.Register)
			users.POST("/login", h.user.Login)
			users.POST("/refresh", h.user.RefreshToken)
			users.POST("/logout", h.auth.RequireAuth(), h.user.Logout)
		}

		// 商品模块（查询公开,管理需登录）
		products := v1.Group("/products")
		{
			products.GET("", h.product.List)
			products.GET("/:id", h.product.Get)
			products.GET("/:id/reviews", h.review.ListByProduct)

			products.POST("", h.auth.RequireAuth(), h.product.Publish)
			products.PUT("/:id", h.auth.RequireAuth(), h.product.UpdateInfo)
			products.PUT("/:id/price", h.auth.RequireAuth(), h.product.UpdatePrice)
			products.POST("/:id/deactivate", h.auth.RequireAuth(), h.product.Deactivate)
			products.DELETE("/:id", h.auth.RequireAuth(), h.product.Delete)
		}

		// 分类模块
		categories := v1.Group("/categories")
		{
			categories.GET("", h.product.ListCategories)
			categories.POST("", h.auth.RequireAuth(), h.product.CreateCategory)
		}

		// 仓库模块（需登录）
		warehouses := v1.Group("/warehouses")
		warehouses.Use(h.auth.RequireAuth())
		{
			warehouses.POST("", h.warehouse.Create)
			warehouses.GET("", h.warehouse.List)
			warehouses.GET("/:id", h.warehouse.Get)
			warehouses.PUT("/:id/active", h.warehouse.SetActive)
		}

		// 库存模块（需登录）
		inventory := v1.Group("/inventory")
		inventory.Use(h.auth.RequireAuth())
		{
			inventory.POST("", h.inventory.Create)
			inventory.GET("", h.inventory.List)
			inventory.GET("/low-stock", h.inventory.ListLowStock)
			inventory.GET("/product/:id", h.inventory.ListByProduct)
			inventory.GET("/warehouse/:id", h.inventory.ListByWarehouse)
			inventory.GET("/:id", h.inventory.Get)
			inventory.POST("/:id/adjust", h.inventory.Adjust)
			inventory.PUT("/:id/status", h.inventory.SetStatus)
			inventory.DELETE("/:id", h.inventory.Delete)
		}

		// 购物车模块（需登录）
		cart := v1.Group("/cart")
		cart.Use(h.auth.RequireAuth())
		{
			cart.GET("", h.cart.GetCart)
			cart.DELETE("", h.cart.Clear)
			cart.POST("/items", h.cart.AddItem)
			cart.PUT("/items/:id", h.cart.UpdateItem)
			cart.DELETE("/items/:id", h.cart.RemoveItem)
		}

		// 结算模块（需登录）
		v1.POST("/checkout", h.auth.RequireAuth(), h.checkout.Checkout)
		v1.GET("/coupons/:code", h.auth.RequireAuth(), h.checkout.LookupCoupon)

		// 订单模块（需登录）
		orders := v1.Group("/orders")
		orders.Use(h.auth.RequireAuth())
		{
			orders.POST("", h.order.Create)
			orders.GET("", h.order.List)
			orders.GET("/status/:status", h.order.ListByStatus)
			orders.GET("/date-range", h.order.ListByDateRange)
			orders.GET("/:id", h.order.Get)
			orders.PUT("/:id/status", h.order.UpdateStatus)
			orders.PUT("/:id/payment", h.order.UpdatePayment)
			orders.POST("/:id/cancel", h.order.Cancel)
			orders.DELETE("/:id", h.order.Delete)
		}

		// 地址模块（需登录）
		addresses := v1.Group("/addresses")
		addresses.Use(h.auth.RequireAuth())
		{
			addresses.POST("", h.address.Create)
			addresses.GET("", h.address.List)
			addresses.PUT("/:id", h.address.Update)
			addresses.POST("/:id/default", h.address.SetDefault)
			addresses.DELETE("/:id", h.address.Delete)
		}

		// 评价模块
		reviews := v1.Group("/reviews")
		{
			reviews.POST("", h.auth.RequireAuth(), h.review.Create)
			reviews.DELETE("/:id", h.auth.RequireAuth(), h.review.Delete)
		}

		// 经营统计模块（只读报表,需登录）
		analytics := v1.Group("/analytics")
		analytics.Use(h.auth.RequireAuth())
		{
			analytics.GET("/orders/summary", h.analytics.OrderSummary)
			analytics.GET("/orders/status-count", h.analytics.OrderCountByStatus)
			analytics.GET("/products/top", h.analytics.TopSellingProducts)
			analytics.GET("/customers/top", h.analytics.TopCustomers)
			analytics.GET("/inventory/warehouse-summary", h.analytics.WarehouseSummary)
		}
	}
}
