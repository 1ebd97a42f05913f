//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式：
// Step 1: 运行 `wire gen ./cmd/api`
// Step 2: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 3: 把main.go中的手动组装替换为InitializeApp()调用
//
// 当前main.go仍使用手动注入，本文件与其保持等价。

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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
	"github.com/xiebiao/ecommerce/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewProductRepository,
	mysql.NewCategoryRepository,
	mysql.NewWarehouseRepository,
	mysql.NewInventoryRepository,
	mysql.NewOrderRepository,
	mysql.NewCartRepository,
	mysql.NewAddressRepository,
	mysql.NewReviewRepository,
	mysql.NewStatsRepository,
	mysql.NewTxManager,
	// 各应用包的Transactor接口都由*mysql.TxManager实现
	wire.Bind(new(appinventory.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(appcheckout.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(apporder.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(appaddress.Transactor), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	catalog.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appcatalog.NewPublishProductUseCase,
	appcatalog.NewQueryProductsUseCase,
	appcatalog.NewUpdateProductUseCase,
	appcatalog.NewCategoryUseCase,
	appwarehouse.NewWarehouseUseCase,
	appinventory.NewCreateRecordUseCase,
	appinventory.NewAdjustStockUseCase,
	appinventory.NewSetStatusUseCase,
	appinventory.NewQueryRecordsUseCase,
	appinventory.NewDeleteRecordUseCase,
	appcart.NewCartUseCase,
	appaddress.NewAddressUseCase,
	appreview.NewReviewUseCase,
	appcheckout.NewCheckoutUseCase,
	appcheckout.NewCouponUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewUpdatePaymentUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewDeleteOrderUseCase,
	apporder.NewQueryOrdersUseCase,
	appanalytics.NewAnalyticsUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideProductCache,
	provideNotifier,
	provideShippingConfig,
	provideOrderShippingConfig,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewWarehouseHandler,
	handler.NewInventoryHandler,
	handler.NewCartHandler,
	handler.NewCheckoutHandler,
	handler.NewOrderHandler,
	handler.NewAddressHandler,
	handler.NewReviewHandler,
	handler.NewAnalyticsHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideProductCache 从Redis客户端创建商品缓存
func provideProductCache(client *goredis.Client) *redis.ProductCache {
	return redis.NewProductCache(client)
}

// provideNotifier 创建事件通知器
// MQ不可用或未启用时降级为空操作，不影响主流程
func provideNotifier(cfg *config.Config) *notification.Notifier {
	if !cfg.MQ.Enabled {
		return notification.NewNotifier(nil)
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		log.Printf("初始化消息队列失败,事件通知已禁用: %v", err)
		return notification.NewNotifier(nil)
	}
	return notification.NewNotifier(publisher)
}

// provideShippingConfig 从配置提取运费规则（结算用例）
func provideShippingConfig(cfg *config.Config) appcheckout.ShippingConfig {
	return appcheckout.ShippingConfig{
		BaseFee:    cfg.Checkout.ShippingBaseFee,
		PerItemFee: cfg.Checkout.ShippingPerItemFee,
	}
}

// provideOrderShippingConfig 从配置提取运费规则（直接下单用例）
func provideOrderShippingConfig(cfg *config.Config) apporder.ShippingConfig {
	return apporder.ShippingConfig{
		BaseFee:    cfg.Checkout.ShippingBaseFee,
		PerItemFee: cfg.Checkout.ShippingPerItemFee,
	}
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	warehouseHandler *handler.WarehouseHandler,
	inventoryHandler *handler.InventoryHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	addressHandler *handler.AddressHandler,
	reviewHandler *handler.ReviewHandler,
	analyticsHandler *handler.AnalyticsHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
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

	return r
}

// InitializeApp 初始化整个应用
// Wire会在编译期分析依赖关系并生成初始化代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
