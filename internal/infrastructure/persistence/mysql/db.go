package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/ecommerce/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. 开发环境开启SQL日志,生产环境关闭
// 4. 自动迁移表结构(AutoMigrate)
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构(开发环境)
	// 注意:生产环境应使用专门的迁移工具(如golang-migrate)
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意:AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&WarehouseModel{},
		&InventoryModel{},
		&OrderModel{},
		&OrderItemModel{},
		&OrderItemAllocationModel{},
		&CartItemModel{},
		&AddressModel{},
		&ReviewModel{},
	)
}

// UserModel GORM用户模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/user/entity.go是领域实体,不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	Phone     string         `gorm:"size:20;comment:手机号"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null;comment:分类名称"`
	Description string    `gorm:"size:500;comment:分类描述"`
	ParentID    uint      `gorm:"index;default:0;comment:父分类ID(0为顶级)"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel GORM商品模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. SKU有唯一索引,防止重复
// 3. 添加复合索引优化列表查询性能
type ProductModel struct {
	ID            uint           `gorm:"primaryKey"`
	SKU           string         `gorm:"uniqueIndex;size:64;not null;comment:商品编码"`
	Name          string         `gorm:"index:idx_search;size:200;not null;comment:商品名称"`
	Description   string         `gorm:"type:text;comment:商品描述"`
	Price         int64          `gorm:"index:idx_list;not null;comment:原价(分)"`
	DiscountPrice int64          `gorm:"default:0;comment:折扣价(分),0表示无折扣"`
	CategoryID    uint           `gorm:"index;default:0;comment:所属分类ID"`
	ImageURL      string         `gorm:"size:500;comment:商品图片URL"`
	Active        bool           `gorm:"default:true;comment:是否上架"`
	CreatedAt     time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// WarehouseModel GORM仓库模型
type WarehouseModel struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"uniqueIndex;size:32;not null;comment:仓库编码"`
	Name      string    `gorm:"size:100;not null;comment:仓库名称"`
	Location  string    `gorm:"size:200;comment:所在地"`
	Active    bool      `gorm:"default:true;comment:是否启用"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// InventoryModel GORM库存记录模型
// 设计说明:
// 1. (product_id, warehouse_id)复合唯一索引:每个商品每个仓库至多一条
// 2. reserved_quantity随订单预留/释放/确认变化,quantity只在入库、盘点、发货时变化
// 3. version列用于侦测绕过行锁的并发写(仓储层更新时WHERE version = 旧值)
type InventoryModel struct {
	ID               uint       `gorm:"primaryKey"`
	ProductID        uint       `gorm:"uniqueIndex:idx_product_warehouse;not null;comment:商品ID"`
	WarehouseID      uint       `gorm:"uniqueIndex:idx_product_warehouse;index;not null;comment:仓库ID"`
	Quantity         int        `gorm:"not null;default:0;comment:在库数量"`
	ReservedQuantity int        `gorm:"not null;default:0;comment:已预留数量"`
	ReorderThreshold int        `gorm:"default:0;comment:补货阈值(0表示未设置)"`
	ReorderQuantity  int        `gorm:"default:0;comment:建议补货量"`
	Status           int        `gorm:"index;type:tinyint;default:1;comment:库存状态(1有货2低库存3缺货4停售)"`
	SKU              string     `gorm:"size:64;comment:库存单元编码"`
	BatchNumber      string     `gorm:"size:64;comment:批次号"`
	ExpiryDate       *time.Time `gorm:"comment:过期日期"`
	Version          int        `gorm:"not null;default:1;comment:版本号(并发写侦测)"`
	CreatedAt        time.Time  `gorm:"comment:创建时间"`
	UpdatedAt        time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (InventoryModel) TableName() string {
	return "inventories"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. 履约状态与支付状态两条轴分别存储
type OrderModel struct {
	ID                uint             `gorm:"primaryKey"`
	OrderNo           string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID            uint             `gorm:"index;not null;comment:买家用户ID"`
	TotalAmount       int64            `gorm:"not null;comment:订单总金额(分),含运费"`
	ShippingFee       int64            `gorm:"not null;default:0;comment:运费(分)"`
	Status            int              `gorm:"index;type:tinyint;default:1;comment:订单状态(1处理中2已发货3已送达4已取消)"`
	PaymentStatus     int              `gorm:"type:tinyint;default:1;comment:支付状态(1待支付2已支付3支付失败4已退款)"`
	ShippingAddressID uint             `gorm:"not null;comment:收货地址ID"`
	BillingAddressID  uint             `gorm:"comment:账单地址ID"`
	PaymentMethod     string           `gorm:"size:32;comment:支付方式"`
	Items             []OrderItemModel `gorm:"foreignKey:OrderID"` // 一对多关联
	OrderedAt         time.Time        `gorm:"index;comment:下单时间"`
	CreatedAt         time.Time        `gorm:"comment:创建时间"`
	UpdatedAt         time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 记录下单时的价格快照(UnitPrice字段)
type OrderItemModel struct {
	ID          uint                       `gorm:"primaryKey"`
	OrderID     uint                       `gorm:"index;not null;comment:订单ID"`
	ProductID   uint                       `gorm:"index;not null;comment:商品ID"`
	Quantity    int                        `gorm:"not null;comment:购买数量"`
	UnitPrice   int64                      `gorm:"not null;comment:下单时单价(分)"`
	Subtotal    int64                      `gorm:"not null;comment:小计(分)"`
	Allocations []OrderItemAllocationModel `gorm:"foreignKey:OrderItemID"` // 一对多关联
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderItemAllocationModel GORM库存分配记录模型
// 记录订单行预留时实际占用的库存记录与数量,
// 取消释放、发货确认按此精确回到同一条库存
type OrderItemAllocationModel struct {
	ID          uint `gorm:"primaryKey"`
	OrderItemID uint `gorm:"index;not null;comment:订单明细ID"`
	InventoryID uint `gorm:"index;not null;comment:库存记录ID"`
	Quantity    int  `gorm:"not null;comment:占用数量"`
}

// TableName 指定表名
func (OrderItemAllocationModel) TableName() string {
	return "order_item_allocations"
}

// CartItemModel GORM购物车条目模型
// (user_id, product_id)复合唯一索引:重复加购累加数量而非新增行
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product;not null;comment:用户ID"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null;comment:商品ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// AddressModel GORM收货地址模型
type AddressModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null;comment:用户ID"`
	Receiver  string    `gorm:"size:50;not null;comment:收件人"`
	Phone     string    `gorm:"size:20;not null;comment:联系电话"`
	Province  string    `gorm:"size:50;not null;comment:省"`
	City      string    `gorm:"size:50;not null;comment:市"`
	District  string    `gorm:"size:50;comment:区"`
	Street    string    `gorm:"size:200;not null;comment:详细地址"`
	ZipCode   string    `gorm:"size:10;comment:邮编"`
	IsDefault bool      `gorm:"default:false;comment:是否默认地址"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AddressModel) TableName() string {
	return "addresses"
}

// ReviewModel GORM商品评价模型
// (user_id, product_id)复合唯一索引:每个用户对同一商品仅可评价一次
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product_review;not null;comment:用户ID"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product_review;index;not null;comment:商品ID"`
	Rating    int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评价内容"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}
