package inventory

import (
	"context"
)

// Repository 库存仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Lock开头的方法使用SELECT FOR UPDATE,必须在事务内调用(通过context传递事务)
// 3. Update基于Version做乐观校验:行锁是第一道防线,版本号兜底侦测绕过锁的写入
type Repository interface {
	// Create 创建库存记录
	// 同一(商品,仓库)组合重复创建返回ErrDuplicateRecord
	Create(ctx context.Context, record *Record) error

	// FindByID 根据ID查找库存记录
	FindByID(ctx context.Context, id uint) (*Record, error)

	// FindByProductAndWarehouse 根据(商品,仓库)组合查找
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uint) (*Record, error)

	// FindByProductID 查询某商品在所有仓库的库存记录
	FindByProductID(ctx context.Context, productID uint) ([]*Record, error)

	// FindByWarehouseID 查询某仓库的全部库存记录
	FindByWarehouseID(ctx context.Context, warehouseID uint) ([]*Record, error)

	// List 查询全部库存记录(分页)
	List(ctx context.Context, page, pageSize int) ([]*Record, int64, error)

	// ListLowStock 查询所有低库存记录(已设置阈值且在库数量不高于阈值)
	ListLowStock(ctx context.Context) ([]*Record, error)

	// LockByID 悲观锁查询(SELECT FOR UPDATE)
	// 用于预留/释放/确认等读改写操作,防止并发超卖
	LockByID(ctx context.Context, id uint) (*Record, error)

	// LockByProductID 悲观锁查询某商品的全部库存记录
	// 按ID升序锁定,所有调用方保持一致的加锁顺序以避免死锁
	LockByProductID(ctx context.Context, productID uint) ([]*Record, error)

	// Update 更新库存记录
	// WHERE条件携带旧版本号,不匹配返回ErrVersionConflict
	Update(ctx context.Context, record *Record) error

	// Delete 删除库存记录(显式管理操作,业务流程不会自动删除)
	Delete(ctx context.Context, id uint) error
}
