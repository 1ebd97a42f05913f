package order

import (
	"context"
	"time"
)

// Repository 订单仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 订单、明细、库存分配记录必须在同一事务中一起保存(通过context传递事务)
type Repository interface {
	// Create 创建订单(含明细与库存分配记录)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(含明细与分配记录)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// LockByID 悲观锁查询订单(SELECT FOR UPDATE,含明细与分配记录)
	// 状态流转及其库存副作用必须经由此方法读取订单,
	// 串行化并发流转,防止两个事务同时通过状态机校验后重复释放/确认
	LockByID(ctx context.Context, id uint) (*Order, error)

	// Update 更新订单头(状态、支付状态等),不更新明细
	Update(ctx context.Context, order *Order) error

	// ReplaceAllocations 重写某订单的全部库存分配记录
	// 用于已取消订单恢复时重新预留(旧分配已随释放作废)
	ReplaceAllocations(ctx context.Context, order *Order) error

	// Delete 删除订单(级联删除明细与分配记录)
	Delete(ctx context.Context, id uint) error

	// ListByUserID 查询用户的订单列表(分页,按下单时间倒序)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// ListByStatus 按履约状态查询订单
	ListByStatus(ctx context.Context, status Status) ([]*Order, error)

	// ListByDateRange 按下单时间区间查询订单
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*Order, error)
}
