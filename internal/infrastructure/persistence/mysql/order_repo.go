package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/ecommerce/internal/domain/order"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. Order、OrderItem、Allocation是一个聚合,必须一起保存
// 2. 查询时使用嵌套Preload预加载明细与分配记录,避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// GORM通过foreignKey关联自动保存Items及其Allocations
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID
	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
		for j := range o.Items[i].Allocations {
			o.Items[i].Allocations[j].ID = model.Items[i].Allocations[j].ID
			o.Items[i].Allocations[j].OrderItemID = model.Items[i].ID
		}
	}

	return nil
}

// FindByID 根据ID查找订单(含明细与分配记录)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	db := getDB(ctx, r.db)

	// 嵌套Preload:
	// 1. SELECT * FROM orders WHERE id = ?
	// 2. SELECT * FROM order_items WHERE order_id IN (?)
	// 3. SELECT * FROM order_item_allocations WHERE order_item_id IN (?)
	err := db.Preload("Items.Allocations").Preload("Items").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// FindByOrderNo 根据订单号查找订单
func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	db := getDB(ctx, r.db)
	err := db.Preload("Items.Allocations").Preload("Items").
		Where("order_no = ?", orderNo).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// LockByID 悲观锁查询订单(SELECT FOR UPDATE)
// 必须在TxManager事务内调用。状态流转都走这里:
// 两个并发流转在订单行上排队,后到者看到的是前者提交后的状态,
// 非法跳转被状态机拒绝,库存副作用不会执行两次
func (r *orderRepository) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items.Allocations").Preload("Items").
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "锁定订单失败")
	}

	return toOrderEntity(&model), nil
}

// Update 更新订单头(状态、支付状态等),不更新明细
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	db := getDB(ctx, r.db)

	result := db.Model(&OrderModel{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"status":         int(o.Status),
		"payment_status": int(o.PaymentStatus),
		"updated_at":     o.UpdatedAt,
	})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}

	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// ReplaceAllocations 重写某订单的全部库存分配记录
// 用于已取消订单恢复时重新预留:旧分配记录已随释放作废,
// 删除后按实体当前的Allocations重新插入(必须在事务内调用)
func (r *orderRepository) ReplaceAllocations(ctx context.Context, o *order.Order) error {
	db := getDB(ctx, r.db)

	// 1. 删除旧分配记录
	itemIDs := make([]uint, len(o.Items))
	for i, item := range o.Items {
		itemIDs[i] = item.ID
	}
	if err := db.Where("order_item_id IN ?", itemIDs).
		Delete(&OrderItemAllocationModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除旧分配记录失败")
	}

	// 2. 插入新分配记录
	var models []OrderItemAllocationModel
	for _, item := range o.Items {
		for _, alloc := range item.Allocations {
			models = append(models, OrderItemAllocationModel{
				OrderItemID: item.ID,
				InventoryID: alloc.InventoryID,
				Quantity:    alloc.Quantity,
			})
		}
	}
	if len(models) == 0 {
		return nil
	}
	if err := db.Create(&models).Error; err != nil {
		return apperrors.Wrap(err, "写入分配记录失败")
	}

	return nil
}

// Delete 删除订单(级联删除明细与分配记录)
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	// 1. 查出明细ID,删除分配记录
	var itemIDs []uint
	if err := db.Model(&OrderItemModel{}).Where("order_id = ?", id).
		Pluck("id", &itemIDs).Error; err != nil {
		return apperrors.Wrap(err, "查询订单明细失败")
	}
	if len(itemIDs) > 0 {
		if err := db.Where("order_item_id IN ?", itemIDs).
			Delete(&OrderItemAllocationModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除分配记录失败")
		}
	}

	// 2. 删除明细
	if err := db.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除订单明细失败")
	}

	// 3. 删除订单头
	result := db.Delete(&OrderModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// ListByUserID 查询用户的订单列表(分页,按下单时间倒序)
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	db := getDB(ctx, r.db)
	query := db.Model(&OrderModel{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Items.Allocations").Preload("Items").
		Order("ordered_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	return toOrderEntities(models), total, nil
}

// ListByStatus 按履约状态查询订单
func (r *orderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var models []OrderModel
	db := getDB(ctx, r.db)
	err := db.Preload("Items.Allocations").Preload("Items").
		Where("status = ?", int(status)).
		Order("ordered_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

// ListByDateRange 按下单时间区间查询订单
func (r *orderRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	var models []OrderModel
	db := getDB(ctx, r.db)
	err := db.Preload("Items.Allocations").Preload("Items").
		Where("ordered_at BETWEEN ? AND ?", start, end).
		Order("ordered_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		allocs := make([]OrderItemAllocationModel, len(item.Allocations))
		for j, alloc := range item.Allocations {
			allocs[j] = OrderItemAllocationModel{
				ID:          alloc.ID,
				OrderItemID: alloc.OrderItemID,
				InventoryID: alloc.InventoryID,
				Quantity:    alloc.Quantity,
			}
		}
		items[i] = OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
			Allocations: allocs,
		}
	}

	return &OrderModel{
		ID:                o.ID,
		OrderNo:           o.OrderNo,
		UserID:            o.UserID,
		TotalAmount:       o.TotalAmount,
		ShippingFee:       o.ShippingFee,
		Status:            int(o.Status),
		PaymentStatus:     int(o.PaymentStatus),
		ShippingAddressID: o.ShippingAddressID,
		BillingAddressID:  o.BillingAddressID,
		PaymentMethod:     o.PaymentMethod,
		Items:             items,
		OrderedAt:         o.OrderedAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.Item, len(model.Items))
	for i, item := range model.Items {
		allocs := make([]order.Allocation, len(item.Allocations))
		for j, alloc := range item.Allocations {
			allocs[j] = order.Allocation{
				ID:          alloc.ID,
				OrderItemID: alloc.OrderItemID,
				InventoryID: alloc.InventoryID,
				Quantity:    alloc.Quantity,
			}
		}
		items[i] = order.Item{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
			Allocations: allocs,
		}
	}

	return &order.Order{
		ID:                model.ID,
		OrderNo:           model.OrderNo,
		UserID:            model.UserID,
		Items:             items,
		TotalAmount:       model.TotalAmount,
		ShippingFee:       model.ShippingFee,
		Status:            order.Status(model.Status),
		PaymentStatus:     order.PaymentStatus(model.PaymentStatus),
		ShippingAddressID: model.ShippingAddressID,
		BillingAddressID:  model.BillingAddressID,
		PaymentMethod:     model.PaymentMethod,
		OrderedAt:         model.OrderedAt,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders
}
