package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	"github.com/xiebiao/ecommerce/internal/domain/order"
)

// ========== 内存假实现 ==========

type fakeTxManager struct{}

func (f *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOrderRepo struct {
	orders              map[uint]*order.Order
	allocationsReplaced bool
	deleted             []uint
	lockCalls           int
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error { return nil }
func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}
func (f *fakeOrderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (f *fakeOrderRepo) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	f.lockCalls++
	return f.FindByID(ctx, id)
}
func (f *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error { return nil }
func (f *fakeOrderRepo) ReplaceAllocations(ctx context.Context, o *order.Order) error {
	f.allocationsReplaced = true
	return nil
}
func (f *fakeOrderRepo) Delete(ctx context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	delete(f.orders, id)
	return nil
}
func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}
func (f *fakeOrderRepo) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	return nil, nil
}

type fakeInventoryRepo struct {
	records map[uint]*inventory.Record
}

func (f *fakeInventoryRepo) Create(ctx context.Context, r *inventory.Record) error { return nil }
func (f *fakeInventoryRepo) FindByID(ctx context.Context, id uint) (*inventory.Record, error) {
	return f.LockByID(ctx, id)
}
func (f *fakeInventoryRepo) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uint) (*inventory.Record, error) {
	return nil, inventory.ErrRecordNotFound
}
func (f *fakeInventoryRepo) FindByProductID(ctx context.Context, productID uint) ([]*inventory.Record, error) {
	return f.LockByProductID(ctx, productID)
}
func (f *fakeInventoryRepo) FindByWarehouseID(ctx context.Context, warehouseID uint) ([]*inventory.Record, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) List(ctx context.Context, page, pageSize int) ([]*inventory.Record, int64, error) {
	return nil, 0, nil
}
func (f *fakeInventoryRepo) ListLowStock(ctx context.Context) ([]*inventory.Record, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) LockByID(ctx context.Context, id uint) (*inventory.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, inventory.ErrRecordNotFound
	}
	return r, nil
}
func (f *fakeInventoryRepo) LockByProductID(ctx context.Context, productID uint) ([]*inventory.Record, error) {
	var result []*inventory.Record
	for id := uint(1); id <= uint(len(f.records))+10; id++ {
		if r, ok := f.records[id]; ok && r.ProductID == productID {
			result = append(result, r)
		}
	}
	return result, nil
}
func (f *fakeInventoryRepo) Update(ctx context.Context, r *inventory.Record) error { return nil }
func (f *fakeInventoryRepo) Delete(ctx context.Context, id uint) error             { return nil }

// ========== 测试夹具 ==========

// newReservedRecord 构造一条已有预留的库存记录
func newReservedRecord(id, productID uint, quantity, reserved int) *inventory.Record {
	r, _ := inventory.NewRecord(productID, id, quantity, 0, "")
	r.ID = id
	if reserved > 0 {
		_ = r.Reserve(reserved)
	}
	return r
}

// newProcessingOrder 构造一个处理中、已预留库存的订单
func newProcessingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD1", 1, []order.Item{
		{
			ID: 100, ProductID: 10, Quantity: 3, UnitPrice: 1000,
			Allocations: []order.Allocation{{OrderItemID: 100, InventoryID: 1, Quantity: 3}},
		},
	}, 650, 5, 5, "alipay")
	require.NoError(t, err)
	o.ID = 1
	return o
}

func newStatusFixture(t *testing.T) (*UpdateStatusUseCase, *fakeOrderRepo, *fakeInventoryRepo) {
	t.Helper()
	orderRepo := &fakeOrderRepo{orders: map[uint]*order.Order{1: newProcessingOrder(t)}}
	invRepo := &fakeInventoryRepo{
		records: map[uint]*inventory.Record{1: newReservedRecord(1, 10, 20, 3)},
	}
	uc := NewUpdateStatusUseCase(orderRepo, invRepo, &fakeTxManager{}, nil)
	return uc, orderRepo, invRepo
}

// ========== 测试用例 ==========

func TestUpdateStatus_Ship(t *testing.T) {
	uc, orderRepo, invRepo := newStatusFixture(t)

	resp, err := uc.Execute(context.Background(), UpdateStatusRequest{
		OrderID: 1,
		Target:  order.StatusShipped,
	})
	require.NoError(t, err)
	assert.Equal(t, "已发货", resp.Status)
	assert.Equal(t, order.StatusShipped, orderRepo.orders[1].Status)

	// 发货确认:在库与预留同步扣减,可售数量不变
	r := invRepo.records[1]
	assert.Equal(t, 17, r.Quantity)
	assert.Equal(t, 0, r.ReservedQuantity)
	assert.Equal(t, 17, r.AvailableQuantity())
}

func TestUpdateStatus_Cancel(t *testing.T) {
	uc, orderRepo, invRepo := newStatusFixture(t)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{
		OrderID: 1,
		Target:  order.StatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, orderRepo.orders[1].Status)

	// 取消释放:预留退回可售,在库数量不变
	r := invRepo.records[1]
	assert.Equal(t, 20, r.Quantity)
	assert.Equal(t, 0, r.ReservedQuantity)
}

func TestUpdateStatus_ReinstateCancelled(t *testing.T) {
	uc, orderRepo, invRepo := newStatusFixture(t)

	// 先取消(释放预留)
	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusCancelled})
	require.NoError(t, err)
	require.Equal(t, 0, invRepo.records[1].ReservedQuantity)

	// 恢复为处理中:重新预留
	resp, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusProcessing})
	require.NoError(t, err)
	assert.Equal(t, "处理中", resp.Status)
	assert.Equal(t, 3, invRepo.records[1].ReservedQuantity)
	assert.True(t, orderRepo.allocationsReplaced)

	// 分配记录已重建且关联订单明细
	allocations := orderRepo.orders[1].Items[0].Allocations
	require.Len(t, allocations, 1)
	assert.Equal(t, uint(100), allocations[0].OrderItemID)
	assert.Equal(t, 3, allocations[0].Quantity)
}

func TestUpdateStatus_ReinstateInsufficientStock(t *testing.T) {
	uc, orderRepo, invRepo := newStatusFixture(t)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusCancelled})
	require.NoError(t, err)

	// 取消期间库存被卖光
	invRepo.records[1] = newReservedRecord(1, 10, 1, 1)

	_, err = uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusProcessing})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.False(t, orderRepo.allocationsReplaced)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	t.Run("处理中不能直接送达", func(t *testing.T) {
		uc, _, invRepo := newStatusFixture(t)

		_, err := uc.Execute(context.Background(), UpdateStatusRequest{
			OrderID: 1,
			Target:  order.StatusDelivered,
		})
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

		// 校验失败不碰库存
		assert.Equal(t, 3, invRepo.records[1].ReservedQuantity)
	})

	t.Run("已送达是终态", func(t *testing.T) {
		uc, orderRepo, _ := newStatusFixture(t)
		_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusShipped})
		require.NoError(t, err)
		_, err = uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusDelivered})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusCancelled})
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
		assert.Equal(t, order.StatusDelivered, orderRepo.orders[1].Status)
	})

	t.Run("订单不存在", func(t *testing.T) {
		uc, _, _ := newStatusFixture(t)
		_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 99, Target: order.StatusShipped})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestUpdateStatus_SerializedTransitions(t *testing.T) {
	t.Run("状态流转经由行锁读取订单", func(t *testing.T) {
		uc, orderRepo, _ := newStatusFixture(t)

		_, err := uc.Execute(context.Background(), UpdateStatusRequest{
			OrderID: 1,
			Target:  order.StatusShipped,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, orderRepo.lockCalls, "流转应通过LockByID读取订单")
	})

	t.Run("重复取消只释放一次预留", func(t *testing.T) {
		uc, orderRepo, invRepo := newStatusFixture(t)

		// 并发取消在订单行锁上排队:后到者读到的已是已取消状态,
		// 被状态机拒绝,释放不会执行第二次
		_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusCancelled})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusCancelled})
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

		r := invRepo.records[1]
		assert.Equal(t, 0, r.ReservedQuantity, "预留只应释放一次")
		assert.Equal(t, 20, r.Quantity)
		assert.Equal(t, 2, orderRepo.lockCalls)
	})

	t.Run("取消与发货竞争只有一个生效", func(t *testing.T) {
		uc, orderRepo, invRepo := newStatusFixture(t)
		cancelUC := NewCancelOrderUseCase(orderRepo, invRepo, &fakeTxManager{}, nil)

		require.NoError(t, cancelUC.Execute(context.Background(), 1, 1))

		// 排在后面的发货事务读到已取消状态,确认扣减不会执行
		_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Target: order.StatusShipped})
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

		r := invRepo.records[1]
		assert.Equal(t, 20, r.Quantity, "在库数量不应被扣减")
		assert.Equal(t, 0, r.ReservedQuantity)
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("本人取消释放预留", func(t *testing.T) {
		orderRepo := &fakeOrderRepo{orders: map[uint]*order.Order{1: newProcessingOrder(t)}}
		invRepo := &fakeInventoryRepo{records: map[uint]*inventory.Record{1: newReservedRecord(1, 10, 20, 3)}}
		uc := NewCancelOrderUseCase(orderRepo, invRepo, &fakeTxManager{}, nil)

		require.NoError(t, uc.Execute(context.Background(), 1, 1))
		assert.Equal(t, order.StatusCancelled, orderRepo.orders[1].Status)
		assert.Equal(t, 0, invRepo.records[1].ReservedQuantity)
	})

	t.Run("他人订单不能取消", func(t *testing.T) {
		orderRepo := &fakeOrderRepo{orders: map[uint]*order.Order{1: newProcessingOrder(t)}}
		invRepo := &fakeInventoryRepo{records: map[uint]*inventory.Record{1: newReservedRecord(1, 10, 20, 3)}}
		uc := NewCancelOrderUseCase(orderRepo, invRepo, &fakeTxManager{}, nil)

		err := uc.Execute(context.Background(), 1, 2)
		require.Error(t, err)
		assert.Equal(t, order.StatusProcessing, orderRepo.orders[1].Status)
		assert.Equal(t, 3, invRepo.records[1].ReservedQuantity)
	})

	t.Run("已发货订单不能取消", func(t *testing.T) {
		o := newProcessingOrder(t)
		require.NoError(t, o.TransitionTo(order.StatusShipped))
		orderRepo := &fakeOrderRepo{orders: map[uint]*order.Order{1: o}}
		invRepo := &fakeInventoryRepo{records: map[uint]*inventory.Record{1: newReservedRecord(1, 10, 17, 0)}}
		uc := NewCancelOrderUseCase(orderRepo, invRepo, &fakeTxManager{}, nil)

		err := uc.Execute(context.Background(), 1, 1)
		assert.ErrorIs(t, err, order.ErrCannotCancel)
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Run("处理中的订单删除前先释放预留", func(t *testing.T) {
		orderRepo := &fakeOrderRepo{orders: map[uint]*order.Order{1: newProcessingOrder(t)}}
		invRepo := &fakeInventoryRepo{records: map[uint]*inventory.Record{1: newReservedRecord(1, 10, 20, 3)}}
		uc := NewDeleteOrderUseCase(orderRepo, invRepo, &fakeTxManager{})

		require.NoError(t, uc.Execute(context.Background(), 1))
		assert.Equal(t, []uint{1}, orderRepo.deleted)
		assert.Equal(t, 0, invRepo.records[1].ReservedQuantity)
	})

	t.Run("已取消订单直接删除不碰库存", func(t *testing.T) {
		o := newProcessingOrder(t)
		require.NoError(t, o.Cancel())
		orderRepo := &fakeOrderRepo{orders: map[uint]*order.Order{1: o}}
		invRepo := &fakeInventoryRepo{records: map[uint]*inventory.Record{1: newReservedRecord(1, 10, 20, 0)}}
		uc := NewDeleteOrderUseCase(orderRepo, invRepo, &fakeTxManager{})

		require.NoError(t, uc.Execute(context.Background(), 1))
		assert.Equal(t, 0, invRepo.records[1].ReservedQuantity)
		assert.Equal(t, 20, invRepo.records[1].Quantity)
	})
}
