package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/ecommerce/internal/domain/address"
	"github.com/xiebiao/ecommerce/internal/domain/cart"
	"github.com/xiebiao/ecommerce/internal/domain/catalog"
	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	"github.com/xiebiao/ecommerce/internal/domain/order"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// ========== 内存假实现 ==========
// 单元测试不连数据库,事务语义(回滚)由集成测试覆盖;
// 这里验证的是用例编排逻辑:校验顺序、预留计算、订单组装、清车时机。

type fakeTxManager struct{}

func (f *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCartRepo struct {
	items   []*cart.Item
	cleared bool
}

func (f *fakeCartRepo) FindByUserID(ctx context.Context, userID uint) ([]*cart.Item, error) {
	return f.items, nil
}
func (f *fakeCartRepo) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*cart.Item, error) {
	return nil, cart.ErrItemNotFound
}
func (f *fakeCartRepo) Create(ctx context.Context, item *cart.Item) error { return nil }
func (f *fakeCartRepo) Update(ctx context.Context, item *cart.Item) error { return nil }
func (f *fakeCartRepo) Delete(ctx context.Context, id uint) error         { return nil }
func (f *fakeCartRepo) Clear(ctx context.Context, userID uint) error {
	f.cleared = true
	return nil
}

type fakeAddressRepo struct {
	addresses map[uint]*address.Address
	findErr   error // 模拟基础设施故障
}

func (f *fakeAddressRepo) Create(ctx context.Context, a *address.Address) error { return nil }
func (f *fakeAddressRepo) FindByID(ctx context.Context, id uint) (*address.Address, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	a, ok := f.addresses[id]
	if !ok {
		return nil, address.ErrAddressNotFound
	}
	return a, nil
}
func (f *fakeAddressRepo) FindByUserID(ctx context.Context, userID uint) ([]*address.Address, error) {
	return nil, nil
}
func (f *fakeAddressRepo) Update(ctx context.Context, a *address.Address) error { return nil }
func (f *fakeAddressRepo) Delete(ctx context.Context, id uint) error            { return nil }
func (f *fakeAddressRepo) ClearDefault(ctx context.Context, userID uint) error  { return nil }

type fakeProductRepo struct {
	products map[uint]*catalog.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *catalog.Product) error { return nil }
func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}
func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	return nil, catalog.ErrProductNotFound
}
func (f *fakeProductRepo) Update(ctx context.Context, p *catalog.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uint) error            { return nil }
func (f *fakeProductRepo) List(ctx context.Context, params catalog.ListParams) ([]*catalog.Product, int64, error) {
	return nil, 0, nil
}

type fakeInventoryRepo struct {
	byProduct map[uint][]*inventory.Record
	updates   int
}

func (f *fakeInventoryRepo) Create(ctx context.Context, r *inventory.Record) error { return nil }
func (f *fakeInventoryRepo) FindByID(ctx context.Context, id uint) (*inventory.Record, error) {
	return nil, inventory.ErrRecordNotFound
}
func (f *fakeInventoryRepo) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uint) (*inventory.Record, error) {
	return nil, inventory.ErrRecordNotFound
}
func (f *fakeInventoryRepo) FindByProductID(ctx context.Context, productID uint) ([]*inventory.Record, error) {
	return f.byProduct[productID], nil
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
	return nil, inventory.ErrRecordNotFound
}
func (f *fakeInventoryRepo) LockByProductID(ctx context.Context, productID uint) ([]*inventory.Record, error) {
	return f.byProduct[productID], nil
}
func (f *fakeInventoryRepo) Update(ctx context.Context, r *inventory.Record) error {
	f.updates++
	return nil
}
func (f *fakeInventoryRepo) Delete(ctx context.Context, id uint) error { return nil }

type fakeOrderRepo struct {
	created *order.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	o.ID = 1
	f.created = o
	return nil
}
func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (f *fakeOrderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (f *fakeOrderRepo) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (f *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error             { return nil }
func (f *fakeOrderRepo) ReplaceAllocations(ctx context.Context, o *order.Order) error { return nil }
func (f *fakeOrderRepo) Delete(ctx context.Context, id uint) error                    { return nil }
func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}
func (f *fakeOrderRepo) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	return nil, nil
}

// ========== 测试夹具 ==========

func newRecord(id, productID uint, quantity int) *inventory.Record {
	r, _ := inventory.NewRecord(productID, id, quantity, 0, "")
	r.ID = id
	return r
}

type fixture struct {
	uc        *CheckoutUseCase
	cartRepo  *fakeCartRepo
	invRepo   *fakeInventoryRepo
	orderRepo *fakeOrderRepo
}

func newFixture() *fixture {
	cartRepo := &fakeCartRepo{
		items: []*cart.Item{
			{ID: 1, UserID: 1, ProductID: 10, Quantity: 2},
			{ID: 2, UserID: 1, ProductID: 20, Quantity: 1},
		},
	}
	addressRepo := &fakeAddressRepo{
		addresses: map[uint]*address.Address{
			5: {ID: 5, UserID: 1, Receiver: "张三", Phone: "13800000000"},
		},
	}
	productRepo := &fakeProductRepo{
		products: map[uint]*catalog.Product{
			10: {ID: 10, Name: "商品A", Price: 1000, Active: true},
			20: {ID: 20, Name: "商品B", Price: 500, Active: true},
		},
	}
	invRepo := &fakeInventoryRepo{
		byProduct: map[uint][]*inventory.Record{
			10: {newRecord(1, 10, 100)},
			20: {newRecord(2, 20, 100)},
		},
	}
	orderRepo := &fakeOrderRepo{}

	uc := NewCheckoutUseCase(
		cartRepo, addressRepo, productRepo, invRepo, orderRepo,
		&fakeTxManager{}, nil,
		ShippingConfig{BaseFee: 500, PerItemFee: 50},
	)
	return &fixture{uc: uc, cartRepo: cartRepo, invRepo: invRepo, orderRepo: orderRepo}
}

// ========== 测试用例 ==========

func TestCheckout_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID:            1,
		ShippingAddressID: 5,
		PaymentMethod:     "alipay",
	})
	require.NoError(t, err)

	// 商品小计 1000*2 + 500*1 = 2500,运费 500 + 50*3 = 650
	assert.Equal(t, int64(3150), resp.TotalAmount)
	assert.Equal(t, int64(650), resp.ShippingFee)
	assert.Equal(t, 2, resp.ItemCount)
	assert.NotEmpty(t, resp.OrderNo)
	assert.Equal(t, "处理中", resp.Status)

	// 订单明细带价格快照和库存分配记录
	require.NotNil(t, f.orderRepo.created)
	require.Len(t, f.orderRepo.created.Items, 2)
	assert.Equal(t, int64(1000), f.orderRepo.created.Items[0].UnitPrice)
	require.Len(t, f.orderRepo.created.Items[0].Allocations, 1)
	assert.Equal(t, uint(1), f.orderRepo.created.Items[0].Allocations[0].InventoryID)
	assert.Equal(t, 2, f.orderRepo.created.Items[0].Allocations[0].Quantity)

	// 库存已预留并落库
	assert.Equal(t, 2, f.invRepo.byProduct[10][0].ReservedQuantity)
	assert.Equal(t, 1, f.invRepo.byProduct[20][0].ReservedQuantity)
	assert.Equal(t, 2, f.invRepo.updates)

	// 购物车已清空
	assert.True(t, f.cartRepo.cleared)
}

func TestCheckout_DiscountPriceSnapshot(t *testing.T) {
	f := newFixture()
	f.uc.productRepo.(*fakeProductRepo).products[10].DiscountPrice = 800

	resp, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
	})
	require.NoError(t, err)

	// 800*2 + 500 + 650
	assert.Equal(t, int64(2750), resp.TotalAmount)
	assert.Equal(t, int64(800), f.orderRepo.created.Items[0].UnitPrice)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture()
	f.cartRepo.items = nil

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
	})
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.Nil(t, f.orderRepo.created)
}

func TestCheckout_AddressValidation(t *testing.T) {
	t.Run("地址不存在", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), CheckoutRequest{
			UserID: 1, ShippingAddressID: 999, PaymentMethod: "alipay",
		})
		assert.ErrorIs(t, err, address.ErrNotOwner)
	})

	t.Run("地址属于其他用户", func(t *testing.T) {
		f := newFixture()
		f.uc.addressRepo.(*fakeAddressRepo).addresses[5].UserID = 2

		_, err := f.uc.Execute(context.Background(), CheckoutRequest{
			UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
		})
		assert.ErrorIs(t, err, address.ErrNotOwner)
		assert.False(t, f.cartRepo.cleared)
	})

	t.Run("数据库故障原样上抛", func(t *testing.T) {
		f := newFixture()
		f.uc.addressRepo.(*fakeAddressRepo).findErr = apperrors.ErrDatabaseError

		_, err := f.uc.Execute(context.Background(), CheckoutRequest{
			UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
		})
		// 基础设施错误不能被包装成"地址不属于当前用户"
		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)
		assert.NotErrorIs(t, err, address.ErrNotOwner)
	})

	t.Run("账单地址缺省时使用收货地址", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), CheckoutRequest{
			UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(5), f.orderRepo.created.BillingAddressID)
	})
}

func TestCheckout_InactiveProduct(t *testing.T) {
	f := newFixture()
	f.uc.productRepo.(*fakeProductRepo).products[20].Active = false

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
	})
	assert.ErrorIs(t, err, apperrors.ErrCartInvalid)
	assert.Nil(t, f.orderRepo.created)
	assert.False(t, f.cartRepo.cleared)
}

func TestCheckout_InvalidCartLine(t *testing.T) {
	f := newFixture()
	// 脏数据:数量非正的购物车行,按购物车校验失败对外
	f.cartRepo.items = []*cart.Item{
		{ID: 1, UserID: 1, ProductID: 10, Quantity: 0},
	}

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
	})
	assert.ErrorIs(t, err, apperrors.ErrCartInvalid)
	assert.Nil(t, f.orderRepo.created)
	assert.False(t, f.cartRepo.cleared)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	f := newFixture()
	f.invRepo.byProduct[10] = []*inventory.Record{newRecord(1, 10, 1)} // 购买2件只剩1件

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
	})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Nil(t, f.orderRepo.created)
	assert.False(t, f.cartRepo.cleared)
}

func TestCheckout_MultiWarehouseAllocation(t *testing.T) {
	f := newFixture()
	// 商品10分布在两个仓:1件 + 5件,购买2件应跨仓占用
	f.invRepo.byProduct[10] = []*inventory.Record{
		newRecord(1, 10, 1),
		newRecord(3, 10, 5),
	}

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 1, ShippingAddressID: 5, PaymentMethod: "alipay",
	})
	require.NoError(t, err)

	allocations := f.orderRepo.created.Items[0].Allocations
	require.Len(t, allocations, 2)
	assert.Equal(t, uint(1), allocations[0].InventoryID)
	assert.Equal(t, 1, allocations[0].Quantity)
	assert.Equal(t, uint(3), allocations[1].InventoryID)
	assert.Equal(t, 1, allocations[1].Quantity)
}
