package order

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/application/notification"
	"github.com/xiebiao/ecommerce/internal/domain/address"
	"github.com/xiebiao/ecommerce/internal/domain/catalog"
	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	"github.com/xiebiao/ecommerce/internal/domain/order"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
	"github.com/xiebiao/ecommerce/pkg/metrics"
)

// Transactor 事务执行器(由mysql.TxManager实现)
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ShippingConfig 运费规则(与结算共用同一套规则)
type ShippingConfig struct {
	BaseFee    int64
	PerItemFee int64
}

// CreateOrderUseCase 直接下单用例(不经过购物车)
// 与结算共享同一套预留算法:锁行、跨仓分配、价格快照
type CreateOrderUseCase struct {
	orderRepo     order.Repository
	productRepo   catalog.ProductRepository
	inventoryRepo inventory.Repository
	addressRepo   address.Repository
	txManager     Transactor
	notifier      *notification.Notifier
	shipping      ShippingConfig
}

// NewCreateOrderUseCase 创建直接下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	inventoryRepo inventory.Repository,
	addressRepo address.Repository,
	txManager Transactor,
	notifier *notification.Notifier,
	shipping ShippingConfig,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		addressRepo:   addressRepo,
		txManager:     txManager,
		notifier:      notifier,
		shipping:      shipping,
	}
}

// CreateOrderRequest 下单请求DTO
type CreateOrderRequest struct {
	UserID            uint
	Items             []CreateOrderItem
	ShippingAddressID uint
	BillingAddressID  uint
	PaymentMethod     string
}

// CreateOrderItem 下单明细项
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
}

// CreateOrderResponse 下单响应DTO
type CreateOrderResponse struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	TotalAmount int64  `json:"total_amount"`
	ShippingFee int64  `json:"shipping_fee"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// Execute 执行下单
// 防超卖流程:FOR UPDATE锁定商品的全部库存行 → 校验可售量 → 预留 → 创建订单 → COMMIT释放锁
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 校验收货地址
		addr, err := uc.addressRepo.FindByID(txCtx, req.ShippingAddressID)
		if err != nil {
			return address.ErrNotOwner
		}
		if !addr.IsOwnedBy(req.UserID) {
			return address.ErrNotOwner
		}
		billingAddressID := req.BillingAddressID
		if billingAddressID == 0 {
			billingAddressID = req.ShippingAddressID
		}

		// 2. 逐行:商品校验、价格快照、锁库存、跨仓预留
		orderItems := make([]order.Item, 0, len(req.Items))
		totalUnits := 0
		for _, item := range req.Items {
			if item.Quantity <= 0 {
				return order.ErrInvalidQuantity
			}

			product, err := uc.productRepo.FindByID(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			if !product.Active {
				return apperrors.ErrProductNotFound
			}

			records, err := uc.inventoryRepo.LockByProductID(txCtx, item.ProductID)
			if err != nil {
				return err
			}

			plans, err := inventory.Allocate(records, item.Quantity)
			if err != nil {
				return err
			}

			for _, r := range records {
				for _, p := range plans {
					if p.InventoryID == r.ID {
						if err := uc.inventoryRepo.Update(txCtx, r); err != nil {
							return err
						}
						break
					}
				}
			}

			allocations := make([]order.Allocation, len(plans))
			for i, p := range plans {
				allocations[i] = order.Allocation{
					InventoryID: p.InventoryID,
					Quantity:    p.Quantity,
				}
			}

			orderItems = append(orderItems, order.Item{
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				UnitPrice:   product.SellingPrice(),
				Allocations: allocations,
			})
			totalUnits += item.Quantity
		}

		// 3. 运费 + 创建订单
		shippingFee := uc.shipping.BaseFee + uc.shipping.PerItemFee*int64(totalUnits)
		newOrder, err := order.NewOrder(
			order.GenerateOrderNo(),
			req.UserID,
			orderItems,
			shippingFee,
			req.ShippingAddressID,
			billingAddressID,
			req.PaymentMethod,
		)
		if err != nil {
			return err
		}

		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		result = newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	if metrics.OrdersCreatedTotal != nil {
		metrics.OrdersCreatedTotal.WithLabelValues("direct").Inc()
		metrics.OrderAmount.Observe(float64(result.TotalAmount))
		metrics.InventoryReservations.WithLabelValues("reserve").Inc()
	}
	if uc.notifier != nil {
		uc.notifier.OrderCreated(result)
	}

	return &CreateOrderResponse{
		OrderID:     result.ID,
		OrderNo:     result.OrderNo,
		TotalAmount: result.TotalAmount,
		ShippingFee: result.ShippingFee,
		Status:      result.Status.String(),
		CreatedAt:   result.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
