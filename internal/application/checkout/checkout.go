package checkout

import (
	"context"
	"errors"

	"github.com/xiebiao/ecommerce/internal/application/notification"
	"github.com/xiebiao/ecommerce/internal/domain/address"
	"github.com/xiebiao/ecommerce/internal/domain/cart"
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

// ShippingConfig 运费规则:基础运费 + 每件加收(单位:分)
type ShippingConfig struct {
	BaseFee    int64
	PerItemFee int64
}

// CheckoutUseCase 购物车结算用例
// 整个项目最核心的用例:购物车校验、地址校验、价格快照、
// 多仓库存预留、订单创建、清空购物车,全部在一个事务内完成
type CheckoutUseCase struct {
	cartRepo      cart.Repository
	addressRepo   address.Repository
	productRepo   catalog.ProductRepository
	inventoryRepo inventory.Repository
	orderRepo     order.Repository
	txManager     Transactor
	notifier      *notification.Notifier
	shipping      ShippingConfig
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	cartRepo cart.Repository,
	addressRepo address.Repository,
	productRepo catalog.ProductRepository,
	inventoryRepo inventory.Repository,
	orderRepo order.Repository,
	txManager Transactor,
	notifier *notification.Notifier,
	shipping ShippingConfig,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:      cartRepo,
		addressRepo:   addressRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		txManager:     txManager,
		notifier:      notifier,
		shipping:      shipping,
	}
}

// CheckoutRequest 结算请求DTO
type CheckoutRequest struct {
	UserID            uint   // 从JWT中提取
	ShippingAddressID uint   // 收货地址
	BillingAddressID  uint   // 账单地址(0表示同收货地址)
	PaymentMethod     string // 支付方式
}

// CheckoutResponse 结算响应DTO
type CheckoutResponse struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	TotalAmount int64  `json:"total_amount"`
	ShippingFee int64  `json:"shipping_fee"`
	Status      string `json:"status"`
	ItemCount   int    `json:"item_count"`
	CreatedAt   string `json:"created_at"`
}

// Execute 执行结算
// 事务内流程:
//  1. 读购物车:空车直接拒绝,什么都不改
//  2. 校验收货地址存在且属于当前用户
//  3. 逐行校验商品存在、上架,按锁定时价格做快照(不信任前端价格)
//  4. FOR UPDATE锁定每个商品的全部库存记录(按ID升序,与其他入口加锁顺序一致)
//  5. 跨仓贪心预留,记录每行的分配明细
//  6. 计算运费与总额,创建订单(处理中/待支付)
//  7. 清空购物车
//
// 任何一步失败整个事务回滚:不会出现"订单建了库存没留"或"库存留了车没清"的中间态。
// 提交后旁路发布order.created事件(尽力而为)。
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var result *order.Order

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 读购物车
		items, err := uc.cartRepo.FindByUserID(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return cart.ErrEmptyCart
		}

		// 2. 校验收货地址(地址不存在与归属他人对外同样报不属于,
		// 基础设施错误原样上抛,不能伪装成归属问题)
		addr, err := uc.addressRepo.FindByID(txCtx, req.ShippingAddressID)
		if err != nil {
			if errors.Is(err, address.ErrAddressNotFound) {
				return address.ErrNotOwner
			}
			return err
		}
		if !addr.IsOwnedBy(req.UserID) {
			return address.ErrNotOwner
		}
		billingAddressID := req.BillingAddressID
		if billingAddressID == 0 {
			billingAddressID = req.ShippingAddressID
		}

		// 3~5. 逐行:商品校验、价格快照、锁库存、跨仓预留
		orderItems := make([]order.Item, 0, len(items))
		totalUnits := 0
		for _, ci := range items {
			// 非法购物车行一律按购物车校验失败对外
			if ci.Quantity <= 0 {
				return apperrors.ErrCartInvalid
			}

			product, err := uc.productRepo.FindByID(txCtx, ci.ProductID)
			if err != nil {
				return apperrors.ErrCartInvalid
			}
			if !product.Active {
				return apperrors.ErrCartInvalid
			}

			// FOR UPDATE锁定该商品的全部库存记录(ID升序)
			records, err := uc.inventoryRepo.LockByProductID(txCtx, ci.ProductID)
			if err != nil {
				return err
			}

			// 跨仓贪心预留
			plans, err := inventory.Allocate(records, ci.Quantity)
			if err != nil {
				return err
			}

			// 预留成功的记录落库(版本号随之递增)
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
				ProductID:   ci.ProductID,
				Quantity:    ci.Quantity,
				UnitPrice:   product.SellingPrice(), // 锁定时的价格快照
				Allocations: allocations,
			})
			totalUnits += ci.Quantity
		}

		// 6. 运费 + 创建订单
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

		// 7. 清空购物车(同一事务,随订单一起提交或回滚)
		if err := uc.cartRepo.Clear(txCtx, req.UserID); err != nil {
			return err
		}

		result = newOrder
		return nil
	})

	if err != nil {
		uc.recordFailure(err)
		return nil, err
	}

	// 指标与旁路通知(事务已提交)
	if metrics.OrdersCreatedTotal != nil {
		metrics.OrdersCreatedTotal.WithLabelValues("checkout").Inc()
		metrics.OrderAmount.Observe(float64(result.TotalAmount))
		metrics.InventoryReservations.WithLabelValues("reserve").Inc()
	}
	if uc.notifier != nil {
		uc.notifier.OrderCreated(result)
	}

	return &CheckoutResponse{
		OrderID:     result.ID,
		OrderNo:     result.OrderNo,
		TotalAmount: result.TotalAmount,
		ShippingFee: result.ShippingFee,
		Status:      result.Status.String(),
		ItemCount:   len(result.Items),
		CreatedAt:   result.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// recordFailure 按失败原因打点
func (uc *CheckoutUseCase) recordFailure(err error) {
	if metrics.CheckoutFailuresTotal == nil {
		return
	}

	reason := "internal"
	appErr := apperrors.GetAppError(err)
	switch appErr.Code {
	case apperrors.ErrCodeCartInvalid:
		reason = "cart_invalid"
	case apperrors.ErrCodeAddressInvalid:
		reason = "address_invalid"
	case apperrors.ErrCodeInsufficientStock:
		reason = "insufficient_stock"
	case apperrors.ErrCodeInvalidParams:
		reason = "invalid_params"
	}
	metrics.CheckoutFailuresTotal.WithLabelValues(reason).Inc()
}
