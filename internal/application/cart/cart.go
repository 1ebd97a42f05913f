package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/ecommerce/internal/domain/cart"
	"github.com/xiebiao/ecommerce/internal/domain/catalog"
)

// CartUseCase 购物车用例(加购、调整、删除、清空、查看)
type CartUseCase struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartRepo cart.Repository, productRepo catalog.ProductRepository) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartItemView 购物车条目视图DTO
// 价格按商品当前售价实时计算,不做快照
type CartItemView struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
	Available   bool   `json:"available"` // 商品是否仍然上架
}

// CartView 购物车视图DTO
type CartView struct {
	Items       []CartItemView `json:"items"`
	TotalAmount int64          `json:"total_amount"`
}

// AddItem 加入购物车
// 重复加购同一商品累加数量,不新增行
func (uc *CartUseCase) AddItem(ctx context.Context, userID, productID uint, quantity int) error {
	// 1. 商品必须存在且上架
	product, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Active {
		return catalog.ErrProductNotFound
	}

	// 2. 已有条目则累加
	existing, err := uc.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err == nil {
		if err := existing.AddQuantity(quantity); err != nil {
			return err
		}
		return uc.cartRepo.Update(ctx, existing)
	}
	if !errors.Is(err, cart.ErrItemNotFound) {
		return err
	}

	// 3. 新建条目
	item, err := cart.NewItem(userID, productID, quantity)
	if err != nil {
		return err
	}
	return uc.cartRepo.Create(ctx, item)
}

// UpdateItem 调整购物车条目数量
func (uc *CartUseCase) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) error {
	item, err := uc.findOwned(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if err := item.SetQuantity(quantity); err != nil {
		return err
	}
	return uc.cartRepo.Update(ctx, item)
}

// RemoveItem 删除购物车条目
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := uc.findOwned(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return uc.cartRepo.Delete(ctx, item.ID)
}

// Clear 清空购物车
func (uc *CartUseCase) Clear(ctx context.Context, userID uint) error {
	return uc.cartRepo.Clear(ctx, userID)
}

// GetCart 查看购物车(带实时价格)
func (uc *CartUseCase) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	items, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartItemView, 0, len(items))}
	for _, item := range items {
		iv := CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		product, err := uc.productRepo.FindByID(ctx, item.ProductID)
		if err == nil && product.Active {
			iv.ProductName = product.Name
			iv.UnitPrice = product.SellingPrice()
			iv.Subtotal = iv.UnitPrice * int64(item.Quantity)
			iv.Available = true
			view.TotalAmount += iv.Subtotal
		}

		view.Items = append(view.Items, iv)
	}

	return view, nil
}

// findOwned 查条目并做归属校验
func (uc *CartUseCase) findOwned(ctx context.Context, userID, itemID uint) (*cart.Item, error) {
	items, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	// 条目不存在或属于其他用户,对外统一不存在
	return nil, cart.ErrItemNotFound
}
