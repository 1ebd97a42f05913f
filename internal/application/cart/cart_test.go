package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/ecommerce/internal/domain/cart"
	"github.com/xiebiao/ecommerce/internal/domain/catalog"
)

type fakeCartRepo struct {
	items  map[uint]*cart.Item
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uint]*cart.Item), nextID: 1}
}

func (f *fakeCartRepo) FindByUserID(ctx context.Context, userID uint) ([]*cart.Item, error) {
	var result []*cart.Item
	for _, item := range f.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeCartRepo) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*cart.Item, error) {
	for _, item := range f.items {
		if item.UserID == userID && item.ProductID == productID {
			return item, nil
		}
	}
	return nil, cart.ErrItemNotFound
}

func (f *fakeCartRepo) Create(ctx context.Context, item *cart.Item) error {
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = item
	return nil
}

func (f *fakeCartRepo) Update(ctx context.Context, item *cart.Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, id uint) error {
	delete(f.items, id)
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID uint) error {
	for id, item := range f.items {
		if item.UserID == userID {
			delete(f.items, id)
		}
	}
	return nil
}

type fakeProductRepo struct {
	products map[uint]*catalog.Product
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p *catalog.Product) error { return nil }
func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	return nil, catalog.ErrProductNotFound
}
func (f *fakeProductRepo) Update(ctx context.Context, p *catalog.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uint) error            { return nil }
func (f *fakeProductRepo) List(ctx context.Context, params catalog.ListParams) ([]*catalog.Product, int64, error) {
	return nil, 0, nil
}

func newTestUseCase() (*CartUseCase, *fakeCartRepo) {
	cartRepo := newFakeCartRepo()
	productRepo := &fakeProductRepo{products: map[uint]*catalog.Product{
		10: {ID: 10, Name: "商品A", Price: 1000, Active: true},
		20: {ID: 20, Name: "商品B", Price: 500, DiscountPrice: 300, Active: true},
		30: {ID: 30, Name: "已下架商品", Price: 800, Active: false},
	}}
	return NewCartUseCase(cartRepo, productRepo), cartRepo
}

func TestCartUseCase_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("正常加购", func(t *testing.T) {
		uc, repo := newTestUseCase()

		require.NoError(t, uc.AddItem(ctx, 1, 10, 2))

		item, err := repo.FindByUserAndProduct(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("重复加购累加数量", func(t *testing.T) {
		uc, repo := newTestUseCase()

		require.NoError(t, uc.AddItem(ctx, 1, 10, 2))
		require.NoError(t, uc.AddItem(ctx, 1, 10, 3))

		items, err := repo.FindByUserID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, items, 1, "同一商品不应产生多行")
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("商品不存在", func(t *testing.T) {
		uc, _ := newTestUseCase()
		err := uc.AddItem(ctx, 1, 999, 1)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("下架商品不能加购", func(t *testing.T) {
		uc, _ := newTestUseCase()
		err := uc.AddItem(ctx, 1, 30, 1)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("数量必须为正", func(t *testing.T) {
		uc, _ := newTestUseCase()
		assert.Error(t, uc.AddItem(ctx, 1, 10, 0))
	})
}

func TestCartUseCase_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("调整数量", func(t *testing.T) {
		uc, repo := newTestUseCase()
		require.NoError(t, uc.AddItem(ctx, 1, 10, 2))

		item, _ := repo.FindByUserAndProduct(ctx, 1, 10)
		require.NoError(t, uc.UpdateItem(ctx, 1, item.ID, 7))
		assert.Equal(t, 7, repo.items[item.ID].Quantity)
	})

	t.Run("不能操作他人的条目", func(t *testing.T) {
		uc, repo := newTestUseCase()
		require.NoError(t, uc.AddItem(ctx, 1, 10, 2))
		item, _ := repo.FindByUserAndProduct(ctx, 1, 10)

		// 用户2看不到用户1的条目,统一报不存在
		assert.ErrorIs(t, uc.UpdateItem(ctx, 2, item.ID, 5), cart.ErrItemNotFound)
		assert.ErrorIs(t, uc.RemoveItem(ctx, 2, item.ID), cart.ErrItemNotFound)
		assert.Equal(t, 2, repo.items[item.ID].Quantity, "他人操作不应生效")
	})

	t.Run("删除条目", func(t *testing.T) {
		uc, repo := newTestUseCase()
		require.NoError(t, uc.AddItem(ctx, 1, 10, 2))
		item, _ := repo.FindByUserAndProduct(ctx, 1, 10)

		require.NoError(t, uc.RemoveItem(ctx, 1, item.ID))
		assert.Empty(t, repo.items)
	})

	t.Run("清空购物车只清本人", func(t *testing.T) {
		uc, repo := newTestUseCase()
		require.NoError(t, uc.AddItem(ctx, 1, 10, 2))
		require.NoError(t, uc.AddItem(ctx, 2, 20, 1))

		require.NoError(t, uc.Clear(ctx, 1))

		items1, _ := repo.FindByUserID(ctx, 1)
		items2, _ := repo.FindByUserID(ctx, 2)
		assert.Empty(t, items1)
		assert.Len(t, items2, 1)
	})
}

func TestCartUseCase_GetCart(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCase()

	require.NoError(t, uc.AddItem(ctx, 1, 10, 2)) // 1000分 x2
	require.NoError(t, uc.AddItem(ctx, 1, 20, 1)) // 折扣价300分 x1

	t.Run("按当前售价实时计算", func(t *testing.T) {
		view, err := uc.GetCart(ctx, 1)
		require.NoError(t, err)
		require.Len(t, view.Items, 2)
		assert.Equal(t, int64(2300), view.TotalAmount, "折扣价应参与小计")
	})

	t.Run("下架商品标记为不可用且不计入总额", func(t *testing.T) {
		// 直接塞入一条指向下架商品的条目(模拟加购后商品被下架)
		item, err := cart.NewItem(1, 30, 1)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, item))

		view, err := uc.GetCart(ctx, 1)
		require.NoError(t, err)
		require.Len(t, view.Items, 3)

		assert.Equal(t, int64(2300), view.TotalAmount, "不可用条目不计入总额")
		for _, iv := range view.Items {
			if iv.ProductID == 30 {
				assert.False(t, iv.Available)
			}
		}
	})
}
