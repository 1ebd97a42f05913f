package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== 内存假实现 ==========

type fakeProductRepo struct {
	byID   map[uint]*Product
	bySKU  map[string]*Product
	nextID uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		byID:   make(map[uint]*Product),
		bySKU:  make(map[string]*Product),
		nextID: 1,
	}
}

func (f *fakeProductRepo) Create(ctx context.Context, p *Product) error {
	p.ID = f.nextID
	f.nextID++
	f.byID[p.ID] = p
	f.bySKU[p.SKU] = p
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	p, ok := f.bySKU[sku]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *Product) error { return nil }

func (f *fakeProductRepo) Delete(ctx context.Context, id uint) error {
	p, ok := f.byID[id]
	if !ok {
		return ErrProductNotFound
	}
	delete(f.byID, id)
	delete(f.bySKU, p.SKU)
	return nil
}

func (f *fakeProductRepo) List(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	return nil, 0, nil
}

type fakeCategoryRepo struct {
	byID   map[uint]*Category
	nextID uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[uint]*Category), nextID: 1}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *Category) error {
	c.ID = f.nextID
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uint) (*Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *Category) error { return nil }
func (f *fakeCategoryRepo) Delete(ctx context.Context, id uint) error     { return nil }
func (f *fakeCategoryRepo) List(ctx context.Context) ([]*Category, error) { return nil, nil }

// ========== 测试用例 ==========

func TestService_PublishProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("正常发布", func(t *testing.T) {
		svc := NewService(newFakeProductRepo(), newFakeCategoryRepo())

		p, err := svc.PublishProduct(ctx, "TSHIRT-RED-M", "纯棉T恤", "描述", 3150, 0, "")
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.True(t, p.Active)
		assert.Equal(t, int64(3150), p.SellingPrice())
	})

	t.Run("SKU格式非法", func(t *testing.T) {
		svc := NewService(newFakeProductRepo(), newFakeCategoryRepo())

		for _, sku := range []string{"ab", "bad sku", "sku_with_underscore", ""} {
			_, err := svc.PublishProduct(ctx, sku, "商品", "", 100, 0, "")
			assert.ErrorIs(t, err, ErrInvalidSKU, "sku=%q", sku)
		}
	})

	t.Run("价格超出范围", func(t *testing.T) {
		svc := NewService(newFakeProductRepo(), newFakeCategoryRepo())

		_, err := svc.PublishProduct(ctx, "SKU-001", "商品", "", 0, 0, "")
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = svc.PublishProduct(ctx, "SKU-001", "商品", "", 100000000, 0, "")
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("SKU重复", func(t *testing.T) {
		svc := NewService(newFakeProductRepo(), newFakeCategoryRepo())

		_, err := svc.PublishProduct(ctx, "SKU-001", "商品A", "", 100, 0, "")
		require.NoError(t, err)

		_, err = svc.PublishProduct(ctx, "SKU-001", "商品B", "", 200, 0, "")
		assert.ErrorIs(t, err, ErrSKUDuplicate)
	})

	t.Run("分类不存在", func(t *testing.T) {
		svc := NewService(newFakeProductRepo(), newFakeCategoryRepo())

		_, err := svc.PublishProduct(ctx, "SKU-001", "商品", "", 100, 99, "")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("归属已存在的分类", func(t *testing.T) {
		productRepo := newFakeProductRepo()
		categoryRepo := newFakeCategoryRepo()
		svc := NewService(productRepo, categoryRepo)

		c, err := svc.CreateCategory(ctx, "服装", "", 0)
		require.NoError(t, err)

		p, err := svc.PublishProduct(ctx, "SKU-001", "商品", "", 100, c.ID, "")
		require.NoError(t, err)
		assert.Equal(t, c.ID, p.CategoryID)
	})
}

func TestService_UpdateProductPrice(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeProductRepo(), newFakeCategoryRepo())

	p, err := svc.PublishProduct(ctx, "SKU-001", "商品", "", 1000, 0, "")
	require.NoError(t, err)

	t.Run("设置折扣价后售价取折扣价", func(t *testing.T) {
		require.NoError(t, svc.UpdateProductPrice(ctx, p.ID, 1000, 800))
		assert.Equal(t, int64(800), p.SellingPrice())
	})

	t.Run("折扣价不能高于原价", func(t *testing.T) {
		err := svc.UpdateProductPrice(ctx, p.ID, 1000, 1200)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("商品不存在", func(t *testing.T) {
		err := svc.UpdateProductPrice(ctx, 999, 1000, 0)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_DeactivateProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeProductRepo(), newFakeCategoryRepo())

	p, err := svc.PublishProduct(ctx, "SKU-001", "商品", "", 1000, 0, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateProduct(ctx, p.ID))
	assert.False(t, p.Active)
}

func TestService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeProductRepo(), newFakeCategoryRepo())

	t.Run("父分类必须存在", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, "子分类", "", 99)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("支持父子结构", func(t *testing.T) {
		parent, err := svc.CreateCategory(ctx, "服装", "", 0)
		require.NoError(t, err)

		child, err := svc.CreateCategory(ctx, "T恤", "", parent.ID)
		require.NoError(t, err)
		assert.Equal(t, parent.ID, child.ParentID)
	})
}
