package catalog

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/catalog"
)

// CategoryUseCase 分类管理用例
type CategoryUseCase struct {
	catalogService catalog.Service
}

// NewCategoryUseCase 创建分类管理用例
func NewCategoryUseCase(catalogService catalog.Service) *CategoryUseCase {
	return &CategoryUseCase{catalogService: catalogService}
}

// CategoryView 分类视图DTO
type CategoryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    uint   `json:"parent_id,omitempty"`
}

// Create 创建分类
func (uc *CategoryUseCase) Create(ctx context.Context, name, description string, parentID uint) (*CategoryView, error) {
	category, err := uc.catalogService.CreateCategory(ctx, name, description, parentID)
	if err != nil {
		return nil, err
	}
	return &CategoryView{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ParentID:    category.ParentID,
	}, nil
}

// List 查询全部分类
func (uc *CategoryUseCase) List(ctx context.Context) ([]*CategoryView, error) {
	categories, err := uc.catalogService.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, &CategoryView{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			ParentID:    category.ParentID,
		})
	}
	return views, nil
}
