package review

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/catalog"
	"github.com/xiebiao/ecommerce/internal/domain/review"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// ReviewUseCase 商品评价用例
type ReviewUseCase struct {
	reviewRepo  review.Repository
	productRepo catalog.ProductRepository
}

// NewReviewUseCase 创建评价用例
func NewReviewUseCase(reviewRepo review.Repository, productRepo catalog.ProductRepository) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// CreateReviewRequest 创建评价请求DTO
type CreateReviewRequest struct {
	UserID    uint
	ProductID uint
	Rating    int
	Comment   string
}

// ReviewView 评价视图DTO
type ReviewView struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	ProductID uint   `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ProductReviewsResponse 商品评价列表响应DTO
type ProductReviewsResponse struct {
	Reviews       []*ReviewView `json:"reviews"`
	Total         int64         `json:"total"`
	AverageRating float64       `json:"average_rating"`
}

// Create 创建评价
// 业务规则:商品必须存在;每个用户对同一商品仅可评价一次
func (uc *ReviewUseCase) Create(ctx context.Context, req CreateReviewRequest) (*ReviewView, error) {
	if _, err := uc.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	rv, err := review.NewReview(req.UserID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := uc.reviewRepo.Create(ctx, rv); err != nil {
		return nil, err
	}

	return toReviewView(rv), nil
}

// ListByProduct 查询商品评价列表(含平均分)
func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID uint, page, pageSize int) (*ProductReviewsResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reviews, total, err := uc.reviewRepo.ListByProductID(ctx, productID, page, pageSize)
	if err != nil {
		return nil, err
	}

	avg, err := uc.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	views := make([]*ReviewView, len(reviews))
	for i, rv := range reviews {
		views[i] = toReviewView(rv)
	}

	return &ProductReviewsResponse{
		Reviews:       views,
		Total:         total,
		AverageRating: avg,
	}, nil
}

// Delete 删除评价(只能删除自己的)
func (uc *ReviewUseCase) Delete(ctx context.Context, reviewID, userID uint) error {
	rv, err := uc.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !rv.IsOwnedBy(userID) {
		return apperrors.ErrForbidden
	}
	return uc.reviewRepo.Delete(ctx, reviewID)
}

func toReviewView(rv *review.Review) *ReviewView {
	return &ReviewView{
		ID:        rv.ID,
		UserID:    rv.UserID,
		ProductID: rv.ProductID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
