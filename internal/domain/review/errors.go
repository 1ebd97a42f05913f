package review

import (
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// 商品评价领域错误定义
var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeNotFound, "评价不存在")

	// ErrInvalidRating 评分不合法
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须为1-5星")

	// ErrDuplicateReview 重复评价
	ErrDuplicateReview = apperrors.New(apperrors.ErrCodeDuplicateEntry, "您已评价过该商品")
)
