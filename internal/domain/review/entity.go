package review

import (
	"time"
)

// Review 商品评价实体
// 设计说明:
// 1. 评分取值1-5星
// 2. 每个用户对同一商品仅可评价一次(数据库唯一索引兜底)
// 3. 商品平均分通过查询聚合计算,不做冗余字段(评价量大时可加缓存)
type Review struct {
	ID        uint
	UserID    uint
	ProductID uint
	Rating    int    // 1-5星
	Comment   string // 评价内容(可为空)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview 创建评价(工厂方法)
func NewReview(userID, productID uint, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	now := time.Now()
	return &Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOwnedBy 判断评价是否属于指定用户
func (r *Review) IsOwnedBy(userID uint) bool {
	return r.UserID == userID
}
