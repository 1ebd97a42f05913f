package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/ecommerce/internal/domain/address"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// addressRepository 收货地址仓储实现(MySQL)
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建收货地址仓储
func NewAddressRepository(db *gorm.DB) address.Repository {
	return &addressRepository{db: db}
}

// Create 创建地址
func (r *addressRepository) Create(ctx context.Context, a *address.Address) error {
	model := toAddressModel(a)

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建收货地址失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找地址
func (r *addressRepository) FindByID(ctx context.Context, id uint) (*address.Address, error) {
	var model AddressModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, address.ErrAddressNotFound
		}
		return nil, apperrors.Wrap(err, "查询收货地址失败")
	}

	return toAddressEntity(&model), nil
}

// FindByUserID 查询用户的地址列表(默认地址优先)
func (r *addressRepository) FindByUserID(ctx context.Context, userID uint) ([]*address.Address, error) {
	var models []AddressModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询收货地址失败")
	}

	addresses := make([]*address.Address, len(models))
	for i := range models {
		addresses[i] = toAddressEntity(&models[i])
	}
	return addresses, nil
}

// Update 更新地址
func (r *addressRepository) Update(ctx context.Context, a *address.Address) error {
	model := toAddressModel(a)
	model.ID = a.ID

	db := getDB(ctx, r.db)
	if err := db.Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新收货地址失败")
	}

	a.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除地址
func (r *addressRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&AddressModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除收货地址失败")
	}

	if result.RowsAffected == 0 {
		return address.ErrAddressNotFound
	}

	return nil
}

// ClearDefault 清除用户当前的默认地址标记
// 与SetDefault配合使用,须在同一事务内调用
func (r *addressRepository) ClearDefault(ctx context.Context, userID uint) error {
	db := getDB(ctx, r.db)
	err := db.Model(&AddressModel{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
	if err != nil {
		return apperrors.Wrap(err, "清除默认地址失败")
	}
	return nil
}

// toAddressModel 领域实体 → GORM模型
func toAddressModel(a *address.Address) *AddressModel {
	return &AddressModel{
		ID:        a.ID,
		UserID:    a.UserID,
		Receiver:  a.Receiver,
		Phone:     a.Phone,
		Province:  a.Province,
		City:      a.City,
		District:  a.District,
		Street:    a.Street,
		ZipCode:   a.ZipCode,
		IsDefault: a.IsDefault,
	}
}

// toAddressEntity GORM模型 → 领域实体
func toAddressEntity(model *AddressModel) *address.Address {
	return &address.Address{
		ID:        model.ID,
		UserID:    model.UserID,
		Receiver:  model.Receiver,
		Phone:     model.Phone,
		Province:  model.Province,
		City:      model.City,
		District:  model.District,
		Street:    model.Street,
		ZipCode:   model.ZipCode,
		IsDefault: model.IsDefault,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
