package user

import (
	"time"
)

// User 用户实体(聚合根)
// 设计说明:
// 1. 密码已加密存储(bcrypt),不提供暴露明文的方法
// 2. 领域实体不依赖GORM tag(infrastructure层的Repository实现时处理映射)
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateProfile 更新用户资料(领域行为)
func (u *User) UpdateProfile(nickname, phone string) {
	if nickname != "" {
		u.Nickname = nickname
	}
	if phone != "" {
		u.Phone = phone
	}
	u.UpdatedAt = time.Now()
}
