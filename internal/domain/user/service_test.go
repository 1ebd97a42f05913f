package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error { return nil }

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("正常注册", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		u, err := svc.Register(ctx, "alice@example.com", "Test1234", "爱丽丝")
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.NotEqual(t, "Test1234", u.Password, "密码应以bcrypt哈希存储")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Test1234")))
	})

	t.Run("邮箱格式非法", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		for _, email := range []string{"not-an-email", "missing@domain", "@example.com", ""} {
			_, err := svc.Register(ctx, email, "Test1234", "用户")
			assert.Error(t, err, "email=%q", email)
		}
	})

	t.Run("密码强度不足", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		cases := []string{
			"Short1",               // 不足8位
			"onlyletters",          // 没有数字
			"12345678",             // 没有字母
			"TooLongPassword123456", // 超过20位
		}
		for _, password := range cases {
			_, err := svc.Register(ctx, "bob@example.com", password, "用户")
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "password=%q", password)
		}
	})

	t.Run("昵称长度校验", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		_, err := svc.Register(ctx, "bob@example.com", "Test1234", "a")
		assert.Error(t, err)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		_, err := svc.Register(ctx, "dup@example.com", "Test1234", "用户A")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "dup@example.com", "Test1234", "用户B")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(ctx, "carol@example.com", "Test1234", "卡罗尔")
	require.NoError(t, err)

	t.Run("正常登录", func(t *testing.T) {
		u, err := svc.Login(ctx, "carol@example.com", "Test1234")
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "carol@example.com", "Wrong1234")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "Test1234")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
