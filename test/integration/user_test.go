package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserRegister 测试用户注册
func TestUserRegister(t *testing.T) {
	t.Run("正常注册", func(t *testing.T) {
		email := GenerateTestEmail("register")
		resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
			"email":    email,
			"password": "Test1234",
			"nickname": "新用户",
		}, "")

		assert.Equal(t, 0, resp.Code, "注册应该成功: %s", resp.Message)

		var data RegisterData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID)
		assert.Equal(t, email, data.Email)

		t.Logf("✓ 注册成功，用户ID: %d", data.ID)
	})

	t.Run("重复邮箱注册应失败", func(t *testing.T) {
		email := GenerateTestEmail("dup")
		req := map[string]string{
			"email":    email,
			"password": "Test1234",
			"nickname": "用户A",
		}

		resp := PostJSON(t, BaseURL+"/users/register", req, "")
		require.Equal(t, 0, resp.Code, "首次注册应该成功")

		resp = PostJSON(t, BaseURL+"/users/register", req, "")
		assert.NotEqual(t, 0, resp.Code, "重复邮箱应该失败")

		t.Logf("✓ 重复邮箱正确被拒绝: %s", resp.Message)
	})

	t.Run("弱密码应失败", func(t *testing.T) {
		for _, password := range []string{"short1", "allletters", "12345678"} {
			resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
				"email":    GenerateTestEmail("weak"),
				"password": password,
				"nickname": "用户",
			}, "")
			assert.NotEqual(t, 0, resp.Code, "密码 %q 应该被拒绝", password)
		}

		t.Logf("✓ 弱密码全部被拒绝")
	})
}

// TestUserLogin 测试登录与Token刷新
func TestUserLogin(t *testing.T) {
	email := GenerateTestEmail("login")
	resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
		"email":    email,
		"password": "Test1234",
		"nickname": "登录测试",
	}, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	t.Run("正常登录", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "Test1234",
		}, "")
		require.Equal(t, 0, resp.Code, "登录应该成功: %s", resp.Message)

		var data LoginData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.AccessToken)
		assert.NotEmpty(t, data.RefreshToken)

		t.Logf("✓ 登录成功")
	})

	t.Run("密码错误应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "Wrong1234",
		}, "")
		assert.NotEqual(t, 0, resp.Code, "密码错误应该失败")

		t.Logf("✓ 密码错误正确被拒绝: %s", resp.Message)
	})

	t.Run("刷新Token", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "Test1234",
		}, "")
		require.Equal(t, 0, resp.Code)

		var login LoginData
		require.NoError(t, json.Unmarshal(resp.Data, &login))

		resp = PostJSON(t, BaseURL+"/users/refresh", map[string]string{
			"refresh_token": login.RefreshToken,
		}, "")
		assert.Equal(t, 0, resp.Code, "刷新Token应该成功: %s", resp.Message)

		t.Logf("✓ Token刷新成功")
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "Test1234",
		}, "")
		require.Equal(t, 0, resp.Code)

		var login LoginData
		require.NoError(t, json.Unmarshal(resp.Data, &login))

		resp = PostJSON(t, BaseURL+"/users/logout", nil, login.AccessToken)
		require.Equal(t, 0, resp.Code, "登出应该成功: %s", resp.Message)

		resp = GetJSON(t, BaseURL+"/orders?page=1&page_size=10", login.AccessToken)
		assert.NotEqual(t, 0, resp.Code, "登出后的Token应该失效")

		t.Logf("✓ 登出后Token正确失效")
	})
}
