package service

import (
	"school_survey_backend/internal/config"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(setupTestDB(t)), cfg)
}

func TestCreateUserAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Name:     "reviewer",
		Email:    "reviewer@example.com",
		Password: "super-secret-pw",
		Role:     model.Reviewer,
	}
	require.NoError(t, svc.CreateUser(user))

	// 密码入库前已经过bcrypt
	assert.NotEqual(t, "super-secret-pw", user.Password)

	// 邮箱唯一
	err := svc.CreateUser(&model.User{
		Name:     "dup",
		Email:    "reviewer@example.com",
		Password: "whatever-pw",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	token, err := svc.Login("reviewer@example.com", "super-secret-pw")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Reviewer, claims.Role)
	assert.Equal(t, "reviewer@example.com", claims.Email)
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.CreateUser(&model.User{
		Name:     "reviewer",
		Email:    "reviewer@example.com",
		Password: "super-secret-pw",
	}))

	_, err := svc.Login("reviewer@example.com", "wrong-pw")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "super-secret-pw")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Name:     "reviewer",
		Email:    "reviewer@example.com",
		Password: "super-secret-pw",
	}
	require.NoError(t, svc.CreateUser(user))
	require.NoError(t, svc.UserRepo.DB.Model(user).Update("disabled", true).Error)

	_, err := svc.Login("reviewer@example.com", "super-secret-pw")
	assert.ErrorIs(t, err, util.ErrAccountDisabled)
}
