package controller

import (
	"encoding/json"
	"net/http"
	"school_survey_backend/internal/config"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/service"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	svc := service.NewAuthService(repository.NewUserRepository(setupTestDB(t)), cfg)
	ctrl := NewAuthController(svc)

	r := gin.New()
	r.POST("/api/login", ctrl.Login)
	r.GET("/api/profile", fakeAuth(model.Reviewer), ctrl.GetProfile)
	r.POST("/api/admin/users", fakeAuth(model.Admin), ctrl.CreateUser)

	return r, svc
}

func TestLoginEndpoint(t *testing.T) {
	r, svc := setupAuthRouter(t)

	require.NoError(t, svc.CreateUser(&model.User{
		Name:     "reviewer",
		Email:    "reviewer@example.com",
		Password: "super-secret-pw",
		Role:     model.Reviewer,
	}))

	w := doJSON(t, r, http.MethodPost, "/api/login",
		`{"email":"reviewer@example.com","password":"super-secret-pw"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data["token"])

	// 凭证错误统一401
	w = doJSON(t, r, http.MethodPost, "/api/login",
		`{"email":"reviewer@example.com","password":"wrong-pw"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 缺字段400
	w = doJSON(t, r, http.MethodPost, "/api/login", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileEndpoint(t *testing.T) {
	r, svc := setupAuthRouter(t)

	require.NoError(t, svc.CreateUser(&model.User{
		Name:     "reviewer",
		Email:    "reviewer@example.com",
		Password: "super-secret-pw",
	}))

	w := doJSON(t, r, http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "reviewer@example.com", resp.Data.Email)
	// 密码散列不外泄
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCreateUserEndpoint(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/users",
		`{"name":"mod","email":"mod@example.com","password":"super-secret-pw","role":"reviewer"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// 邮箱重复409
	w = doJSON(t, r, http.MethodPost, "/api/admin/users",
		`{"name":"mod2","email":"mod@example.com","password":"super-secret-pw","role":"reviewer"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 角色只能是reviewer/admin
	w = doJSON(t, r, http.MethodPost, "/api/admin/users",
		`{"name":"mod3","email":"mod3@example.com","password":"super-secret-pw","role":"root"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 密码至少8位
	w = doJSON(t, r, http.MethodPost, "/api/admin/users",
		`{"name":"mod4","email":"mod4@example.com","password":"short","role":"reviewer"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegionsEndpoint(t *testing.T) {
	r := gin.New()
	r.GET("/api/regions", NewRegionController().GetRegions)

	w := doJSON(t, r, http.MethodGet, "/api/regions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]map[string][]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data)
}

func TestHealthEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := gin.New()
	r.GET("/api/health", NewHealthController(db).HealthCheck)

	w := doJSON(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
