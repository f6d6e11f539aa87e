package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"school_survey_backend/internal/config"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/util"
	"school_survey_backend/pkg/logger"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func tokenFor(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	token, err := util.GenerateJWT(&model.User{
		BaseModel: model.BaseModel{ID: 1},
		Email:     "mod@example.com",
		Role:      role,
	}, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)
	return token
}

func setupProtectedRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	authed := r.Group("/", AuthMiddleware(cfg))
	authed.GET("/reviewer-only", RoleMiddleware(model.Reviewer), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	authed.GET("/admin-only", RoleMiddleware(model.Admin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func get(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejects(t *testing.T) {
	cfg := testConfig()
	r := setupProtectedRouter(cfg)

	// 无token
	w := get(r, "/reviewer-only", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 伪造token
	w = get(r, "/reviewer-only", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 密钥不匹配
	otherToken, err := util.GenerateJWT(&model.User{BaseModel: model.BaseModel{ID: 1}}, "another-secret", time.Hour)
	require.NoError(t, err)
	w = get(r, "/reviewer-only", otherToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 过期token
	expired, err := util.GenerateJWT(&model.User{BaseModel: model.BaseModel{ID: 1}}, cfg.JWT.Secret, -time.Hour)
	require.NoError(t, err)
	w = get(r, "/reviewer-only", expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	cfg := testConfig()
	r := setupProtectedRouter(cfg)

	// 导出下载之类的场景支持?token=
	w := get(r, "/reviewer-only?token="+tokenFor(t, cfg, model.Reviewer), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()
	r := setupProtectedRouter(cfg)

	reviewerToken := tokenFor(t, cfg, model.Reviewer)
	adminToken := tokenFor(t, cfg, model.Admin)

	w := get(r, "/reviewer-only", reviewerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// 审核员进不了管理员专属接口
	w = get(r, "/admin-only", reviewerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 管理员两边都能进
	w = get(r, "/admin-only", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	w = get(r, "/reviewer-only", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
