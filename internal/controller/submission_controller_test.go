package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/service"
	"school_survey_backend/internal/util"
	"school_survey_backend/pkg/logger"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Submission{}, &model.SchoolSurvey{}))
	return db
}

// fakeAuth 直接塞入解析好的claims，绕过JWT中间件
func fakeAuth(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 1, Role: role, Email: "mod@example.com"})
		c.Next()
	}
}

func setupSubmissionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repo := repository.NewSubmissionRepository(setupTestDB(t))
	svc := service.NewSubmissionService(repo, nil)
	ctrl := NewSubmissionController(svc, service.NewExportService(repo))

	r := gin.New()
	r.POST("/api/submissions", ctrl.Create)
	r.GET("/api/submissions", ctrl.PublicQuery)

	admin := r.Group("/api/admin", fakeAuth(model.Reviewer))
	admin.GET("/submissions", ctrl.Dashboard)
	admin.PATCH("/submissions", ctrl.Edit)
	admin.PATCH("/submissions/review", ctrl.Review)
	admin.GET("/submissions/export", ctrl.Export)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIntakeCreated(t *testing.T) {
	r := setupSubmissionRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submissions", `{
		"province": "湖南省",
		"schoolName": "第一中学",
		"isRemedial": "是",
		"weeklyClassDays": 6
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Code int              `json:"code"`
		Data model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, model.StatusPending, resp.Data.Status)
}

func TestIntakeBadDateOrder(t *testing.T) {
	r := setupSubmissionRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submissions", `{
		"remedialStartDate": "2025-08-20",
		"remedialEndDate": "2025-07-01"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "结束日期不能早于开始日期")
}

func TestIntakeToleratesMixedTypes(t *testing.T) {
	r := setupSubmissionRouter(t)

	// 数字、布尔、乱值混进数值字段都不应打回请求
	w := doJSON(t, r, http.MethodPost, "/api/submissions", `{
		"weeklyClassDays": "说不清",
		"feeRequired": false,
		"feeAmount": 1500,
		"monthlyHolidayDays": null
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPublicQueryShape(t *testing.T) {
	r := setupSubmissionRouter(t)

	// 一条approved，一条pending
	w := doJSON(t, r, http.MethodPost, "/api/submissions", `{"province":"湖南省"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/api/submissions", `{"province":"湖南省"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/admin/submissions/review",
		`{"submissionId":"`+created.Data.ID+`","status":"approved"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/submissions?province=湖南省", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result service.PublicQueryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.EqualValues(t, 1, result.Pagination.TotalCount)
	assert.Equal(t, 1, result.Pagination.CurrentPage)
	assert.Equal(t, 10, result.Pagination.PageSize)
	require.Len(t, result.Submissions, 1)
	assert.Equal(t, created.Data.ID, result.Submissions[0].ID)

}

func TestReviewConflictOnTerminalState(t *testing.T) {
	r := setupSubmissionRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submissions", `{}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPatch, "/api/admin/submissions/review",
		`{"submissionId":"`+created.Data.ID+`","status":"approved"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// approved是终态，回退pending报409
	w = doJSON(t, r, http.MethodPatch, "/api/admin/submissions/review",
		`{"submissionId":"`+created.Data.ID+`","status":"pending"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 重放同一状态幂等返回200
	w = doJSON(t, r, http.MethodPatch, "/api/admin/submissions/review",
		`{"submissionId":"`+created.Data.ID+`","status":"approved"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewValidation(t *testing.T) {
	r := setupSubmissionRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/submissions/review",
		`{"submissionId":"x","status":"deleted"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/admin/submissions/review",
		`{"submissionId":"no-such-id","status":"approved"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardEnvelope(t *testing.T) {
	r := setupSubmissionRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submissions", `{}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/submissions?status=pending", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Data  []model.Submission `json:"data"`
			Total int64              `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Data.Total)
	assert.Len(t, resp.Data.Data, 1)

	// 非法status打回
	w = doJSON(t, r, http.MethodGet, "/api/admin/submissions?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditEndpoint(t *testing.T) {
	r := setupSubmissionRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submissions", `{"schoolName":"第一中学"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPatch, "/api/admin/submissions",
		`{"id":"`+created.Data.ID+`","schoolName":"第一中学（更正）"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.SchoolName)
	assert.Equal(t, "第一中学（更正）", *resp.Data.SchoolName)

	w = doJSON(t, r, http.MethodPatch, "/api/admin/submissions",
		`{"id":"no-such-id"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	r := setupSubmissionRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submissions", `{"schoolName":"第一中学"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/submissions/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}
