package controller

import (
	"encoding/json"
	"net/http"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/service"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSchoolSurveyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repo := repository.NewSchoolSurveyRepository(setupTestDB(t))
	ctrl := NewSchoolSurveyController(service.NewSchoolSurveyService(repo))

	r := gin.New()
	r.POST("/api/school-surveys", ctrl.Create)
	r.GET("/api/school-surveys", ctrl.PublicQuery)

	admin := r.Group("/api/admin", fakeAuth(model.Reviewer))
	admin.GET("/school-surveys", ctrl.Dashboard)
	admin.PATCH("/school-surveys", ctrl.Edit)
	admin.PATCH("/school-surveys/review", ctrl.Review)

	return r
}

func TestSchoolSurveyIntakeAndQuery(t *testing.T) {
	r := setupSchoolSurveyRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/school-surveys", `{
		"province": "江苏省",
		"city": "南京市",
		"schoolName": "金陵中学",
		"schoolStartTime": "07:20",
		"schoolEndTime": "21:30",
		"weeklyStudyHours": "70",
		"mouseTrack": "[[1,2],[3,4]]"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data model.SchoolSurvey `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, model.StatusPending, created.Data.Status)
	// 鼠标轨迹不随响应外泄
	assert.NotContains(t, w.Body.String(), "mouseTrack")

	// 未审核前公开查询不可见
	w = doJSON(t, r, http.MethodGet, "/api/school-surveys?province=江苏省", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Data struct {
			Surveys    []model.SchoolSurvey `json:"surveys"`
			Pagination service.Pagination   `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Data.Surveys)

	w = doJSON(t, r, http.MethodPatch, "/api/admin/school-surveys/review",
		`{"surveyId":`+strconv.Itoa(int(created.Data.ID))+`,"status":"approved"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/school-surveys?province=江苏省", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data.Surveys, 1)
	assert.EqualValues(t, 1, listed.Data.Pagination.TotalCount)
}

func TestSchoolSurveyReviewConflict(t *testing.T) {
	r := setupSchoolSurveyRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/school-surveys", `{"province":"江苏省"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data model.SchoolSurvey `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := strconv.Itoa(int(created.Data.ID))

	w = doJSON(t, r, http.MethodPatch, "/api/admin/school-surveys/review",
		`{"surveyId":`+id+`,"status":"approved"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/admin/school-surveys/review",
		`{"surveyId":`+id+`,"status":"rejected"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}
