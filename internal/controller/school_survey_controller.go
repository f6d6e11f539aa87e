package controller

import (
	"errors"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/service"
	"school_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SchoolSurveyController struct {
	service *service.SchoolSurveyService
}

func NewSchoolSurveyController(s *service.SchoolSurveyService) *SchoolSurveyController {
	return &SchoolSurveyController{service: s}
}

// Create godoc
// @Summary 提交在校作息问卷（旧版）
// @Tags 问卷
// @Accept json
// @Produce json
// @Param body body service.SchoolSurveyIntakeRequest true "问卷内容"
// @Success 201 {object} util.Response{data=model.SchoolSurvey}
// @Router /api/school-surveys [post]
func (c *SchoolSurveyController) Create(ctx *gin.Context) {
	var req service.SchoolSurveyIntakeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.service.CreateSurvey(&req, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, survey)
}

// PublicQuery godoc
// @Summary 查询已通过审核的作息问卷
// @Tags 问卷
// @Produce json
// @Param generalSearch query string false "全文检索"
// @Param province query string false "省份（精确）"
// @Param city query string false "城市（精确）"
// @Param district query string false "区县（精确）"
// @Param grade query string false "年级（精确）"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页条数" default(10)
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Router /api/school-surveys [get]
func (c *SchoolSurveyController) PublicQuery(ctx *gin.Context) {
	f := &repository.SchoolSurveyFilter{
		GeneralSearch: ctx.Query("generalSearch"),
		Province:      ctx.Query("province"),
		City:          ctx.Query("city"),
		District:      ctx.Query("district"),
		Grade:         ctx.Query("grade"),
	}
	page, pageSize := pageParams(ctx)

	surveys, total, err := c.service.PublicSearch(f, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"surveys": surveys,
		"pagination": service.Pagination{
			TotalCount:  total,
			TotalPages:  (total + int64(pageSize) - 1) / int64(pageSize),
			CurrentPage: page,
			PageSize:    pageSize,
		},
	})
}

// Dashboard godoc
// @Summary 后台按状态列出作息问卷
// @Tags 审核
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "pending/approved/rejected，空为全部"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页条数" default(10)
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Router /api/admin/school-surveys [get]
func (c *SchoolSurveyController) Dashboard(ctx *gin.Context) {
	status := ctx.Query("status")
	if status != "" && !model.ValidStatus(status) {
		util.BadRequest(ctx, util.ErrInvalidStatus.Error())
		return
	}
	page, pageSize := pageParams(ctx)

	surveys, total, err := c.service.ListForDashboard(model.SubmissionStatus(status), page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"data":  surveys,
		"total": total,
	})
}

// SurveyReviewRequest 旧版问卷的审核动作
// swagger:model SurveyReviewRequest
type SurveyReviewRequest struct {
	SurveyID uint   `json:"surveyId" binding:"required"`
	Status   string `json:"status" binding:"required"`
	Comment  string `json:"comment"`
}

// Review godoc
// @Summary 审核作息问卷
// @Tags 审核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SurveyReviewRequest true "审核动作"
// @Success 200 {object} util.Response{data=model.SchoolSurvey}
// @Failure 409 {object} util.Response
// @Router /api/admin/school-surveys/review [patch]
func (c *SchoolSurveyController) Review(ctx *gin.Context) {
	var req SurveyReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !model.ValidStatus(req.Status) {
		util.BadRequest(ctx, util.ErrInvalidStatus.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	survey, err := c.service.Review(ctx.Request.Context(), req.SurveyID, model.SubmissionStatus(req.Status), claims.Email, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrIllegalTransition):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, survey)
}

// Edit godoc
// @Summary 编辑作息问卷内容
// @Tags 审核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SchoolSurveyEditRequest true "编辑内容"
// @Success 200 {object} util.Response{data=model.SchoolSurvey}
// @Failure 404 {object} util.Response
// @Router /api/admin/school-surveys [patch]
func (c *SchoolSurveyController) Edit(ctx *gin.Context) {
	var req service.SchoolSurveyEditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.service.UpdateContent(&req)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}
