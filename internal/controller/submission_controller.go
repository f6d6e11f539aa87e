package controller

import (
	"errors"
	"net/http"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/service"
	"school_survey_backend/internal/util"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	service *service.SubmissionService
	export  *service.ExportService
}

func NewSubmissionController(s *service.SubmissionService, e *service.ExportService) *SubmissionController {
	return &SubmissionController{service: s, export: e}
}

// Create godoc
// @Summary 提交暑期补课问卷
// @Description 公开接口。数值与日期解析失败存null；仅当结束日期早于开始日期时拒绝
// @Tags 问卷
// @Accept json
// @Produce json
// @Param body body service.SubmissionIntakeRequest true "问卷内容"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response "结束日期不能早于开始日期"
// @Router /api/submissions [post]
func (c *SubmissionController) Create(ctx *gin.Context) {
	var req service.SubmissionIntakeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.service.CreateSubmission(&req, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		if errors.Is(err, util.ErrDateOrder) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, sub)
}

// PublicQuery godoc
// @Summary 查询已通过审核的问卷
// @Description 公开接口，仅返回approved记录。所有过滤条件按AND收窄；
// @Description generalSearch在固定文本列上做OR匹配；无法解析的数值边界视为不设界
// @Tags 问卷
// @Produce json
// @Param generalSearch query string false "全文检索"
// @Param province query string false "省份（精确）"
// @Param city query string false "城市（精确）"
// @Param district query string false "区县（精确）"
// @Param grade query string false "年级（精确）"
// @Param schoolName query string false "学校（子串）"
// @Param isRemedial query string false "是/否，all表示不过滤"
// @Param feeRequired query string false "true/false"
// @Param schoolViolations query string false "逗号分隔，任一命中"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页条数" default(10)
// @Success 200 {object} service.PublicQueryResult
// @Router /api/submissions [get]
func (c *SubmissionController) PublicQuery(ctx *gin.Context) {
	f := buildSubmissionFilter(ctx)
	page, pageSize := pageParams(ctx)

	result, err := c.service.PublicSearch(ctx.Request.Context(), ctx.Request.URL.RawQuery, f, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// 与历史前端约定的响应结构，不走统一envelope
	ctx.JSON(http.StatusOK, result)
}

// buildSubmissionFilter 把查询参数收进过滤器。空值、哨兵值("all")
// 和解析不出的数值边界都静默跳过，查询在该维度退化为不过滤。
func buildSubmissionFilter(ctx *gin.Context) *repository.SubmissionFilter {
	f := &repository.SubmissionFilter{
		GeneralSearch:   ctx.Query("generalSearch"),
		Province:        ctx.Query("province"),
		City:            ctx.Query("city"),
		District:        ctx.Query("district"),
		Grade:           ctx.Query("grade"),
		SchoolName:      ctx.Query("schoolName"),
		IsRemedial:      ctx.Query("isRemedial"),
		FeeRequired:     ctx.Query("feeRequired"),
		OtherViolations: ctx.Query("otherViolations"),
	}

	f.StartDateFrom = util.ParseDateOrNil(ctx.Query("remedialStartDate"))
	f.EndDateTo = util.ParseDateOrNil(ctx.Query("remedialEndDate"))

	f.WeeklyClassDaysMin = util.ParseFloatOrNil(ctx.Query("weeklyClassDaysMin"))
	f.WeeklyClassDaysMax = util.ParseFloatOrNil(ctx.Query("weeklyClassDaysMax"))
	f.WeeklyTotalHoursMin = util.ParseFloatOrNil(ctx.Query("weeklyTotalHoursMin"))
	f.WeeklyTotalHoursMax = util.ParseFloatOrNil(ctx.Query("weeklyTotalHoursMax"))
	f.MonthlyHolidayMin = util.ParseIntOrNil(ctx.Query("monthlyHolidayDaysMin"))
	f.MonthlyHolidayMax = util.ParseIntOrNil(ctx.Query("monthlyHolidayDaysMax"))
	f.FeeAmountMin = util.ParseFloatOrNil(ctx.Query("feeAmountMin"))
	f.FeeAmountMax = util.ParseFloatOrNil(ctx.Query("feeAmountMax"))

	if raw := ctx.Query("schoolViolations"); raw != "" {
		f.SchoolViolations = splitCSV(raw)
	}

	return f
}

// Dashboard godoc
// @Summary 后台按状态列出问卷
// @Tags 审核
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "pending/approved/rejected，空为全部"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页条数" default(10)
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Failure 401 {object} util.Response
// @Router /api/admin/submissions [get]
func (c *SubmissionController) Dashboard(ctx *gin.Context) {
	status := ctx.Query("status")
	if status != "" && !model.ValidStatus(status) {
		util.BadRequest(ctx, util.ErrInvalidStatus.Error())
		return
	}
	page, pageSize := pageParams(ctx)

	subs, total, err := c.service.ListForDashboard(model.SubmissionStatus(status), page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"data":  subs,
		"total": total,
	})
}

// ReviewRequest 审核动作
// swagger:model ReviewRequest
type ReviewRequest struct {
	SubmissionID string `json:"submissionId" binding:"required"`
	Status       string `json:"status" binding:"required"`
	Comment      string `json:"comment"`
}

// Review godoc
// @Summary 审核问卷
// @Description pending可批可驳，rejected可重开为pending，approved为终态。
// @Description 重复下发同一状态按幂等处理
// @Tags 审核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ReviewRequest true "审核动作"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response "无效的审核状态"
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "当前状态不允许该操作"
// @Router /api/admin/submissions/review [patch]
func (c *SubmissionController) Review(ctx *gin.Context) {
	var req ReviewRequest
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

	sub, err := c.service.Review(ctx.Request.Context(), req.SubmissionID, model.SubmissionStatus(req.Status), claims.Email, req.Comment)
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

	util.Success(ctx, sub)
}

// Edit godoc
// @Summary 编辑问卷内容
// @Description 整体覆盖内容字段，不改审核状态。无并发控制，最后写入者胜
// @Tags 审核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmissionEditRequest true "编辑内容"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response
// @Router /api/admin/submissions [patch]
func (c *SubmissionController) Edit(ctx *gin.Context) {
	var req service.SubmissionEditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.service.UpdateContent(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

// Export godoc
// @Summary 导出问卷为xlsx
// @Tags 审核
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param status query string false "pending/approved/rejected，空为全部"
// @Success 200 {file} binary
// @Router /api/admin/submissions/export [get]
func (c *SubmissionController) Export(ctx *gin.Context) {
	status := ctx.Query("status")
	if status != "" && !model.ValidStatus(status) {
		util.BadRequest(ctx, util.ErrInvalidStatus.Error())
		return
	}

	filename := "submissions-" + time.Now().Format("20060102-150405") + ".xlsx"
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := c.export.ExportSubmissions(ctx.Writer, model.SubmissionStatus(status)); err != nil {
		util.LogInternalError(ctx, err)
	}
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
