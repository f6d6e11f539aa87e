package service

import (
	"context"
	"encoding/json"
	"errors"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/util"
	"school_survey_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type SubmissionService struct {
	repo  *repository.SubmissionRepository
	cache *QueryCache
}

func NewSubmissionService(repo *repository.SubmissionRepository, cache *QueryCache) *SubmissionService {
	return &SubmissionService{repo: repo, cache: cache}
}

// SubmissionIntakeRequest 公开表单提交体。数值与布尔全部按宽容策略收：
// 解析不出就存null，唯一会打回整个请求的是结束日期早于开始日期。
// swagger:model SubmissionIntakeRequest
type SubmissionIntakeRequest struct {
	Province           string           `json:"province"`
	City               string           `json:"city"`
	District           string           `json:"district"`
	SchoolName         string           `json:"schoolName"`
	Grade              string           `json:"grade"`
	IsRemedial         util.FlexString  `json:"isRemedial"`
	RemedialStartDate  string           `json:"remedialStartDate"`
	RemedialEndDate    string           `json:"remedialEndDate"`
	WeeklyClassDays    util.FlexString  `json:"weeklyClassDays"`
	MonthlyHolidayDays util.FlexString  `json:"monthlyHolidayDays"`
	WeeklyTotalHours   util.FlexString  `json:"weeklyTotalHours"`
	ConsentForm        string           `json:"consentForm"`
	FeeRequired        util.FlexString  `json:"feeRequired"`
	FeeAmount          util.FlexString  `json:"feeAmount"`
	CoolingMeasures    string           `json:"coolingMeasures"`
	SchoolViolations   []string         `json:"schoolViolations"`
	OtherViolations    string           `json:"otherViolations"`
	PHQ9               []model.PHQ9Item `json:"phq9"`
	SafetyWord         string           `json:"safetyWord"`
}

// CreateSubmission 落库一条新提交，初始状态一律pending
func (s *SubmissionService) CreateSubmission(req *SubmissionIntakeRequest, ip, userAgent string) (*model.Submission, error) {
	startDate := util.ParseDateOrNil(req.RemedialStartDate)
	endDate := util.ParseDateOrNil(req.RemedialEndDate)

	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		monitoring.SubmissionCounter.WithLabelValues("submission", "rejected_date_order").Inc()
		return nil, util.ErrDateOrder
	}

	violations := req.SchoolViolations
	if violations == nil {
		violations = []string{}
	}
	phq9 := req.PHQ9
	if phq9 == nil {
		phq9 = []model.PHQ9Item{}
	}

	sub := &model.Submission{
		Province:           util.NilIfEmpty(req.Province),
		City:               util.NilIfEmpty(req.City),
		District:           util.NilIfEmpty(req.District),
		SchoolName:         util.NilIfEmpty(req.SchoolName),
		Grade:              util.NilIfEmpty(req.Grade),
		IsRemedial:         util.ParseYesNo(req.IsRemedial.String()),
		RemedialStartDate:  startDate,
		RemedialEndDate:    endDate,
		WeeklyClassDays:    util.ParseFloatOrNil(req.WeeklyClassDays.String()),
		MonthlyHolidayDays: util.ParseIntOrNil(req.MonthlyHolidayDays.String()),
		WeeklyTotalHours:   util.ParseFloatOrNil(req.WeeklyTotalHours.String()),
		ConsentForm:        util.NilIfEmpty(req.ConsentForm),
		FeeRequired:        util.ParseYesNo(req.FeeRequired.String()),
		FeeAmount:          util.ParseFloatOrNil(req.FeeAmount.String()),
		CoolingMeasures:    util.NilIfEmpty(req.CoolingMeasures),
		SchoolViolations:   violations,
		OtherViolations:    util.NilIfEmpty(req.OtherViolations),
		PHQ9Data:           phq9,
		SafetyWord:         util.NilIfEmpty(req.SafetyWord),
		Status:             model.StatusPending,
		IP:                 util.NilIfEmpty(ip),
		UserAgent:          util.NilIfEmpty(userAgent),
	}

	if err := s.repo.Create(sub); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("submission", "store_error").Inc()
		return nil, err
	}
	monitoring.SubmissionCounter.WithLabelValues("submission", "created").Inc()
	return sub, nil
}

// Pagination 公开查询的分页元信息
type Pagination struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// PublicQueryResult 公开查询响应体
type PublicQueryResult struct {
	Submissions []model.Submission `json:"submissions"`
	Pagination  Pagination         `json:"pagination"`
}

// PublicSearch 审核通过的提交的过滤分页查询，叠一层短TTL缓存。
// canonical 是规范化后的原始查询串，作为缓存键来源。
func (s *SubmissionService) PublicSearch(ctx context.Context, canonical string, f *repository.SubmissionFilter, page, pageSize int) (*PublicQueryResult, error) {
	key := s.cache.Key(canonical)
	if payload, ok := s.cache.Get(ctx, key); ok {
		var cached PublicQueryResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	subs, total, err := s.repo.SearchApproved(f, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := &PublicQueryResult{
		Submissions: subs,
		Pagination: Pagination{
			TotalCount:  total,
			TotalPages:  (total + int64(pageSize) - 1) / int64(pageSize),
			CurrentPage: page,
			PageSize:    pageSize,
		},
	}

	if payload, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, key, payload)
	}
	return result, nil
}

func (s *SubmissionService) ListForDashboard(status model.SubmissionStatus, page, pageSize int) ([]model.Submission, int64, error) {
	return s.repo.ListByStatus(status, page, pageSize)
}

// Review 审核状态流转。pending→approved/rejected，rejected→pending，
// approved为终态；目标与当前一致时按幂等重放处理，不报错也不重复写。
func (s *SubmissionService) Review(ctx context.Context, id string, target model.SubmissionStatus, reviewer, comment string) (*model.Submission, error) {
	sub, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	if sub.Status == target {
		return sub, nil
	}

	if !sub.Status.CanTransition(target) {
		return nil, util.ErrIllegalTransition
	}

	rows, err := s.repo.UpdateStatusIf(id, sub.Status, target, reviewer, comment)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// 另一个审核员先一步改了状态
		return nil, util.ErrIllegalTransition
	}

	monitoring.ModerationCounter.WithLabelValues("submission", string(target)).Inc()
	s.cache.Flush(ctx)

	return s.repo.FindByID(id)
}

// SubmissionEditRequest 后台编辑体：整体覆盖内容字段，不触碰审核字段
// swagger:model SubmissionEditRequest
type SubmissionEditRequest struct {
	ID                 string           `json:"id" binding:"required"`
	Province           string           `json:"province"`
	City               string           `json:"city"`
	District           string           `json:"district"`
	SchoolName         string           `json:"schoolName"`
	Grade              string           `json:"grade"`
	IsRemedial         util.FlexString  `json:"isRemedial"`
	RemedialStartDate  string           `json:"remedialStartDate"`
	RemedialEndDate    string           `json:"remedialEndDate"`
	WeeklyClassDays    util.FlexString  `json:"weeklyClassDays"`
	MonthlyHolidayDays util.FlexString  `json:"monthlyHolidayDays"`
	WeeklyTotalHours   util.FlexString  `json:"weeklyTotalHours"`
	ConsentForm        string           `json:"consentForm"`
	FeeRequired        util.FlexString  `json:"feeRequired"`
	FeeAmount          util.FlexString  `json:"feeAmount"`
	CoolingMeasures    string           `json:"coolingMeasures"`
	SchoolViolations   []string         `json:"schoolViolations"`
	OtherViolations    string           `json:"otherViolations"`
	SafetyWord         string           `json:"safetyWord"`
}

// UpdateContent 后台编辑，最后写入者胜
func (s *SubmissionService) UpdateContent(ctx context.Context, req *SubmissionEditRequest) (*model.Submission, error) {
	if _, err := s.repo.FindByID(req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	violations := req.SchoolViolations
	if violations == nil {
		violations = []string{}
	}

	sub := &model.Submission{
		UUIDBase:           model.UUIDBase{ID: req.ID},
		Province:           util.NilIfEmpty(req.Province),
		City:               util.NilIfEmpty(req.City),
		District:           util.NilIfEmpty(req.District),
		SchoolName:         util.NilIfEmpty(req.SchoolName),
		Grade:              util.NilIfEmpty(req.Grade),
		IsRemedial:         util.ParseYesNo(req.IsRemedial.String()),
		RemedialStartDate:  util.ParseDateOrNil(req.RemedialStartDate),
		RemedialEndDate:    util.ParseDateOrNil(req.RemedialEndDate),
		WeeklyClassDays:    util.ParseFloatOrNil(req.WeeklyClassDays.String()),
		MonthlyHolidayDays: util.ParseIntOrNil(req.MonthlyHolidayDays.String()),
		WeeklyTotalHours:   util.ParseFloatOrNil(req.WeeklyTotalHours.String()),
		ConsentForm:        util.NilIfEmpty(req.ConsentForm),
		FeeRequired:        util.ParseYesNo(req.FeeRequired.String()),
		FeeAmount:          util.ParseFloatOrNil(req.FeeAmount.String()),
		CoolingMeasures:    util.NilIfEmpty(req.CoolingMeasures),
		SchoolViolations:   violations,
		OtherViolations:    util.NilIfEmpty(req.OtherViolations),
		SafetyWord:         util.NilIfEmpty(req.SafetyWord),
	}

	if err := s.repo.UpdateContent(sub); err != nil {
		return nil, err
	}

	s.cache.Flush(ctx)
	return s.repo.FindByID(req.ID)
}
