package service

import (
	"context"
	"errors"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/util"
	"school_survey_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// SchoolSurveyService 旧版在校作息问卷。流程与暑期问卷一致，字段集更小，
// 公开查询量小到不值得过缓存。
type SchoolSurveyService struct {
	repo *repository.SchoolSurveyRepository
}

func NewSchoolSurveyService(repo *repository.SchoolSurveyRepository) *SchoolSurveyService {
	return &SchoolSurveyService{repo: repo}
}

// swagger:model SchoolSurveyIntakeRequest
type SchoolSurveyIntakeRequest struct {
	Province         string          `json:"province"`
	City             string          `json:"city"`
	District         string          `json:"district"`
	SchoolName       string          `json:"schoolName"`
	Grade            string          `json:"grade"`
	SchoolStartTime  string          `json:"schoolStartTime"`
	SchoolEndTime    string          `json:"schoolEndTime"`
	WeeklyStudyHours util.FlexString `json:"weeklyStudyHours"`
	MonthlyHolidays  util.FlexString `json:"monthlyHolidays"`
	SuicideCases     util.FlexString `json:"suicideCases"`
	StudentComments  string          `json:"studentComments"`
	SafetyKeyword    string          `json:"safetyKeyword"`
	MouseTrack       string          `json:"mouseTrack"`
}

func (s *SchoolSurveyService) CreateSurvey(req *SchoolSurveyIntakeRequest, ip, userAgent string) (*model.SchoolSurvey, error) {
	survey := &model.SchoolSurvey{
		Province:         req.Province,
		City:             req.City,
		District:         req.District,
		SchoolName:       req.SchoolName,
		Grade:            req.Grade,
		SchoolStartTime:  req.SchoolStartTime,
		SchoolEndTime:    req.SchoolEndTime,
		WeeklyStudyHours: util.ParseIntOrNil(req.WeeklyStudyHours.String()),
		MonthlyHolidays:  util.ParseIntOrNil(req.MonthlyHolidays.String()),
		SuicideCases:     util.ParseIntOrNil(req.SuicideCases.String()),
		StudentComments:  req.StudentComments,
		SafetyKeyword:    util.NilIfEmpty(req.SafetyKeyword),
		Status:           model.StatusPending,
		IP:               util.NilIfEmpty(ip),
		UserAgent:        util.NilIfEmpty(userAgent),
		MouseTrack:       req.MouseTrack,
	}

	if err := s.repo.Create(survey); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("school_survey", "store_error").Inc()
		return nil, err
	}
	monitoring.SubmissionCounter.WithLabelValues("school_survey", "created").Inc()
	return survey, nil
}

func (s *SchoolSurveyService) PublicSearch(f *repository.SchoolSurveyFilter, page, pageSize int) ([]model.SchoolSurvey, int64, error) {
	return s.repo.SearchApproved(f, page, pageSize)
}

func (s *SchoolSurveyService) ListForDashboard(status model.SubmissionStatus, page, pageSize int) ([]model.SchoolSurvey, int64, error) {
	return s.repo.ListByStatus(status, page, pageSize)
}

func (s *SchoolSurveyService) Review(ctx context.Context, id uint, target model.SubmissionStatus, reviewer, comment string) (*model.SchoolSurvey, error) {
	survey, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	if survey.Status == target {
		return survey, nil
	}

	if !survey.Status.CanTransition(target) {
		return nil, util.ErrIllegalTransition
	}

	rows, err := s.repo.UpdateStatusIf(id, survey.Status, target, reviewer, comment)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, util.ErrIllegalTransition
	}

	monitoring.ModerationCounter.WithLabelValues("school_survey", string(target)).Inc()
	return s.repo.FindByID(id)
}

// swagger:model SchoolSurveyEditRequest
type SchoolSurveyEditRequest struct {
	ID               uint            `json:"id" binding:"required"`
	Province         string          `json:"province"`
	City             string          `json:"city"`
	District         string          `json:"district"`
	SchoolName       string          `json:"schoolName"`
	Grade            string          `json:"grade"`
	SchoolStartTime  string          `json:"schoolStartTime"`
	SchoolEndTime    string          `json:"schoolEndTime"`
	WeeklyStudyHours util.FlexString `json:"weeklyStudyHours"`
	MonthlyHolidays  util.FlexString `json:"monthlyHolidays"`
	SuicideCases     util.FlexString `json:"suicideCases"`
	StudentComments  string          `json:"studentComments"`
	SafetyKeyword    string          `json:"safetyKeyword"`
}

func (s *SchoolSurveyService) UpdateContent(req *SchoolSurveyEditRequest) (*model.SchoolSurvey, error) {
	if _, err := s.repo.FindByID(req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	survey := &model.SchoolSurvey{
		BaseModel:        model.BaseModel{ID: req.ID},
		Province:         req.Province,
		City:             req.City,
		District:         req.District,
		SchoolName:       req.SchoolName,
		Grade:            req.Grade,
		SchoolStartTime:  req.SchoolStartTime,
		SchoolEndTime:    req.SchoolEndTime,
		WeeklyStudyHours: util.ParseIntOrNil(req.WeeklyStudyHours.String()),
		MonthlyHolidays:  util.ParseIntOrNil(req.MonthlyHolidays.String()),
		SuicideCases:     util.ParseIntOrNil(req.SuicideCases.String()),
		StudentComments:  req.StudentComments,
		SafetyKeyword:    util.NilIfEmpty(req.SafetyKeyword),
	}

	if err := s.repo.UpdateContent(survey); err != nil {
		return nil, err
	}
	return s.repo.FindByID(req.ID)
}
