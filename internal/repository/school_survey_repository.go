package repository

import (
	"school_survey_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SchoolSurveyRepository struct {
	DB *gorm.DB
}

func NewSchoolSurveyRepository(db *gorm.DB) *SchoolSurveyRepository {
	return &SchoolSurveyRepository{DB: db}
}

// SchoolSurveyFilter 旧版问卷的查询条件，字段集比暑期问卷小得多
type SchoolSurveyFilter struct {
	GeneralSearch string
	Province      string
	City          string
	District      string
	Grade         string
}

func (f *SchoolSurveyFilter) apply(db *gorm.DB) *gorm.DB {
	if f.GeneralSearch != "" {
		pattern := "%" + f.GeneralSearch + "%"
		db = db.Where(
			"province LIKE ? OR city LIKE ? OR district LIKE ? OR school_name LIKE ? OR student_comments LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	if f.Province != "" {
		db = db.Where("province = ?", f.Province)
	}
	if f.City != "" {
		db = db.Where("city = ?", f.City)
	}
	if f.District != "" {
		db = db.Where("district = ?", f.District)
	}
	if f.Grade != "" {
		db = db.Where("grade = ?", f.Grade)
	}
	return db
}

func (r *SchoolSurveyRepository) Create(survey *model.SchoolSurvey) error {
	return r.DB.Create(survey).Error
}

func (r *SchoolSurveyRepository) FindByID(id uint) (*model.SchoolSurvey, error) {
	var survey model.SchoolSurvey
	err := r.DB.First(&survey, id).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *SchoolSurveyRepository) SearchApproved(f *SchoolSurveyFilter, page, pageSize int) ([]model.SchoolSurvey, int64, error) {
	query := f.apply(r.DB.Model(&model.SchoolSurvey{})).
		Where("status = ?", model.StatusApproved)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var surveys []model.SchoolSurvey
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&surveys).Error
	if err != nil {
		return nil, 0, err
	}
	return surveys, total, nil
}

func (r *SchoolSurveyRepository) ListByStatus(status model.SubmissionStatus, page, pageSize int) ([]model.SchoolSurvey, int64, error) {
	query := r.DB.Model(&model.SchoolSurvey{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var surveys []model.SchoolSurvey
	offset := (page - 1) * pageSize
	err := query.Order("updated_at DESC").Offset(offset).Limit(pageSize).Find(&surveys).Error
	if err != nil {
		return nil, 0, err
	}
	return surveys, total, nil
}

func (r *SchoolSurveyRepository) UpdateStatusIf(id uint, from, to model.SubmissionStatus, reviewer, comment string) (int64, error) {
	res := r.DB.Model(&model.SchoolSurvey{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":         to,
			"approved_by":    reviewer,
			"review_comment": comment,
			"updated_at":     time.Now(),
		})
	return res.RowsAffected, res.Error
}

var schoolSurveyContentColumns = []string{
	"province", "city", "district", "school_name", "grade",
	"school_start_time", "school_end_time",
	"weekly_study_hours", "monthly_holidays", "suicide_cases",
	"student_comments", "safety_keyword",
}

func (r *SchoolSurveyRepository) UpdateContent(survey *model.SchoolSurvey) error {
	return r.DB.Model(&model.SchoolSurvey{BaseModel: model.BaseModel{ID: survey.ID}}).
		Select(schoolSurveyContentColumns).
		Updates(survey).Error
}
