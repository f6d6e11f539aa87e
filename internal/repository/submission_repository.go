package repository

import (
	"school_survey_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// SubmissionFilter 公开查询的全部可选条件。零值字段不参与过滤，
// 所有给定条件按AND收窄，generalSearch内部为OR。
type SubmissionFilter struct {
	GeneralSearch string

	Province   string
	City       string
	District   string
	Grade      string
	SchoolName string // 子串匹配

	IsRemedial  string // "是"/"否"，"all"或空表示不过滤
	FeeRequired string // "true"/"false"，空表示不过滤

	StartDateFrom *time.Time // remedial_start_date >=
	EndDateTo     *time.Time // remedial_end_date <=

	WeeklyClassDaysMin  *float64
	WeeklyClassDaysMax  *float64
	WeeklyTotalHoursMin *float64
	WeeklyTotalHoursMax *float64
	MonthlyHolidayMin   *int
	MonthlyHolidayMax   *int
	FeeAmountMin        *float64
	FeeAmountMax        *float64

	SchoolViolations []string // 与记录的违规项有交集即命中
	OtherViolations  string   // 子串匹配
}

// generalSearch覆盖的文本列，与旧版前端约定保持一致
var generalSearchColumns = []string{
	"province", "city", "district", "school_name",
	"consent_form", "other_violations", "safety_word",
}

// scopes 将每个给定条件折叠为一个独立谓词，顺序固定
func (f *SubmissionFilter) scopes() []func(*gorm.DB) *gorm.DB {
	var preds []func(*gorm.DB) *gorm.DB

	add := func(p func(*gorm.DB) *gorm.DB) {
		preds = append(preds, p)
	}

	if f.GeneralSearch != "" {
		pattern := "%" + f.GeneralSearch + "%"
		add(func(db *gorm.DB) *gorm.DB {
			cond := db.Session(&gorm.Session{NewDB: true})
			or := cond.Where(generalSearchColumns[0]+" LIKE ?", pattern)
			for _, col := range generalSearchColumns[1:] {
				or = or.Or(col+" LIKE ?", pattern)
			}
			return db.Where(or)
		})
	}

	exact := map[string]string{
		"province": f.Province,
		"city":     f.City,
		"district": f.District,
		"grade":    f.Grade,
	}
	for _, col := range []string{"province", "city", "district", "grade"} {
		if v := exact[col]; v != "" {
			col := col
			v := v
			add(func(db *gorm.DB) *gorm.DB { return db.Where(col+" = ?", v) })
		}
	}

	if f.SchoolName != "" {
		pattern := "%" + f.SchoolName + "%"
		add(func(db *gorm.DB) *gorm.DB { return db.Where("school_name LIKE ?", pattern) })
	}

	if f.IsRemedial != "" && f.IsRemedial != "all" {
		val := f.IsRemedial == "是"
		add(func(db *gorm.DB) *gorm.DB { return db.Where("is_remedial = ?", val) })
	}

	if f.FeeRequired != "" {
		val := f.FeeRequired == "true"
		add(func(db *gorm.DB) *gorm.DB { return db.Where("fee_required = ?", val) })
	}

	if f.StartDateFrom != nil {
		add(func(db *gorm.DB) *gorm.DB { return db.Where("remedial_start_date >= ?", *f.StartDateFrom) })
	}
	if f.EndDateTo != nil {
		add(func(db *gorm.DB) *gorm.DB { return db.Where("remedial_end_date <= ?", *f.EndDateTo) })
	}

	ranges := []struct {
		col string
		min *float64
		max *float64
	}{
		{"weekly_class_days", f.WeeklyClassDaysMin, f.WeeklyClassDaysMax},
		{"weekly_total_hours", f.WeeklyTotalHoursMin, f.WeeklyTotalHoursMax},
		{"fee_amount", f.FeeAmountMin, f.FeeAmountMax},
	}
	for _, r := range ranges {
		r := r
		if r.min != nil {
			add(func(db *gorm.DB) *gorm.DB { return db.Where(r.col+" >= ?", *r.min) })
		}
		if r.max != nil {
			add(func(db *gorm.DB) *gorm.DB { return db.Where(r.col+" <= ?", *r.max) })
		}
	}
	if f.MonthlyHolidayMin != nil {
		add(func(db *gorm.DB) *gorm.DB { return db.Where("monthly_holiday_days >= ?", *f.MonthlyHolidayMin) })
	}
	if f.MonthlyHolidayMax != nil {
		add(func(db *gorm.DB) *gorm.DB { return db.Where("monthly_holiday_days <= ?", *f.MonthlyHolidayMax) })
	}

	if len(f.SchoolViolations) > 0 {
		// 违规项存为JSON数组文本，按JSON编码后的子串匹配，任一命中即可
		tags := f.SchoolViolations
		add(func(db *gorm.DB) *gorm.DB {
			cond := db.Session(&gorm.Session{NewDB: true})
			or := cond.Where("school_violations LIKE ?", `%"`+tags[0]+`"%`)
			for _, tag := range tags[1:] {
				or = or.Or("school_violations LIKE ?", `%"`+tag+`"%`)
			}
			return db.Where(or)
		})
	}

	if f.OtherViolations != "" {
		pattern := "%" + f.OtherViolations + "%"
		add(func(db *gorm.DB) *gorm.DB { return db.Where("other_violations LIKE ?", pattern) })
	}

	return preds
}

func (r *SubmissionRepository) Create(sub *model.Submission) error {
	return r.DB.Create(sub).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.First(&sub, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// SearchApproved 公开查询：只返回已通过审核的记录，按创建时间倒序分页
func (r *SubmissionRepository) SearchApproved(f *SubmissionFilter, page, pageSize int) ([]model.Submission, int64, error) {
	query := r.DB.Model(&model.Submission{}).
		Scopes(f.scopes()...).
		Where("status = ?", model.StatusApproved)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Submission
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// ListByStatus 审核后台列表，status为空表示全部，按更新时间倒序
func (r *SubmissionRepository) ListByStatus(status model.SubmissionStatus, page, pageSize int) ([]model.Submission, int64, error) {
	query := r.DB.Model(&model.Submission{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Submission
	offset := (page - 1) * pageSize
	err := query.Order("updated_at DESC").Offset(offset).Limit(pageSize).Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// UpdateStatusIf 条件更新：仅当记录仍处于from状态时写入，返回影响行数。
// 两个审核员并发操作同一条记录时，后到的一方影响0行。
func (r *SubmissionRepository) UpdateStatusIf(id string, from, to model.SubmissionStatus, reviewer, comment string) (int64, error) {
	res := r.DB.Model(&model.Submission{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":         to,
			"approved_by":    reviewer,
			"review_comment": comment,
			"updated_at":     time.Now(),
		})
	return res.RowsAffected, res.Error
}

// submissionContentColumns 编辑接口允许覆盖的列；审核字段和来源信息不在其中
var submissionContentColumns = []string{
	"province", "city", "district", "school_name", "grade",
	"is_remedial", "remedial_start_date", "remedial_end_date",
	"weekly_class_days", "weekly_total_hours", "monthly_holiday_days",
	"consent_form", "fee_required", "fee_amount", "cooling_measures",
	"school_violations", "other_violations", "safety_word",
}

// UpdateContent 整体覆盖内容字段（含null），最后写入者胜
func (r *SubmissionRepository) UpdateContent(sub *model.Submission) error {
	return r.DB.Model(&model.Submission{UUIDBase: model.UUIDBase{ID: sub.ID}}).
		Select(submissionContentColumns).
		Updates(sub).Error
}
