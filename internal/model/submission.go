package model

import "time"

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// PHQ9Item PHQ-9量表单项：题目原文与选项文字（未作答为null）
type PHQ9Item struct {
	Question string  `json:"question"`
	Score    *string `json:"score"`
}

// Submission 暑期补课问卷提交记录
// swagger:model Submission
type Submission struct {
	UUIDBase
	Province   *string `gorm:"size:50;index;comment:省份" json:"province"`
	City       *string `gorm:"size:50;index;comment:城市" json:"city"`
	District   *string `gorm:"size:50;comment:区县" json:"district"`
	SchoolName *string `gorm:"size:255;comment:学校名称" json:"schoolName"`
	Grade      *string `gorm:"size:50;comment:年级" json:"grade"`

	// 补课情况
	IsRemedial         bool       `gorm:"default:false;comment:是否补课" json:"isRemedial"`
	RemedialStartDate  *time.Time `gorm:"comment:补课开始日期" json:"remedialStartDate"`
	RemedialEndDate    *time.Time `gorm:"comment:补课结束日期" json:"remedialEndDate"`
	WeeklyClassDays    *float64   `gorm:"comment:每周上课天数" json:"weeklyClassDays"`
	WeeklyTotalHours   *float64   `gorm:"comment:每周总课时数" json:"weeklyTotalHours"`
	MonthlyHolidayDays *int       `gorm:"comment:每月假期天数" json:"monthlyHolidayDays"`
	ConsentForm        *string    `gorm:"type:text;comment:同意书情况" json:"consentForm"`
	FeeRequired        bool       `gorm:"default:false;comment:是否收费" json:"feeRequired"`
	FeeAmount          *float64   `gorm:"comment:收费金额" json:"feeAmount"`
	CoolingMeasures    *string    `gorm:"type:text;comment:防暑降温措施" json:"coolingMeasures"`

	// 违规情况
	SchoolViolations []string `gorm:"serializer:json;type:text;comment:学校违规项" json:"schoolViolations"`
	OtherViolations  *string  `gorm:"type:text;comment:其他违规说明" json:"otherViolations"`

	// PHQ-9 筛查
	PHQ9Data []PHQ9Item `gorm:"serializer:json;type:text" json:"phq9Data"`

	SafetyWord *string `gorm:"size:255;comment:安全词" json:"safetyWord"`

	// 审核状态
	Status        SubmissionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ApprovedBy    *string          `gorm:"size:100;comment:审核人" json:"approvedBy"`
	ReviewComment *string          `gorm:"type:text;comment:审核备注" json:"reviewComment"`

	// 来源信息，写入后不再变更
	IP        *string `gorm:"size:64" json:"ip"`
	UserAgent *string `gorm:"size:512" json:"userAgent"`
}

func (Submission) TableName() string {
	return "submissions"
}

// CanTransition 审核状态机：pending可批可驳，rejected可重开，approved为终态。
// 目标与当前一致视为合法（幂等重放）。
func (s SubmissionStatus) CanTransition(target SubmissionStatus) bool {
	if s == target {
		return true
	}
	switch s {
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusRejected:
		return target == StatusPending
	default:
		return false
	}
}

// ValidStatus 校验枚举取值
func ValidStatus(s string) bool {
	switch SubmissionStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
