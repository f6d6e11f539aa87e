package model

// SchoolSurvey 早期的在校作息问卷，与暑期问卷并行保留
// swagger:model SchoolSurvey
type SchoolSurvey struct {
	BaseModel
	Province        string `gorm:"size:50;index" json:"province"`
	City            string `gorm:"size:50;index" json:"city"`
	District        string `gorm:"size:50" json:"district"`
	SchoolName      string `gorm:"size:255" json:"schoolName"`
	Grade           string `gorm:"size:50" json:"grade"`
	SchoolStartTime string `gorm:"size:10;comment:到校时间 HH:MM" json:"schoolStartTime"`
	SchoolEndTime   string `gorm:"size:10;comment:放学时间 HH:MM" json:"schoolEndTime"`

	WeeklyStudyHours *int `gorm:"comment:每周在校学习小时数" json:"weeklyStudyHours"`
	MonthlyHolidays  *int `gorm:"comment:每月放假天数" json:"monthlyHolidays"`
	SuicideCases     *int `gorm:"comment:已知自杀案例数" json:"suicideCases"`

	StudentComments string  `gorm:"type:text;comment:学生留言" json:"studentComments"`
	SafetyKeyword   *string `gorm:"size:255;comment:安全词" json:"safetyKeyword"`

	Status        SubmissionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ApprovedBy    *string          `gorm:"size:100" json:"approvedBy"`
	ReviewComment *string          `gorm:"type:text" json:"reviewComment"`

	// 来源信息
	IP         *string `gorm:"size:64" json:"ip"`
	UserAgent  *string `gorm:"size:512" json:"userAgent"`
	MouseTrack string  `gorm:"type:text;comment:鼠标轨迹，用于人机识别" json:"-"`
}

func (SchoolSurvey) TableName() string {
	return "school_surveys"
}
