package service

import (
	"fmt"
	"io"
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/repository"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportService 后台导出，审核员拿全量数据做线下汇总用
type ExportService struct {
	repo *repository.SubmissionRepository
}

func NewExportService(repo *repository.SubmissionRepository) *ExportService {
	return &ExportService{repo: repo}
}

// 导出分批拉取，避免一次性加载全表
const exportBatchSize = 500

var exportHeaders = []string{
	"ID", "提交时间", "状态", "省份", "城市", "区县", "学校", "年级",
	"是否补课", "开始日期", "结束日期", "每周天数", "每周课时", "每月假期",
	"同意书", "是否收费", "金额", "防暑措施", "违规项", "其他违规",
	"安全词", "审核人", "审核备注",
}

// ExportSubmissions 将指定状态（空为全部）的提交写成xlsx
func (s *ExportService) ExportSubmissions(w io.Writer, status model.SubmissionStatus) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for page := 1; ; page++ {
		subs, _, err := s.repo.ListByStatus(status, page, exportBatchSize)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			break
		}

		for _, sub := range subs {
			values := submissionRow(&sub)
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		if len(subs) < exportBatchSize {
			break
		}
	}

	return f.Write(w)
}

func submissionRow(sub *model.Submission) []interface{} {
	return []interface{}{
		sub.ID,
		sub.CreatedAt.Format(time.DateTime),
		string(sub.Status),
		strOrEmpty(sub.Province),
		strOrEmpty(sub.City),
		strOrEmpty(sub.District),
		strOrEmpty(sub.SchoolName),
		strOrEmpty(sub.Grade),
		yesNo(sub.IsRemedial),
		dateOrEmpty(sub.RemedialStartDate),
		dateOrEmpty(sub.RemedialEndDate),
		floatOrEmpty(sub.WeeklyClassDays),
		floatOrEmpty(sub.WeeklyTotalHours),
		intOrEmpty(sub.MonthlyHolidayDays),
		strOrEmpty(sub.ConsentForm),
		yesNo(sub.FeeRequired),
		floatOrEmpty(sub.FeeAmount),
		strOrEmpty(sub.CoolingMeasures),
		strings.Join(sub.SchoolViolations, "；"),
		strOrEmpty(sub.OtherViolations),
		strOrEmpty(sub.SafetyWord),
		strOrEmpty(sub.ApprovedBy),
		strOrEmpty(sub.ReviewComment),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%g", *f)
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}
