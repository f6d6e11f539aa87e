package repository

import (
	"school_survey_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSchoolSurvey(t *testing.T, repo *SchoolSurveyRepository, mutate func(*model.SchoolSurvey)) *model.SchoolSurvey {
	t.Helper()
	survey := &model.SchoolSurvey{
		Province:        "江苏省",
		City:            "南京市",
		District:        "鼓楼区",
		SchoolName:      "金陵中学",
		Grade:           "初三",
		SchoolStartTime: "07:20",
		SchoolEndTime:   "21:30",
		Status:          model.StatusApproved,
	}
	if mutate != nil {
		mutate(survey)
	}
	require.NoError(t, repo.Create(survey))
	return survey
}

func TestSchoolSurveySearchApproved(t *testing.T) {
	repo := NewSchoolSurveyRepository(setupTestDB(t))

	seedSchoolSurvey(t, repo, nil)
	seedSchoolSurvey(t, repo, func(s *model.SchoolSurvey) { s.Status = model.StatusPending })
	seedSchoolSurvey(t, repo, func(s *model.SchoolSurvey) { s.City = "苏州市" })

	surveys, total, err := repo.SearchApproved(&SchoolSurveyFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, surveys, 2)

	_, total, err = repo.SearchApproved(&SchoolSurveyFilter{City: "苏州市"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = repo.SearchApproved(&SchoolSurveyFilter{GeneralSearch: "金陵"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestSchoolSurveyUpdateStatusIf(t *testing.T) {
	repo := NewSchoolSurveyRepository(setupTestDB(t))

	survey := seedSchoolSurvey(t, repo, func(s *model.SchoolSurvey) { s.Status = model.StatusPending })

	rows, err := repo.UpdateStatusIf(survey.ID, model.StatusPending, model.StatusRejected, "mod@example.com", "信息不全")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = repo.UpdateStatusIf(survey.ID, model.StatusPending, model.StatusApproved, "mod@example.com", "")
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}
