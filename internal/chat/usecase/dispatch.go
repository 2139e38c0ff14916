package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"edupal/internal/chat"
	"edupal/internal/model"
)

// fetchRecords maps a classified intent to its repository fetch and projects
// the rows into normalized records. An empty result is valid and distinct
// from a FetchError. general_question never reaches this function.
func (uc *implUseCase) fetchRecords(ctx context.Context, sc model.Scope, intent chat.Intent) ([]chat.NormalizedRecord, error) {
	switch intent {
	case chat.IntentAttendance:
		rows, err := uc.recordRepo.GetAttendance(ctx, sc.StudentID)
		if err != nil {
			return nil, &chat.FetchError{Intent: intent, Cause: err}
		}
		return projectAttendance(rows), nil

	case chat.IntentActivity:
		rows, err := uc.recordRepo.GetActivities(ctx, sc.StudentID)
		if err != nil {
			return nil, &chat.FetchError{Intent: intent, Cause: err}
		}
		return projectActivities(rows), nil

	case chat.IntentBehaviour:
		rows, err := uc.recordRepo.GetBehaviour(ctx, sc.StudentID)
		if err != nil {
			return nil, &chat.FetchError{Intent: intent, Cause: err}
		}
		return projectBehaviour(rows), nil

	case chat.IntentGrade:
		rows, err := uc.recordRepo.GetGrades(ctx, sc.StudentID)
		if err != nil {
			return nil, &chat.FetchError{Intent: intent, Cause: err}
		}
		return projectGrades(rows), nil

	default:
		return nil, &chat.FetchError{Intent: intent, Cause: fmt.Errorf("intent has no record source")}
	}
}

func projectAttendance(rows []model.Attendance) []chat.NormalizedRecord {
	records := make([]chat.NormalizedRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, chat.NormalizedRecord{Fields: []chat.Field{
			{Name: "date", Value: r.Date.Format(time.DateOnly)},
			{Name: "status", Value: r.Status},
			{Name: "notes", Value: r.Notes},
		}})
	}
	return records
}

func projectActivities(rows []model.Activity) []chat.NormalizedRecord {
	records := make([]chat.NormalizedRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, chat.NormalizedRecord{Fields: []chat.Field{
			{Name: "activity_name", Value: r.ActivityName},
			{Name: "badge", Value: r.Badge},
			{Name: "description", Value: r.Description},
		}})
	}
	return records
}

func projectBehaviour(rows []model.Behaviour) []chat.NormalizedRecord {
	records := make([]chat.NormalizedRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, chat.NormalizedRecord{Fields: []chat.Field{
			{Name: "behaviour_type", Value: r.BehaviourType},
			{Name: "sentiment_score", Value: strconv.FormatFloat(r.SentimentScore, 'f', 2, 64)},
			{Name: "comment", Value: r.Comment},
			{Name: "date", Value: r.Date.Format(time.DateOnly)},
		}})
	}
	return records
}

func projectGrades(rows []model.Grade) []chat.NormalizedRecord {
	records := make([]chat.NormalizedRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, chat.NormalizedRecord{Fields: []chat.Field{
			{Name: "subject", Value: r.Subject},
			{Name: "grade", Value: r.Grade},
			{Name: "date", Value: r.Date.Format(time.DateOnly)},
		}})
	}
	return records
}
