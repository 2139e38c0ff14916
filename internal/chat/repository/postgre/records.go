package postgre

import (
	"context"
	"fmt"

	"edupal/internal/model"
)

// GetAttendance returns a student's attendance rows, newest first.
func (r *Repository) GetAttendance(ctx context.Context, studentID string) ([]model.Attendance, error) {
	const q = `
		SELECT student_id, attendance_date, status, COALESCE(notes, '')
		FROM attendance
		WHERE student_id = $1
		ORDER BY attendance_date DESC`

	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.StudentID, &a.Date, &a.Status, &a.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetActivities returns a student's extracurricular activities.
func (r *Repository) GetActivities(ctx context.Context, studentID string) ([]model.Activity, error) {
	const q = `
		SELECT student_id, activity_name, COALESCE(badge, ''), COALESCE(description, '')
		FROM activities
		WHERE student_id = $1
		ORDER BY activity_name ASC`

	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var records []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.StudentID, &a.ActivityName, &a.Badge, &a.Description); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetBehaviour returns a student's behaviour reports, newest first.
func (r *Repository) GetBehaviour(ctx context.Context, studentID string) ([]model.Behaviour, error) {
	const q = `
		SELECT student_id, behaviour_type, sentiment_score, COALESCE(comment, ''), record_date
		FROM behavior_records
		WHERE student_id = $1
		ORDER BY record_date DESC`

	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query behaviour records: %w", err)
	}
	defer rows.Close()

	var records []model.Behaviour
	for rows.Next() {
		var b model.Behaviour
		if err := rows.Scan(&b.StudentID, &b.BehaviourType, &b.SentimentScore, &b.Comment, &b.Date); err != nil {
			return nil, fmt.Errorf("failed to scan behaviour record: %w", err)
		}
		records = append(records, b)
	}
	return records, rows.Err()
}

// GetGrades returns a student's academic records, newest first.
func (r *Repository) GetGrades(ctx context.Context, studentID string) ([]model.Grade, error) {
	const q = `
		SELECT student_id, subject, grade, record_date
		FROM academic_records
		WHERE student_id = $1
		ORDER BY record_date DESC`

	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query academic records: %w", err)
	}
	defer rows.Close()

	var records []model.Grade
	for rows.Next() {
		var g model.Grade
		if err := rows.Scan(&g.StudentID, &g.Subject, &g.Grade, &g.Date); err != nil {
			return nil, fmt.Errorf("failed to scan academic record: %w", err)
		}
		records = append(records, g)
	}
	return records, rows.Err()
}
