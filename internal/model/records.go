package model

import "time"

// Attendance is one attendance row for a student.
type Attendance struct {
	StudentID string
	Date      time.Time
	Status    string
	Notes     string
}

// Activity is one extracurricular activity row for a student.
type Activity struct {
	StudentID    string
	ActivityName string
	Badge        string
	Description  string
}

// Behaviour is one behaviour report row for a student.
type Behaviour struct {
	StudentID      string
	BehaviourType  string
	SentimentScore float64
	Comment        string
	Date           time.Time
}

// Grade is one academic record row for a student.
type Grade struct {
	StudentID string
	Subject   string
	Grade     string
	Date      time.Time
}
