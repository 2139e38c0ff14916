package model

// Environment identifies the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the authenticated caller's identity through the pipeline.
// StudentID is the student linked to the parent account by the external
// registration flow; every record fetch is bound to it.
type Scope struct {
	UserID    string
	StudentID string
	Language  string // preferred answer language (ISO 639-1), empty = English
}
