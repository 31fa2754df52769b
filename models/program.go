package models

import "time"

type ProgramStats struct {
	TotalVolunteers     int `bson:"totalVolunteers" json:"totalVolunteers"`
	ActiveVolunteers    int `bson:"activeVolunteers" json:"activeVolunteers"`
	CompletedVolunteers int `bson:"completedVolunteers" json:"completedVolunteers"`
	Applicants          int `bson:"applicants" json:"applicants"`
}

type Coordinator struct {
	UserID string `bson:"userId" json:"userId"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
}

type Program struct {
	ID              string       `bson:"_id,omitempty" json:"id"`
	Title           string       `bson:"title" json:"title"`
	Category        string       `bson:"category" json:"category"`
	Description     string       `bson:"description" json:"description"`
	FullDescription string       `bson:"fullDescription" json:"fullDescription"`
	Location        string       `bson:"location" json:"location"`
	Duration        string       `bson:"duration" json:"duration"`
	Requirements    []string     `bson:"requirements" json:"requirements"`
	Image           string       `bson:"image" json:"image"`
	Stats           ProgramStats `bson:"stats" json:"stats"`
	Coordinator     Coordinator  `bson:"coordinator" json:"coordinator"`
	Status          string       `bson:"status" json:"status"`
	StartDate       time.Time    `bson:"startDate,omitempty" json:"startDate"`
	CreatedAt       time.Time    `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// ProgramCategories are the filters offered on the applications page. "all"
// disables filtering.
var ProgramCategories = []string{"all", "environment", "education", "social", "technology", "disaster", "animal"}

// Application lives in programs/{programId}/applications/{userId}.
type Application struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	ProgramID       string    `bson:"programId" json:"programId"`
	ProgramTitle    string    `bson:"programTitle" json:"programTitle"`
	ConsentAccepted bool      `bson:"consentAccepted" json:"consentAccepted"`
	Motivation      string    `bson:"motivation" json:"motivation"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}
