package entities

import "time"

type ApplicationAnswers struct {
	Why        string `json:"why"`
	What       string `json:"what"`
	Experience string `json:"experience"`
}

// AmbassadorApplication is a student's request to become a campus ambassador.
type AmbassadorApplication struct {
	ID         string
	UserID     string
	Answers    ApplicationAnswers
	VideoURL   string
	Status     string
	AppliedAt  time.Time
	ReviewedAt time.Time
}
