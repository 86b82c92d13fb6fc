package models

import "time"

// Experience is a work-history entry on a user's profile
type Experience struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	UserID           uint       `json:"user_id" gorm:"index"`
	Position         string     `json:"position"`
	Organisation     string     `json:"organisation"`
	StartedIn        time.Time  `json:"started_in"`
	WorkedTill       *time.Time `json:"worked_till,omitempty"`
	CurrentlyWorking bool       `json:"currently_working"`
	Summary          string     `json:"summary"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Education is a study-history entry on a user's profile
type Education struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	UserID            uint       `json:"user_id" gorm:"index"`
	Degree            string     `json:"degree"`
	Stream            string     `json:"stream"`
	SchoolOrCollege   string     `json:"school_or_college"`
	StartedIn         time.Time  `json:"started_in"`
	StudiedTill       *time.Time `json:"studied_till,omitempty"`
	CurrentlyStudying bool       `json:"currently_studying"`
	Summary           string     `json:"summary"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type AddExperienceRequest struct {
	Position         string `json:"position" validate:"required,max=100"`
	Organisation     string `json:"organisation" validate:"required,max=100"`
	StartedIn        string `json:"started_in" validate:"required"`
	WorkedTill       string `json:"worked_till,omitempty"`
	CurrentlyWorking bool   `json:"currently_working"`
	Summary          string `json:"summary" validate:"max=2000"`
}

type UpdateExperienceRequest struct {
	Position         *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Organisation     *string `json:"organisation,omitempty" validate:"omitempty,max=100"`
	StartedIn        *string `json:"started_in,omitempty"`
	WorkedTill       *string `json:"worked_till,omitempty"`
	CurrentlyWorking *bool   `json:"currently_working,omitempty"`
	Summary          *string `json:"summary,omitempty" validate:"omitempty,max=2000"`
}

type AddEducationRequest struct {
	Degree            string `json:"degree" validate:"required,max=100"`
	Stream            string `json:"stream" validate:"required,max=100"`
	SchoolOrCollege   string `json:"school_or_college" validate:"required,max=150"`
	StartedIn         string `json:"started_in" validate:"required"`
	StudiedTill       string `json:"studied_till,omitempty"`
	CurrentlyStudying bool   `json:"currently_studying"`
	Summary           string `json:"summary" validate:"max=2000"`
}

type UpdateEducationRequest struct {
	Degree            *string `json:"degree,omitempty" validate:"omitempty,max=100"`
	Stream            *string `json:"stream,omitempty" validate:"omitempty,max=100"`
	SchoolOrCollege   *string `json:"school_or_college,omitempty" validate:"omitempty,max=150"`
	StartedIn         *string `json:"started_in,omitempty"`
	StudiedTill       *string `json:"studied_till,omitempty"`
	CurrentlyStudying *bool   `json:"currently_studying,omitempty"`
	Summary           *string `json:"summary,omitempty" validate:"omitempty,max=2000"`
}
