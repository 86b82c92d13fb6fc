package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project represents a portfolio project stored in MongoDB
type Project struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProjectID           string             `json:"project_id" bson:"project_id"` // stable uuid exposed to clients
	UserID              uint               `json:"user_id" bson:"user_id"`
	Title               string             `json:"title" bson:"title"`
	Description         string             `json:"description,omitempty" bson:"description,omitempty"`
	ProjectPhoto        string             `json:"project_photo,omitempty" bson:"project_photo,omitempty"`
	StartedIn           *time.Time         `json:"started_in,omitempty" bson:"started_in,omitempty"`
	CompletedIn         *time.Time         `json:"completed_in,omitempty" bson:"completed_in,omitempty"`
	CurrentlyInProgress bool               `json:"currently_in_progress" bson:"currently_in_progress"`
	FileAttachment      string             `json:"file_attachment,omitempty" bson:"file_attachment,omitempty"`
	ProjectURL          string             `json:"project_url,omitempty" bson:"project_url,omitempty"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateProjectRequest defines the request body for adding a portfolio project
type CreateProjectRequest struct {
	Title               string `json:"title" validate:"required,min=1,max=150"`
	Description         string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ProjectPhoto        string `json:"project_photo,omitempty" validate:"omitempty,url"`
	StartedIn           string `json:"started_in,omitempty"`
	CompletedIn         string `json:"completed_in,omitempty"`
	CurrentlyInProgress bool   `json:"currently_in_progress"`
	FileAttachment      string `json:"file_attachment,omitempty" validate:"omitempty,url"`
	ProjectURL          string `json:"project_url,omitempty" validate:"omitempty,url"`
}

// UpdateProjectRequest defines the request body for updating a portfolio project
type UpdateProjectRequest struct {
	Title               *string `json:"title,omitempty" validate:"omitempty,min=1,max=150"`
	Description         *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ProjectPhoto        *string `json:"project_photo,omitempty" validate:"omitempty,url"`
	StartedIn           *string `json:"started_in,omitempty"`
	CompletedIn         *string `json:"completed_in,omitempty"`
	CurrentlyInProgress *bool   `json:"currently_in_progress,omitempty"`
	FileAttachment      *string `json:"file_attachment,omitempty" validate:"omitempty,url"`
	ProjectURL          *string `json:"project_url,omitempty" validate:"omitempty,url"`
}
