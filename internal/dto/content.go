package dto

import "github.com/noah-isme/eduvillage-api/internal/models"

// AddAssignmentRequest is the payload of POST /assignment/add.
type AddAssignmentRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	CourseID    models.ID `json:"course_id" validate:"required"`
	TeacherID   models.ID `json:"teacher_id"`
}

// AddNoteRequest is the payload of POST /notes.
type AddNoteRequest struct {
	TeacherID models.ID `json:"teacher_id" validate:"required"`
	CourseID  models.ID `json:"course_id" validate:"required"`
	Content   string    `json:"content" validate:"required"`
}
