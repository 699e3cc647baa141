package dto

import "github.com/noah-isme/eduvillage-api/internal/models"

// AddCourseRequest is the payload of POST /course/add.
type AddCourseRequest struct {
	CourseName string    `json:"course_name" validate:"required"`
	TeacherID  models.ID `json:"teacher_id" validate:"required"`
}

// EnrollRequest is the payload of POST /student/select-course. CourseID is
// optional and picks one course when several teachers use the same name.
type EnrollRequest struct {
	StudentEmail string    `json:"student_email" validate:"required"`
	CourseName   string    `json:"course_name" validate:"required"`
	CourseID     models.ID `json:"course_id"`
}
