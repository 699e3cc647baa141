package dto

// RegisterStudentRequest is the payload of POST /student/register.
type RegisterStudentRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Education string `json:"education" validate:"required"`
	Field     string `json:"field" validate:"required"`
}

// RegisterTeacherRequest is the payload of POST /teacher/register.
type RegisterTeacherRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
}

// LoginRequest is shared by the student and teacher login endpoints.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
