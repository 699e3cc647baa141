package models

// Assignment belongs to one course.
type Assignment struct {
	ID          ID      `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	CourseID    ID      `db:"course_id" json:"course_id"`
}

// AssignmentView is an assignment as listed for an enrolled student.
type AssignmentView struct {
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	CourseName  string  `db:"course_name" json:"course_name"`
	TeacherName string  `db:"teacher_name" json:"teacher_name"`
}
