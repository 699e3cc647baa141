package models

// Enrollment links a student to a course (student_courses table).
type Enrollment struct {
	ID        ID `db:"id" json:"id"`
	StudentID ID `db:"student_id" json:"student_id"`
	CourseID  ID `db:"course_id" json:"course_id"`
}
