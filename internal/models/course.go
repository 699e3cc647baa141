package models

// Course is owned by exactly one teacher; (course_name, teacher_id) is unique.
type Course struct {
	ID         ID     `db:"id" json:"id"`
	CourseName string `db:"course_name" json:"course_name"`
	TeacherID  ID     `db:"teacher_id" json:"teacher_id"`
}

// StudentCourse is a course name as listed for an enrolled student.
type StudentCourse struct {
	CourseName string `db:"course_name" json:"course_name"`
}
