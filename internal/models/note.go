package models

import "time"

// Note is course material authored by a teacher.
type Note struct {
	ID        ID        `db:"id" json:"id"`
	TeacherID ID        `db:"teacher_id" json:"teacher_id"`
	CourseID  ID        `db:"course_id" json:"course_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NoteView is a note as listed for an enrolled student.
type NoteView struct {
	Content     string    `db:"content" json:"content"`
	CourseName  string    `db:"course_name" json:"course_name"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
