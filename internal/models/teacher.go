package models

// Teacher represents a row of the teachers table.
type Teacher struct {
	ID           ID     `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Subject      string `db:"subject" json:"subject"`
}

// TeacherProfile is the public part of a teacher returned on login.
type TeacherProfile struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
