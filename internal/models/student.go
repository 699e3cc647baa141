package models

// Student represents a row of the students table.
type Student struct {
	ID           ID     `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Education    string `db:"education" json:"education"`
	Field        string `db:"field" json:"field"`
}

// StudentProfile is the public part of a student returned on login.
type StudentProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RosterEntry is a student enrolled in a course as seen by its teacher.
type RosterEntry struct {
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
