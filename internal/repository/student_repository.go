package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

// StudentRepository provides database access for student accounts.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new instance of StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByEmail returns a student by (already normalised) email.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	const query = `SELECT id, name, email, password_hash, education, field FROM students WHERE email = ? LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, rebind(r.db, query), email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student by email: %w", err)
	}
	return &student, nil
}

// ExistsByEmail reports whether a student already uses the email.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, "check student email", `SELECT 1 FROM students WHERE email = ? LIMIT 1`, email)
}

// Create inserts a student. A taken email yields ErrDuplicate.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (name, email, password_hash, education, field) VALUES (?, ?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, "create student", query,
		student.Name, student.Email, student.PasswordHash, student.Education, student.Field)
	if err != nil {
		return err
	}
	student.ID = id
	return nil
}
