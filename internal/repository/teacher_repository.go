package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

// TeacherRepository provides database access for teacher accounts.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a new instance of TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherColumns = `id, name, email, password_hash, subject`

// FindByEmail returns a teacher by (already normalised) email.
func (r *TeacherRepository) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE email = ? LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, rebind(r.db, query), email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher by email: %w", err)
	}
	return &teacher, nil
}

// FindByID returns a teacher by identifier.
func (r *TeacherRepository) FindByID(ctx context.Context, id models.ID) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = ? LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, rebind(r.db, query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher by id: %w", err)
	}
	return &teacher, nil
}

// ExistsByEmail reports whether a teacher already uses the email.
func (r *TeacherRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, "check teacher email", `SELECT 1 FROM teachers WHERE email = ? LIMIT 1`, email)
}

// Create inserts a teacher. A taken email yields ErrDuplicate.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (name, email, password_hash, subject) VALUES (?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, "create teacher", query,
		teacher.Name, teacher.Email, teacher.PasswordHash, teacher.Subject)
	if err != nil {
		return err
	}
	teacher.ID = id
	return nil
}
