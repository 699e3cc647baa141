package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

// AssignmentRepository handles persistence of assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts an assignment; a nil description is stored as NULL.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	const query = `INSERT INTO assignments (title, description, course_id) VALUES (?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, "create assignment", query, assignment.Title, assignment.Description, assignment.CourseID)
	if err != nil {
		return err
	}
	assignment.ID = id
	return nil
}

// ListByStudentEmail returns assignments of every course the student is enrolled in.
func (r *AssignmentRepository) ListByStudentEmail(ctx context.Context, email string) ([]models.AssignmentView, error) {
	const query = `SELECT a.title, a.description, c.course_name, t.name AS teacher_name
        FROM assignments a
        JOIN courses c ON a.course_id = c.id
        JOIN teachers t ON c.teacher_id = t.id
        JOIN student_courses sc ON sc.course_id = c.id
        JOIN students s ON sc.student_id = s.id
        WHERE s.email = ?
        ORDER BY a.id DESC`
	assignments := []models.AssignmentView{}
	if err := r.db.SelectContext(ctx, &assignments, rebind(r.db, query), email); err != nil {
		return nil, fmt.Errorf("list student assignments: %w", err)
	}
	return assignments, nil
}
