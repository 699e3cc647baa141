package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

// EnrollmentRepository handles persistence of student_courses rows.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Exists checks whether the student is already enrolled in the course.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID models.ID) (bool, error) {
	return exists(ctx, r.db, "check enrollment", `SELECT 1 FROM student_courses WHERE student_id = ? AND course_id = ? LIMIT 1`, studentID, courseID)
}

// Create persists a new enrollment. A repeated pair yields ErrDuplicate.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO student_courses (student_id, course_id) VALUES (?, ?)`
	id, err := insertReturningID(ctx, r.db, "create enrollment", query, enrollment.StudentID, enrollment.CourseID)
	if err != nil {
		return err
	}
	enrollment.ID = id
	return nil
}

// ListCoursesByStudentEmail returns the names of the courses a student is enrolled in.
func (r *EnrollmentRepository) ListCoursesByStudentEmail(ctx context.Context, email string) ([]models.StudentCourse, error) {
	const query = `SELECT c.course_name
        FROM student_courses sc
        JOIN students s ON sc.student_id = s.id
        JOIN courses c ON sc.course_id = c.id
        WHERE s.email = ?
        ORDER BY c.course_name, c.id`
	courses := []models.StudentCourse{}
	if err := r.db.SelectContext(ctx, &courses, rebind(r.db, query), email); err != nil {
		return nil, fmt.Errorf("list student courses: %w", err)
	}
	return courses, nil
}

// ListStudentsByCourse returns the roster of a course.
func (r *EnrollmentRepository) ListStudentsByCourse(ctx context.Context, courseID models.ID) ([]models.RosterEntry, error) {
	const query = `SELECT s.name, s.email
        FROM student_courses sc
        JOIN students s ON sc.student_id = s.id
        WHERE sc.course_id = ?
        ORDER BY s.name, s.id`
	students := []models.RosterEntry{}
	if err := r.db.SelectContext(ctx, &students, rebind(r.db, query), courseID); err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	return students, nil
}
