package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

// CourseRepository handles persistence of courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a course. A (course_name, teacher_id) collision yields ErrDuplicate
// and an unknown teacher yields ErrMissingReference.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (course_name, teacher_id) VALUES (?, ?)`
	id, err := insertReturningID(ctx, r.db, "create course", query, course.CourseName, course.TeacherID)
	if err != nil {
		return err
	}
	course.ID = id
	return nil
}

// ExistsForTeacher checks whether the teacher already owns a course with that name.
func (r *CourseRepository) ExistsForTeacher(ctx context.Context, courseName string, teacherID models.ID) (bool, error) {
	return exists(ctx, r.db, "check course", `SELECT 1 FROM courses WHERE course_name = ? AND teacher_id = ? LIMIT 1`, courseName, teacherID)
}

// FindByID returns a course by its ID.
func (r *CourseRepository) FindByID(ctx context.Context, id models.ID) (*models.Course, error) {
	const query = `SELECT id, course_name, teacher_id FROM courses WHERE id = ?`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, rebind(r.db, query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find course by id: %w", err)
	}
	return &course, nil
}

// FindByName returns every course carrying the name; names are only unique per teacher.
func (r *CourseRepository) FindByName(ctx context.Context, courseName string) ([]models.Course, error) {
	const query = `SELECT id, course_name, teacher_id FROM courses WHERE course_name = ? ORDER BY id`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, rebind(r.db, query), courseName); err != nil {
		return nil, fmt.Errorf("find courses by name: %w", err)
	}
	return courses, nil
}

// List returns all courses.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, course_name, teacher_id FROM courses ORDER BY id`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByTeacher returns the courses owned by a teacher.
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID models.ID) ([]models.Course, error) {
	const query = `SELECT id, course_name, teacher_id FROM courses WHERE teacher_id = ? ORDER BY id`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, rebind(r.db, query), teacherID); err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	return courses, nil
}
