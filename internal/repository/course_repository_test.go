package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

func TestCourseCreatePostgres(t *testing.T) {
	db, mock, cleanup := newMockWithDriver(t, "postgres")
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO courses (course_name, teacher_id) VALUES ($1, $2) RETURNING id")).
		WithArgs("Math", models.ID(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	course := &models.Course{CourseName: "Math", TeacherID: 3}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.Equal(t, models.ID(7), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseCreateUnknownTeacher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Create(context.Background(), &models.Course{CourseName: "Math", TeacherID: 99})
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestCourseFindByName(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_name", "teacher_id"}).
		AddRow(1, "Math", 3).
		AddRow(2, "Math", 4)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_name, teacher_id FROM courses WHERE course_name = ? ORDER BY id")).
		WithArgs("Math").
		WillReturnRows(rows)

	courses, err := repo.FindByName(context.Background(), "Math")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, models.ID(4), courses[1].TeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseListEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_name, teacher_id FROM courses ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_name", "teacher_id"}))

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}
