package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/models"
	"github.com/noah-isme/eduvillage-api/internal/repository"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/events"
)

type courseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	ExistsForTeacher(ctx context.Context, courseName string, teacherID models.ID) (bool, error)
	FindByID(ctx context.Context, id models.ID) (*models.Course, error)
	FindByName(ctx context.Context, courseName string) ([]models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	ListByTeacher(ctx context.Context, teacherID models.ID) ([]models.Course, error)
}

type enrollmentRepository interface {
	Exists(ctx context.Context, studentID, courseID models.ID) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	ListCoursesByStudentEmail(ctx context.Context, email string) ([]models.StudentCourse, error)
	ListStudentsByCourse(ctx context.Context, courseID models.ID) ([]models.RosterEntry, error)
}

const (
	msgMissingData      = "Missing data"
	msgCourseExists     = "Course already exists"
	msgCourseNotFound   = "Course not found"
	msgCourseAmbiguous  = "Several courses share this name, course_id is required"
	msgAlreadyEnrolled  = "Already enrolled"
	msgNotCourseOwner   = "Course belongs to another teacher"
	msgNotOwnTeacherID  = "teacher_id does not match the signed in teacher"
	msgNotOwnEmail      = "student_email does not match the signed in student"
	msgCourseIDMismatch = "course_id does not match course_name"
)

// CourseService manages courses and enrollments.
type CourseService struct {
	courses     courseRepository
	enrollments enrollmentRepository
	students    studentRepository
	teachers    teacherRepository
	cache       *CacheService
	coursesTTL  time.Duration
	validator   *validator.Validate
	events      events.Publisher
	logger      *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(courses courseRepository, enrollments enrollmentRepository, students studentRepository, teachers teacherRepository, cache *CacheService, coursesTTL time.Duration, validate *validator.Validate, publisher events.Publisher, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CourseService{
		courses:     courses,
		enrollments: enrollments,
		students:    students,
		teachers:    teachers,
		cache:       cache,
		coursesTTL:  coursesTTL,
		validator:   validate,
		events:      publisher,
		logger:      logger,
	}
}

// AddCourse creates a course owned by the given teacher. When actor is a
// teacher, teacher_id defaults to and must equal the actor.
func (s *CourseService) AddCourse(ctx context.Context, actor *models.JWTClaims, req dto.AddCourseRequest) (*models.Course, error) {
	req.CourseName = strings.TrimSpace(req.CourseName)
	if actor.IsTeacher() {
		if req.TeacherID == 0 {
			req.TeacherID = actor.UserID
		}
		if req.TeacherID != actor.UserID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, msgNotOwnTeacherID)
		}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgAllFieldsRequired)
	}

	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgTeacherNotFound)
		}
		return nil, appErrors.Internal(err, "failed to fetch teacher")
	}

	taken, err := s.courses.ExistsForTeacher(ctx, req.CourseName, req.TeacherID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check course")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgCourseExists)
	}

	course := &models.Course{CourseName: req.CourseName, TeacherID: req.TeacherID}
	if err := s.courses.Create(ctx, course); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, msgCourseExists)
		case errors.Is(err, repository.ErrMissingReference):
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgTeacherNotFound)
		}
		return nil, appErrors.Internal(err, "failed to create course")
	}

	s.cache.Invalidate(ctx, coursesCacheKey)
	publishEvent(ctx, s.events, s.logger, events.CourseCreated, course)
	return course, nil
}

// ListCourses returns every course. The bool reports a cache hit.
func (s *CourseService) ListCourses(ctx context.Context) ([]models.Course, bool, error) {
	courses, hit, err := cached(ctx, s.cache, coursesCacheKey, s.coursesTTL, s.courses.List)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to list courses")
	}
	return courses, hit, nil
}

// ListCoursesByTeacher returns the courses a teacher owns.
func (s *CourseService) ListCoursesByTeacher(ctx context.Context, teacherID models.ID) ([]models.Course, error) {
	courses, err := s.courses.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list teacher courses")
	}
	return courses, nil
}

// EnrollStudent enrolls a student into a course identified by name, or by
// id when the name alone is ambiguous.
func (s *CourseService) EnrollStudent(ctx context.Context, actor *models.JWTClaims, req dto.EnrollRequest) error {
	req.StudentEmail = normalizeEmail(req.StudentEmail)
	req.CourseName = strings.TrimSpace(req.CourseName)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgMissingData)
	}
	if actor.IsStudent() && actor.Email != req.StudentEmail {
		return appErrors.Clone(appErrors.ErrForbidden, msgNotOwnEmail)
	}

	student, err := s.students.FindByEmail(ctx, req.StudentEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, msgStudentNotFound)
		}
		return appErrors.Internal(err, "failed to fetch student")
	}

	course, err := s.resolveCourse(ctx, req.CourseName, req.CourseID)
	if err != nil {
		return err
	}

	enrolled, err := s.enrollments.Exists(ctx, student.ID, course.ID)
	if err != nil {
		return appErrors.Internal(err, "failed to check enrollment")
	}
	if enrolled {
		return appErrors.Clone(appErrors.ErrConflict, msgAlreadyEnrolled)
	}

	enrollment := &models.Enrollment{StudentID: student.ID, CourseID: course.ID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return appErrors.Clone(appErrors.ErrConflict, msgAlreadyEnrolled)
		}
		return appErrors.Internal(err, "failed to enroll student")
	}

	publishEvent(ctx, s.events, s.logger, events.EnrollmentCreated, map[string]interface{}{
		"student_email": student.Email,
		"course_id":     course.ID,
		"course_name":   course.CourseName,
	})
	return nil
}

func (s *CourseService) resolveCourse(ctx context.Context, name string, id models.ID) (*models.Course, error) {
	matches, err := s.courses.FindByName(ctx, name)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to fetch course")
	}
	if id != 0 {
		for i := range matches {
			if matches[i].ID == id {
				return &matches[i], nil
			}
		}
		if len(matches) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgCourseNotFound)
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, msgCourseIDMismatch)
	}
	switch len(matches) {
	case 0:
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgCourseNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, msgCourseAmbiguous)
	}
}

// ListCoursesForStudent returns the names of the courses a student is enrolled in.
func (s *CourseService) ListCoursesForStudent(ctx context.Context, email string) ([]models.StudentCourse, error) {
	courses, err := s.enrollments.ListCoursesByStudentEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student courses")
	}
	return courses, nil
}

// ListStudentsForCourse returns a course roster. A teacher actor must own the course.
func (s *CourseService) ListStudentsForCourse(ctx context.Context, actor *models.JWTClaims, courseID models.ID) ([]models.RosterEntry, error) {
	if actor.IsTeacher() {
		if _, err := s.ownedCourse(ctx, actor.UserID, courseID); err != nil {
			return nil, err
		}
	}
	students, err := s.enrollments.ListStudentsByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list course students")
	}
	return students, nil
}

// ownedCourse loads a course and checks it belongs to teacherID.
func (s *CourseService) ownedCourse(ctx context.Context, teacherID, courseID models.ID) (*models.Course, error) {
	return loadOwnedCourse(ctx, s.courses, teacherID, courseID)
}

// loadOwnedCourse is shared by the services that write course content.
// A zero teacherID skips the ownership check.
func loadOwnedCourse(ctx context.Context, courses courseFinder, teacherID, courseID models.ID) (*models.Course, error) {
	course, err := courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgCourseNotFound)
		}
		return nil, appErrors.Internal(err, "failed to fetch course")
	}
	if teacherID != 0 && course.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, msgNotCourseOwner)
	}
	return course, nil
}

type courseFinder interface {
	FindByID(ctx context.Context, id models.ID) (*models.Course, error)
}
