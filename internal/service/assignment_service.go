package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/models"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/events"
)

type assignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	ListByStudentEmail(ctx context.Context, email string) ([]models.AssignmentView, error)
}

// AssignmentService handles course assignments.
type AssignmentService struct {
	assignments assignmentRepository
	courses     courseFinder
	validator   *validator.Validate
	events      events.Publisher
	logger      *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(assignments assignmentRepository, courses courseFinder, validate *validator.Validate, publisher events.Publisher, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &AssignmentService{assignments: assignments, courses: courses, validator: validate, events: publisher, logger: logger}
}

// AddAssignment attaches an assignment to a course. The course must belong
// to the signed in teacher, or to teacher_id when one is supplied.
func (s *AssignmentService) AddAssignment(ctx context.Context, actor *models.JWTClaims, req dto.AddAssignmentRequest) (*models.Assignment, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgMissingData)
	}

	owner, err := resolveOwner(actor, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if _, err := loadOwnedCourse(ctx, s.courses, owner, req.CourseID); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{Title: req.Title, CourseID: req.CourseID}
	if description := strings.TrimSpace(req.Description); description != "" {
		assignment.Description = &description
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Internal(err, "failed to create assignment")
	}

	publishEvent(ctx, s.events, s.logger, events.AssignmentCreated, assignment)
	return assignment, nil
}

// ListAssignmentsForStudent returns the assignments of every course the student is enrolled in.
func (s *AssignmentService) ListAssignmentsForStudent(ctx context.Context, email string) ([]models.AssignmentView, error) {
	assignments, err := s.assignments.ListByStudentEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list assignments")
	}
	return assignments, nil
}

// resolveOwner picks the teacher a course must belong to. A signed in teacher
// always wins and a conflicting teacher_id is rejected. Zero means unchecked.
func resolveOwner(actor *models.JWTClaims, claimed models.ID) (models.ID, error) {
	if !actor.IsTeacher() {
		return claimed, nil
	}
	if claimed != 0 && claimed != actor.UserID {
		return 0, appErrors.Clone(appErrors.ErrForbidden, msgNotOwnTeacherID)
	}
	return actor.UserID, nil
}
