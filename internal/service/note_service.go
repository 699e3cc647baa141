package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/models"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/events"
)

type noteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	ListByStudentEmail(ctx context.Context, email string) ([]models.NoteView, error)
}

// NoteService handles course notes.
type NoteService struct {
	notes     noteRepository
	courses   courseFinder
	validator *validator.Validate
	events    events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewNoteService constructs a NoteService.
func NewNoteService(notes noteRepository, courses courseFinder, validate *validator.Validate, publisher events.Publisher, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &NoteService{
		notes:     notes,
		courses:   courses,
		validator: validate,
		events:    publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddNote publishes a note on a course owned by the teacher.
func (s *NoteService) AddNote(ctx context.Context, actor *models.JWTClaims, req dto.AddNoteRequest) (*models.Note, error) {
	req.Content = strings.TrimSpace(req.Content)
	if actor.IsTeacher() && req.TeacherID == 0 {
		req.TeacherID = actor.UserID
	}
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

	note := &models.Note{
		TeacherID: req.TeacherID,
		CourseID:  req.CourseID,
		Content:   req.Content,
		CreatedAt: s.now(),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, appErrors.Internal(err, "failed to create note")
	}

	publishEvent(ctx, s.events, s.logger, events.NoteCreated, note)
	return note, nil
}

// ListNotesForStudent returns notes of the student's courses, newest first.
func (s *NoteService) ListNotesForStudent(ctx context.Context, email string) ([]models.NoteView, error) {
	notes, err := s.notes.ListByStudentEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list notes")
	}
	return notes, nil
}
