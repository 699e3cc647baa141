package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/models"
	"github.com/noah-isme/eduvillage-api/internal/repository"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/events"
	"github.com/noah-isme/eduvillage-api/pkg/password"
)

type studentRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
}

type teacherRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Teacher, error)
	FindByID(ctx context.Context, id models.ID) (*models.Teacher, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
}

// AuthConfig defines configuration for issued session tokens.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// Messages reported by the credential store.
const (
	msgAllFieldsRequired  = "All fields required"
	msgMissingCredentials = "Missing credentials"
	msgStudentExists      = "Student already exists"
	msgTeacherExists      = "Teacher already exists"
	msgStudentNotFound    = "Student not found"
	msgTeacherNotFound    = "Teacher not found"
	msgInvalidPassword    = "Invalid password"
	msgPasswordTooLong    = "Password is too long"
)

// AuthService registers and authenticates students and teachers.
type AuthService struct {
	students  studentRepository
	teachers  teacherRepository
	hasher    *password.Hasher
	validator *validator.Validate
	events    events.Publisher
	metrics   *MetricsService
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students studentRepository, teachers teacherRepository, hasher *password.Hasher, validate *validator.Validate, publisher events.Publisher, metrics *MetricsService, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if hasher == nil {
		hasher = password.NewHasher(password.DefaultCost)
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 12 * time.Hour
	}
	return &AuthService{
		students:  students,
		teachers:  teachers,
		hasher:    hasher,
		validator: validate,
		events:    publisher,
		metrics:   metrics,
		logger:    logger,
		config:    config,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterStudent creates a student account.
func (s *AuthService) RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Education = strings.TrimSpace(req.Education)
	req.Field = strings.TrimSpace(req.Field)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgAllFieldsRequired)
	}

	taken, err := s.students.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return appErrors.Internal(err, "failed to check student email")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, msgStudentExists)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return err
	}

	student := &models.Student{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Education:    req.Education,
		Field:        req.Field,
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return appErrors.Clone(appErrors.ErrConflict, msgStudentExists)
		}
		return appErrors.Internal(err, "failed to create student")
	}

	s.metrics.RecordRegistration(string(models.RoleStudent))
	publishEvent(ctx, s.events, s.logger, events.StudentRegistered, map[string]interface{}{
		"id":    student.ID,
		"name":  student.Name,
		"email": student.Email,
	})
	return nil
}

// RegisterTeacher creates a teacher account.
func (s *AuthService) RegisterTeacher(ctx context.Context, req dto.RegisterTeacherRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgAllFieldsRequired)
	}

	taken, err := s.teachers.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return appErrors.Internal(err, "failed to check teacher email")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, msgTeacherExists)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return err
	}

	teacher := &models.Teacher{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Subject:      req.Subject,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return appErrors.Clone(appErrors.ErrConflict, msgTeacherExists)
		}
		return appErrors.Internal(err, "failed to create teacher")
	}

	s.metrics.RecordRegistration(string(models.RoleTeacher))
	publishEvent(ctx, s.events, s.logger, events.TeacherRegistered, map[string]interface{}{
		"id":      teacher.ID,
		"name":    teacher.Name,
		"email":   teacher.Email,
		"subject": teacher.Subject,
	})
	return nil
}

// AuthenticateStudent verifies student credentials and issues a session token.
func (s *AuthService) AuthenticateStudent(ctx context.Context, req dto.LoginRequest) (*models.StudentLogin, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgMissingCredentials)
	}

	role := string(models.RoleStudent)
	student, err := s.students.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordLogin(role, LoginUnknownUser)
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgStudentNotFound)
		}
		return nil, appErrors.Internal(err, "failed to fetch student")
	}

	if !s.hasher.Verify(req.Password, student.PasswordHash) {
		s.metrics.RecordLogin(role, LoginWrongPassword)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, msgInvalidPassword)
	}

	session, err := s.issueSession(student.ID, models.RoleStudent, student.Email, student.Name)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create access token")
	}

	s.metrics.RecordLogin(role, LoginSucceeded)
	return &models.StudentLogin{
		Student: models.StudentProfile{Name: student.Name, Email: student.Email},
		Session: session,
	}, nil
}

// AuthenticateTeacher verifies teacher credentials and issues a session token.
func (s *AuthService) AuthenticateTeacher(ctx context.Context, req dto.LoginRequest) (*models.TeacherLogin, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgMissingCredentials)
	}

	role := string(models.RoleTeacher)
	teacher, err := s.teachers.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordLogin(role, LoginUnknownUser)
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgTeacherNotFound)
		}
		return nil, appErrors.Internal(err, "failed to fetch teacher")
	}

	if !s.hasher.Verify(req.Password, teacher.PasswordHash) {
		s.metrics.RecordLogin(role, LoginWrongPassword)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, msgInvalidPassword)
	}

	session, err := s.issueSession(teacher.ID, models.RoleTeacher, teacher.Email, teacher.Name)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create access token")
	}

	s.metrics.RecordLogin(role, LoginSucceeded)
	return &models.TeacherLogin{
		Teacher: models.TeacherProfile{ID: teacher.ID, Name: teacher.Name, Email: teacher.Email},
		Session: session,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) hashPassword(plaintext string) (string, error) {
	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		if password.IsTooLong(err) {
			return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgPasswordTooLong)
		}
		return "", appErrors.Internal(err, "failed to hash password")
	}
	return hash, nil
}

func (s *AuthService) issueSession(id models.ID, role models.UserRole, email, name string) (models.Session, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.JWTClaims{
		UserID: id,
		Role:   role,
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: signed, ExpiresIn: int64(s.config.AccessTokenExpiry.Seconds())}, nil
}
