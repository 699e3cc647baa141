package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/models"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/events"
)

func studentSignup(email string) dto.RegisterStudentRequest {
	return dto.RegisterStudentRequest{Name: "Ana", Email: email, Password: "pw", Education: "BSc", Field: "CS"}
}

func TestRegisterStudentNormalisesInput(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	req := dto.RegisterStudentRequest{Name: "  Ana  ", Email: "  Ana@X.io ", Password: "pw", Education: " BSc ", Field: "CS"}
	require.NoError(t, svcs.auth.RegisterStudent(ctx, req))

	require.Len(t, svcs.store.students, 1)
	stored := svcs.store.students[0]
	assert.Equal(t, "Ana", stored.Name)
	assert.Equal(t, "ana@x.io", stored.Email)
	assert.Equal(t, "BSc", stored.Education)
	assert.NotEqual(t, "pw", stored.PasswordHash)
	assert.Equal(t, []string{events.StudentRegistered}, svcs.publisher.types())
}

func TestRegisterStudentRequiresAllFields(t *testing.T) {
	svcs := newTestServices(t)

	req := studentSignup("ana@x.io")
	req.Field = "   "
	err := svcs.auth.RegisterStudent(context.Background(), req)
	assertAppError(t, err, appErrors.ErrValidation, "All fields required")
	assert.Empty(t, svcs.store.students)
}

func TestRegisterStudentDuplicateEmail(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, svcs.auth.RegisterStudent(ctx, studentSignup("ana@x.io")))
	err := svcs.auth.RegisterStudent(ctx, studentSignup("ANA@x.io"))
	assertAppError(t, err, appErrors.ErrConflict, "Student already exists")
}

func TestRegisterStudentConstraintIsAuthoritative(t *testing.T) {
	svcs := newTestServices(t)
	svcs.store.skipPrecheck = true
	ctx := context.Background()

	require.NoError(t, svcs.auth.RegisterStudent(ctx, studentSignup("ana@x.io")))
	err := svcs.auth.RegisterStudent(ctx, studentSignup("ana@x.io"))
	assertAppError(t, err, appErrors.ErrConflict, "Student already exists")
	assert.Len(t, svcs.store.students, 1)
}

func TestRegisterStudentConcurrentDuplicates(t *testing.T) {
	svcs := newTestServices(t)
	svcs.store.skipPrecheck = true

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svcs.auth.RegisterStudent(context.Background(), studentSignup("race@x.io"))
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, appErrors.ErrConflict))
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, svcs.store.students, 1)
}

func TestRegisterStudentPasswordTooLong(t *testing.T) {
	svcs := newTestServices(t)

	req := studentSignup("ana@x.io")
	req.Password = strings.Repeat("x", 80)
	err := svcs.auth.RegisterStudent(context.Background(), req)
	assertAppError(t, err, appErrors.ErrValidation, "Password is too long")
}

func TestRegisterStudentStoreFailure(t *testing.T) {
	svcs := newTestServices(t)
	svcs.store.failWith = errors.New("connection refused")

	err := svcs.auth.RegisterStudent(context.Background(), studentSignup("ana@x.io"))
	require.Error(t, err)
	assert.True(t, appErrors.IsInternal(err))
}

func TestRegisterTeacherDuplicate(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	req := dto.RegisterTeacherRequest{Name: "Tom", Email: "t@x.com", Password: "pw", Subject: "Math"}

	require.NoError(t, svcs.auth.RegisterTeacher(ctx, req))
	err := svcs.auth.RegisterTeacher(ctx, req)
	assertAppError(t, err, appErrors.ErrConflict, "Teacher already exists")
}

func TestStudentEmailDoesNotCollideWithTeacher(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, svcs.auth.RegisterTeacher(ctx, dto.RegisterTeacherRequest{Name: "Sam", Email: "sam@x.io", Password: "pw", Subject: "Art"}))
	require.NoError(t, svcs.auth.RegisterStudent(ctx, studentSignup("sam@x.io")))
}

func TestAuthenticateStudent(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	require.NoError(t, svcs.auth.RegisterStudent(ctx, studentSignup("ana@x.io")))

	login, err := svcs.auth.AuthenticateStudent(ctx, dto.LoginRequest{Email: " ANA@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.StudentProfile{Name: "Ana", Email: "ana@x.io"}, login.Student)
	assert.Equal(t, int64(time.Hour.Seconds()), login.Session.ExpiresIn)

	claims, err := svcs.auth.ValidateToken(login.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "ana@x.io", claims.Email)
	assert.Equal(t, claims.UserID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthenticateStudentFailures(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	require.NoError(t, svcs.auth.RegisterStudent(ctx, studentSignup("ana@x.io")))

	_, err := svcs.auth.AuthenticateStudent(ctx, dto.LoginRequest{Email: "ana@x.io", Password: "nope"})
	assertAppError(t, err, appErrors.ErrInvalidCredentials, "Invalid password")

	_, err = svcs.auth.AuthenticateStudent(ctx, dto.LoginRequest{Email: "ghost@x.io", Password: "pw"})
	assertAppError(t, err, appErrors.ErrNotFound, "Student not found")

	_, err = svcs.auth.AuthenticateStudent(ctx, dto.LoginRequest{Email: "ana@x.io"})
	assertAppError(t, err, appErrors.ErrValidation, "Missing credentials")
}

func TestAuthenticateTeacherReturnsID(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	require.NoError(t, svcs.auth.RegisterTeacher(ctx, dto.RegisterTeacherRequest{Name: "Tom", Email: "t@x.com", Password: "pw", Subject: "Math"}))

	login, err := svcs.auth.AuthenticateTeacher(ctx, dto.LoginRequest{Email: "t@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotZero(t, login.Teacher.ID)
	assert.Equal(t, "Tom", login.Teacher.Name)

	claims, err := svcs.auth.ValidateToken(login.Session.Token)
	require.NoError(t, err)
	assert.True(t, claims.IsTeacher())
	assert.Equal(t, login.Teacher.ID, claims.UserID)
}

func TestValidateTokenRejectsForeignTokens(t *testing.T) {
	svcs := newTestServices(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID: 1,
		Role:   models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "eduvillage-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svcs.auth.ValidateToken(signed)
	assertAppError(t, err, appErrors.ErrUnauthorized, "")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID: 1,
		Role:   models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "eduvillage-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err = expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svcs.auth.ValidateToken(signed)
	assertAppError(t, err, appErrors.ErrUnauthorized, "")
}

func TestRegisterSurvivesPublisherFailure(t *testing.T) {
	svcs := newTestServices(t)
	svcs.publisher.failWith = errors.New("nats: no servers available")

	require.NoError(t, svcs.auth.RegisterStudent(context.Background(), studentSignup("ana@x.io")))
	assert.Len(t, svcs.store.students, 1)
}
