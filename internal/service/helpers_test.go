package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/eduvillage-api/internal/models"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/password"
)

const testSecret = "test-secret"

type testServices struct {
	store       *memStore
	publisher   *recordingPublisher
	auth        *AuthService
	courses     *CourseService
	assignments *AssignmentService
	notes       *NoteService
	leaderboard *LeaderboardService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	store := newMemStore()
	publisher := &recordingPublisher{}
	hasher := password.NewHasher(bcrypt.MinCost)

	return &testServices{
		store:     store,
		publisher: publisher,
		auth: NewAuthService(store.studentRepo(), store.teacherRepo(), hasher, nil, publisher, nil, nil, AuthConfig{
			AccessTokenSecret: testSecret,
			AccessTokenExpiry: time.Hour,
			Issuer:            "eduvillage-test",
		}),
		courses:     NewCourseService(store.courseRepo(), store.enrollmentRepo(), store.studentRepo(), store.teacherRepo(), nil, time.Minute, nil, publisher, nil),
		assignments: NewAssignmentService(store.assignmentRepo(), store.courseRepo(), nil, publisher, nil),
		notes:       NewNoteService(store.noteRepo(), store.courseRepo(), nil, publisher, nil),
		leaderboard: NewLeaderboardService(store.resultRepo(), nil, time.Minute, nil),
	}
}

func teacherActor(id models.ID) *models.JWTClaims {
	return &models.JWTClaims{UserID: id, Role: models.RoleTeacher}
}

func studentActor(id models.ID, email string) *models.JWTClaims {
	return &models.JWTClaims{UserID: id, Role: models.RoleStudent, Email: email}
}

func assertAppError(t *testing.T, err error, kind *appErrors.Error, message string) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	assert.True(t, errors.Is(err, kind), "expected %s, got %v", kind.Code, err)
	if message != "" {
		assert.Equal(t, message, appErrors.FromError(err).Message)
	}
}
