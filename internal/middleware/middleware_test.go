package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/eduvillage-api/internal/models"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/response"
)

type stubValidator map[string]*models.JWTClaims

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

var tokens = stubValidator{
	"student-ana": {UserID: 1, Role: models.RoleStudent, Email: "ana@x.io"},
	"teacher-7":   {UserID: 7, Role: models.RoleTeacher, Email: "tom@x.io"},
}

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func ok(c *gin.Context) { response.OK(c, nil) }

func TestJWTRequiresToken(t *testing.T) {
	r := gin.New()
	r.GET("/p", JWT(tokens), ok)

	assert.Equal(t, http.StatusUnauthorized, perform(r, "/p", "").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "/p", "forged").Code)
	assert.Equal(t, http.StatusOK, perform(r, "/p", "student-ana").Code)
}

func TestOptionalJWTNeverBlocks(t *testing.T) {
	r := gin.New()
	var seen *models.JWTClaims
	r.GET("/p", OptionalJWT(tokens), func(c *gin.Context) {
		seen = ClaimsFromContext(c)
		ok(c)
	})

	assert.Equal(t, http.StatusOK, perform(r, "/p", "forged").Code)
	assert.Nil(t, seen)
	assert.Equal(t, http.StatusOK, perform(r, "/p", "teacher-7").Code)
	if assert.NotNil(t, seen) {
		assert.Equal(t, models.ID(7), seen.UserID)
	}
}

func TestRBACRoleAndSelf(t *testing.T) {
	r := gin.New()
	r.GET("/student/courses/:email", JWT(tokens), RBAC(string(models.RoleStudent), Self), ok)
	r.GET("/courses/teacher/:teacherId", JWT(tokens), RBAC(string(models.RoleTeacher), Self), ok)

	assert.Equal(t, http.StatusOK, perform(r, "/student/courses/ANA@x.io", "student-ana").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, "/student/courses/bob@x.io", "student-ana").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, "/student/courses/ana@x.io", "teacher-7").Code)

	assert.Equal(t, http.StatusOK, perform(r, "/courses/teacher/7", "teacher-7").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, "/courses/teacher/8", "teacher-7").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, "/courses/teacher/7", "student-ana").Code)
}

func TestWhenAuthenticatedSkipsAnonymous(t *testing.T) {
	r := gin.New()
	r.GET("/student/courses/:email", OptionalJWT(tokens), WhenAuthenticated(RBAC(string(models.RoleStudent), Self)), ok)

	assert.Equal(t, http.StatusOK, perform(r, "/student/courses/bob@x.io", "").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, "/student/courses/bob@x.io", "student-ana").Code)
}

func TestSetCacheHitReachesEnvelope(t *testing.T) {
	r := gin.New()
	r.GET("/p", func(c *gin.Context) {
		SetCacheHit(c, true)
		ok(c)
	})

	rec := perform(r, "/p", "")
	assert.JSONEq(t, `{"success":true,"meta":{"cache_hit":true}}`, rec.Body.String())
}

func TestAuditSkipsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	r.POST("/ok", OptionalJWT(tokens), Audit(logger, "course.create"), ok)
	r.POST("/conflict", Audit(logger, "course.create"), func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrConflict, "Course already exists"))
	})

	req := httptest.NewRequest(http.MethodPost, "/ok", nil)
	req.Header.Set("Authorization", "Bearer teacher-7")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/conflict", nil))

	entries := logs.FilterMessage("audit").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "course.create", fields["action"])
		assert.Equal(t, "TEACHER", fields["role"])
		assert.Equal(t, "7", fields["subject"])
	}
}

func TestMetricsToleratesNilService(t *testing.T) {
	r := gin.New()
	r.GET("/p", Metrics(nil), ok)
	assert.Equal(t, http.StatusOK, perform(r, "/p", "").Code)
}
