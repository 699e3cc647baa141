package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/eduvillage-api/internal/handler"
	"github.com/noah-isme/eduvillage-api/internal/middleware"
	"github.com/noah-isme/eduvillage-api/internal/models"
	"github.com/noah-isme/eduvillage-api/internal/service"
	"github.com/noah-isme/eduvillage-api/pkg/config"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/eduvillage-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/eduvillage-api/pkg/middleware/requestid"
	"github.com/noah-isme/eduvillage-api/pkg/response"
)

// Options carries the cross-cutting dependencies of the HTTP surface.
type Options struct {
	Env          string
	StaticDir    string
	AuthRequired bool
	CORSOrigins  []string
	Logger       *zap.Logger
	Metrics      *service.MetricsService
	Tokens       middleware.TokenValidator
}

// Handlers groups the endpoint handlers.
type Handlers struct {
	Auth        *handler.AuthHandler
	Course      *handler.CourseHandler
	Content     *handler.ContentHandler
	Leaderboard *handler.LeaderboardHandler
	Metrics     *handler.MetricsHandler
}

var errRouteNotFound = appErrors.New("NOT_FOUND", http.StatusNotFound, "route not found")

// apiPrefixes never fall back to the single page app.
var apiPrefixes = []string{"/student/", "/teacher/", "/course", "/assignment", "/notes", "/leaderboard"}

// New builds the gin engine with every route registered.
func New(opts Options, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.CORSOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/", h.Metrics.Root)
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authn := middleware.OptionalJWT(opts.Tokens)
	guard := func(allowed ...string) gin.HandlerFunc {
		return middleware.WhenAuthenticated(middleware.RBAC(allowed...))
	}
	if opts.AuthRequired {
		authn = middleware.JWT(opts.Tokens)
		guard = middleware.RBAC
	}
	teacher := string(models.RoleTeacher)
	student := string(models.RoleStudent)
	audit := func(action string) gin.HandlerFunc {
		return middleware.Audit(opts.Logger, action)
	}

	r.POST("/student/register", audit("student.register"), h.Auth.RegisterStudent)
	r.POST("/student/login", h.Auth.LoginStudent)
	r.POST("/teacher/register", audit("teacher.register"), h.Auth.RegisterTeacher)
	r.POST("/teacher/login", h.Auth.LoginTeacher)

	r.GET("/courses", h.Course.ListCourses)
	r.GET("/leaderboard/:courseId", h.Leaderboard.Get)
	r.GET("/leaderboard/:courseId/export", h.Leaderboard.Export)

	secured := r.Group("/", authn)
	{
		secured.POST("/course/add", guard(teacher), audit("course.create"), h.Course.AddCourse)
		secured.GET("/courses/teacher/:teacherId", guard(teacher, middleware.Self), h.Course.ListTeacherCourses)
		secured.GET("/teacher/students/:courseId", guard(teacher), h.Course.ListCourseStudents)

		secured.POST("/student/select-course", guard(student), audit("enrollment.create"), h.Course.SelectCourse)
		secured.GET("/student/courses/:email", guard(student, middleware.Self), h.Course.ListStudentCourses)

		secured.POST("/assignment/add", guard(teacher), audit("assignment.create"), h.Content.AddAssignment)
		secured.GET("/assignments/student/:email", guard(student, middleware.Self), h.Content.ListStudentAssignments)

		secured.POST("/notes", guard(teacher), audit("note.create"), h.Content.AddNote)
		secured.GET("/notes/student/:email", guard(student, middleware.Self), h.Content.ListStudentNotes)
	}

	r.NoRoute(spaFallback(opts.StaticDir))
	return r
}

// spaFallback serves files of the browser client and index.html for any other
// GET, so client side routes survive a reload.
func spaFallback(staticDir string) gin.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")
	return func(c *gin.Context) {
		method := c.Request.Method
		if (method != http.MethodGet && method != http.MethodHead) || isAPIPath(c.Request.URL.Path) || staticDir == "" {
			response.Error(c, errRouteNotFound)
			return
		}

		clean := path.Clean("/" + c.Request.URL.Path)
		if clean != "/" {
			asset := filepath.Join(staticDir, filepath.FromSlash(clean))
			if info, err := os.Stat(asset); err == nil && !info.IsDir() {
				c.File(asset)
				return
			}
		}
		if _, err := os.Stat(index); err != nil {
			response.Error(c, errRouteNotFound)
			return
		}
		c.File(index)
	}
}

func isAPIPath(p string) bool {
	for _, prefix := range apiPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
