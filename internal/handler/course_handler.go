package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/middleware"
	"github.com/noah-isme/eduvillage-api/internal/models"
	"github.com/noah-isme/eduvillage-api/pkg/response"
)

type courseService interface {
	AddCourse(ctx context.Context, actor *models.JWTClaims, req dto.AddCourseRequest) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, bool, error)
	ListCoursesByTeacher(ctx context.Context, teacherID models.ID) ([]models.Course, error)
	EnrollStudent(ctx context.Context, actor *models.JWTClaims, req dto.EnrollRequest) error
	ListCoursesForStudent(ctx context.Context, email string) ([]models.StudentCourse, error)
	ListStudentsForCourse(ctx context.Context, actor *models.JWTClaims, courseID models.ID) ([]models.RosterEntry, error)
}

// CourseHandler exposes course and enrollment endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(svc courseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// AddCourse godoc
// @Summary Create course
// @Description teacher_id defaults to the signed in teacher
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.AddCourseRequest true "Course"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /course/add [post]
func (h *CourseHandler) AddCourse(c *gin.Context) {
	var req dto.AddCourseRequest
	if !bindJSON(c, &req, "All fields required") {
		return
	}
	course, err := h.service.AddCourse(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Course added successfully", response.Payload{"course": course})
}

// ListCourses godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, hit, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.OK(c, response.Payload{"courses": courses})
}

// ListTeacherCourses godoc
// @Summary List courses of a teacher
// @Tags Courses
// @Produce json
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/teacher/{teacherId} [get]
func (h *CourseHandler) ListTeacherCourses(c *gin.Context) {
	teacherID, ok := idParam(c, "teacherId")
	if !ok {
		return
	}
	courses, err := h.service.ListCoursesByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Payload{"courses": courses})
}

// SelectCourse godoc
// @Summary Enroll a student into a course
// @Description course_id is only needed when several teachers use the same course name
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param payload body dto.EnrollRequest true "Enrollment"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/select-course [post]
func (h *CourseHandler) SelectCourse(c *gin.Context) {
	var req dto.EnrollRequest
	if !bindJSON(c, &req, "Missing data") {
		return
	}
	if err := h.service.EnrollStudent(c.Request.Context(), claimsFromContext(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// ListStudentCourses godoc
// @Summary List the courses a student is enrolled in
// @Tags Enrollment
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/courses/{email} [get]
func (h *CourseHandler) ListStudentCourses(c *gin.Context) {
	courses, err := h.service.ListCoursesForStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Payload{"courses": courses})
}

// ListCourseStudents godoc
// @Summary Course roster
// @Tags Enrollment
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/students/{courseId} [get]
func (h *CourseHandler) ListCourseStudents(c *gin.Context) {
	courseID, ok := idParam(c, "courseId")
	if !ok {
		return
	}
	students, err := h.service.ListStudentsForCourse(c.Request.Context(), claimsFromContext(c), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Payload{"students": students})
}
