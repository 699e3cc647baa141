package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/models"
	"github.com/noah-isme/eduvillage-api/pkg/response"
)

type authService interface {
	RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) error
	RegisterTeacher(ctx context.Context, req dto.RegisterTeacherRequest) error
	AuthenticateStudent(ctx context.Context, req dto.LoginRequest) (*models.StudentLogin, error)
	AuthenticateTeacher(ctx context.Context, req dto.LoginRequest) (*models.TeacherLogin, error)
}

// AuthHandler wires registration and login endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// RegisterStudent godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.RegisterStudentRequest true "Student account"
// @Success 200 {object} response.Envelope
// @Router /student/register [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if !bindJSON(c, &req, "All fields required") {
		return
	}
	if err := h.service.RegisterStudent(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// LoginStudent godoc
// @Summary Student login
// @Description Returns the student profile and a bearer token
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /student/login [post]
func (h *AuthHandler) LoginStudent(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req, "Missing credentials") {
		return
	}
	res, err := h.service.AuthenticateStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Payload{
		"student":    res.Student,
		"token":      res.Session.Token,
		"expires_in": res.Session.ExpiresIn,
	})
}

// RegisterTeacher godoc
// @Summary Register teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body dto.RegisterTeacherRequest true "Teacher account"
// @Success 200 {object} response.Envelope
// @Router /teacher/register [post]
func (h *AuthHandler) RegisterTeacher(c *gin.Context) {
	var req dto.RegisterTeacherRequest
	if !bindJSON(c, &req, "All fields required") {
		return
	}
	if err := h.service.RegisterTeacher(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// LoginTeacher godoc
// @Summary Teacher login
// @Description Returns the teacher profile and a bearer token
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /teacher/login [post]
func (h *AuthHandler) LoginTeacher(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req, "Missing credentials") {
		return
	}
	res, err := h.service.AuthenticateTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Payload{
		"teacher":    res.Teacher,
		"token":      res.Session.Token,
		"expires_in": res.Session.ExpiresIn,
	})
}
