package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/models"
	"github.com/noah-isme/eduvillage-api/pkg/response"
)

type assignmentService interface {
	AddAssignment(ctx context.Context, actor *models.JWTClaims, req dto.AddAssignmentRequest) (*models.Assignment, error)
	ListAssignmentsForStudent(ctx context.Context, email string) ([]models.AssignmentView, error)
}

type noteService interface {
	AddNote(ctx context.Context, actor *models.JWTClaims, req dto.AddNoteRequest) (*models.Note, error)
	ListNotesForStudent(ctx context.Context, email string) ([]models.NoteView, error)
}

// ContentHandler exposes assignments and notes.
type ContentHandler struct {
	assignments assignmentService
	notes       noteService
}

// NewContentHandler constructs a ContentHandler.
func NewContentHandler(assignments assignmentService, notes noteService) *ContentHandler {
	return &ContentHandler{assignments: assignments, notes: notes}
}

// AddAssignment godoc
// @Summary Add assignment to a course
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body dto.AddAssignmentRequest true "Assignment"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assignment/add [post]
func (h *ContentHandler) AddAssignment(c *gin.Context) {
	var req dto.AddAssignmentRequest
	if !bindJSON(c, &req, "Missing data") {
		return
	}
	if _, err := h.assignments.AddAssignment(c.Request.Context(), claimsFromContext(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// ListStudentAssignments godoc
// @Summary Assignments of the student's courses
// @Tags Content
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assignments/student/{email} [get]
func (h *ContentHandler) ListStudentAssignments(c *gin.Context) {
	assignments, err := h.assignments.ListAssignmentsForStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Payload{"assignments": assignments})
}

// AddNote godoc
// @Summary Add note to a course
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body dto.AddNoteRequest true "Note"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notes [post]
func (h *ContentHandler) AddNote(c *gin.Context) {
	var req dto.AddNoteRequest
	if !bindJSON(c, &req, "Missing data") {
		return
	}
	if _, err := h.notes.AddNote(c.Request.Context(), claimsFromContext(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Note added successfully", nil)
}

// ListStudentNotes godoc
// @Summary Notes of the student's courses, newest first
// @Tags Content
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notes/student/{email} [get]
func (h *ContentHandler) ListStudentNotes(c *gin.Context) {
	notes, err := h.notes.ListNotesForStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Payload{"notes": notes})
}
