package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

// NoteRepository handles persistence of course notes.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs the repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a note stamping created_at when unset.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO notes (teacher_id, course_id, content, created_at) VALUES (?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, "create note", query, note.TeacherID, note.CourseID, note.Content, note.CreatedAt)
	if err != nil {
		return err
	}
	note.ID = id
	return nil
}

// ListByStudentEmail returns notes of the student's courses, newest first.
func (r *NoteRepository) ListByStudentEmail(ctx context.Context, email string) ([]models.NoteView, error) {
	const query = `SELECT n.content, c.course_name, t.name AS teacher_name, n.created_at
        FROM notes n
        JOIN courses c ON n.course_id = c.id
        JOIN teachers t ON n.teacher_id = t.id
        JOIN student_courses sc ON sc.course_id = c.id
        JOIN students s ON sc.student_id = s.id
        WHERE s.email = ?
        ORDER BY n.created_at DESC, n.id DESC`
	notes := []models.NoteView{}
	if err := r.db.SelectContext(ctx, &notes, rebind(r.db, query), email); err != nil {
		return nil, fmt.Errorf("list student notes: %w", err)
	}
	return notes, nil
}
