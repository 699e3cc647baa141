package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

// ResultRepository reads course results. Results are written elsewhere.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository constructs the repository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Leaderboard ranks a course's results by marks, ties broken by student id.
func (r *ResultRepository) Leaderboard(ctx context.Context, courseID models.ID) ([]models.LeaderboardEntry, error) {
	const query = `SELECT s.id AS student_id, s.name, s.email, r.marks
        FROM results r
        JOIN students s ON r.student_id = s.id
        WHERE r.course_id = ?
        ORDER BY r.marks DESC, s.id ASC`
	entries := []models.LeaderboardEntry{}
	if err := r.db.SelectContext(ctx, &entries, rebind(r.db, query), courseID); err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return entries, nil
}
