package models

// LeaderboardEntry is one ranked row of a course leaderboard.
type LeaderboardEntry struct {
	StudentID ID      `db:"student_id" json:"-"`
	Name      string  `db:"name" json:"name"`
	Email     string  `db:"email" json:"email"`
	Marks     float64 `db:"marks" json:"marks"`
}
