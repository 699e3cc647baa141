package dto

// ExportLeaderboardQuery selects the export format of a leaderboard.
type ExportLeaderboardQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=csv pdf"`
}
