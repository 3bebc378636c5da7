package models

// DashboardStats is the aggregate served by GET /api/stats
type DashboardStats struct {
	TotalUsers     int64        `json:"totalUsers"`
	TotalPosts     int64        `json:"totalPosts"`
	TotalComments  int64        `json:"totalComments"`
	WeeklyPosts    int64        `json:"weeklyPosts"`
	ActiveReports  int64        `json:"activeReports"`
	ActiveSessions int64        `json:"activeSessions"`
	AvgSessionTime int64        `json:"avgSessionTime"` // minutes
	PostsPerDay    []DailyPosts `json:"postsPerDay"`
	Unavailable    []string     `json:"unavailable"`
}

// DailyPosts is the number of posts created on one calendar day
type DailyPosts struct {
	Date      string `json:"date"`
	PostCount int64  `json:"postCount"`
}
