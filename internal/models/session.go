package models

import "time"

// ActiveSessionWindow is how recent a session's last activity must be for it to count as active
const ActiveSessionWindow = 30 * time.Minute

// Session records a user's active period in the app
type Session struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"userId" gorm:"not null;index"`
	StartTime    time.Time  `json:"startTime" gorm:"not null;index"`
	EndTime      *time.Time `json:"endTime"`
	LastActivity time.Time  `json:"lastActivity" gorm:"not null;index"`
	IPAddress    string     `json:"ipAddress" gorm:"size:64"`
	Device       string     `json:"device" gorm:"size:255"`

	User *User `json:"-"`
}

// SessionRow is a session as listed by the dashboard
type SessionRow struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"userId"`
	UserName     string     `json:"userName"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	LastActivity time.Time  `json:"lastActivity"`
	IPAddress    string     `json:"ipAddress"`
	Device       string     `json:"device"`
	Active       bool       `json:"active"`
}

// IsActive reports whether the session is still open and was used within the window
func (s SessionRow) IsActive(now time.Time) bool {
	return s.EndTime == nil && now.Sub(s.LastActivity) <= ActiveSessionWindow
}

// ListSessionsRequest holds the query parameters of GET /api/sessions
type ListSessionsRequest struct {
	Limit int `query:"limit" validate:"min=1,max=100"`
}
