package models

import "time"

const (
	ReportTypePost    = "post"
	ReportTypeComment = "comment"

	ReportStatusActive   = "active"
	ReportStatusResolved = "resolved"
)

// Report is a flag raised against a post or a comment
type Report struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"size:50;not null"`
	Status    string    `json:"status" gorm:"size:50;not null;default:active;index"`
	Reason    string    `json:"reason"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	PostID    *uint     `json:"postId" gorm:"index"`
	CommentID *uint     `json:"commentId" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User    *User    `json:"-"`
	Post    *Post    `json:"-"`
	Comment *Comment `json:"-"`
}
