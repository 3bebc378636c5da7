package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null;index"`
	PostID     uint      `json:"postId" gorm:"not null;index"`
	ParentID   *uint     `json:"parentId" gorm:"index"`
	Content    string    `json:"content" gorm:"not null"`
	ReplyCount int       `json:"replyCount" gorm:"not null;default:0"`
	IsFlagged  bool      `json:"isFlagged" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User *User `json:"-"`
	Post *Post `json:"-"`
}

// CommentReaction is a like or dislike on a comment
type CommentReaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"commentId" gorm:"not null;index"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	IsLike    bool      `json:"isLike"`
	CreatedAt time.Time `json:"createdAt"`

	Comment *Comment `json:"-"`
	User    *User    `json:"-"`
}

// CommentRow is a comment as listed by the dashboard
type CommentRow struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	PostID     uint      `json:"postId"`
	ReplyCount int       `json:"replyCount"`
	ParentID   *uint     `json:"parentId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	IsFlagged  bool      `json:"isFlagged"`
	PostTitle  string    `json:"postTitle"`
	AuthorName string    `json:"authorName"`
}
