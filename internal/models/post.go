package models

import "time"

// Interest is a top-level topic a post can be filed under
type Interest struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

// SubInterest refines an Interest
type SubInterest struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	InterestID *uint  `json:"interestId" gorm:"index"`
	Name       string `json:"name" gorm:"size:255;not null"`
}

// Post represents an authored story with engagement counters
type Post struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	UserID            *uint      `json:"userId" gorm:"index"`
	Title             string     `json:"title" gorm:"not null"`
	Content           string     `json:"content"`
	RegionOfInterest  string     `json:"regionofInterest" gorm:"size:255"`
	ImageURL          string     `json:"imageUrl"`
	ViewsCount        int        `json:"viewsCount" gorm:"not null;default:0"`
	CommentsCount     int        `json:"commentsCount" gorm:"not null;default:0"`
	Categories        string     `json:"categories"`
	TopicID           *uint      `json:"topicId" gorm:"index"`
	SubTopicID        *uint      `json:"subTopicId" gorm:"index"`
	TrendScore        float64    `json:"trendScore" gorm:"not null;default:0"`
	DecayedTrendScore float64    `json:"decayed_trend_score" gorm:"not null;default:0"`
	Tagline           string     `json:"tagline"`
	IsFlagged         bool       `json:"isFlagged" gorm:"not null;default:false"`
	StoryDate         *time.Time `json:"storyDate"`
	CreatedAt         time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	User     *User        `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Topic    *Interest    `json:"-" gorm:"foreignKey:TopicID"`
	SubTopic *SubInterest `json:"-" gorm:"foreignKey:SubTopicID"`
}

// NewsImage is an image attached to a post
type NewsImage struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	PostID uint   `json:"postId" gorm:"not null;index"`
	URL    string `json:"url"`

	Post *Post `json:"-"`
}

// PostRow is a post as listed by the dashboard, with topic names resolved
type PostRow struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	RegionOfInterest  string     `json:"regionofInterest"`
	ImageURL          string     `json:"imageUrl"`
	ViewsCount        int        `json:"viewsCount"`
	CommentsCount     int        `json:"commentsCount"`
	Categories        string     `json:"categories"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	Topic             *string    `json:"topic"`
	SubTopic          *string    `json:"subTopic"`
	TrendScore        float64    `json:"trendScore"`
	Tagline           string     `json:"tagline"`
	IsFlagged         bool       `json:"isFlagged"`
	StoryDate         *time.Time `json:"storyDate"`
	DecayedTrendScore float64    `json:"decayed_trend_score"`
}

// ListPostsRequest holds the query parameters of GET /api/posts
type ListPostsRequest struct {
	Search string `query:"search" validate:"omitempty,max=255"`
	Page   int    `query:"page" validate:"min=1"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
}

// SearchPostsRequest holds the query parameters of GET /api/posts/search
type SearchPostsRequest struct {
	Query string `query:"q" validate:"required,max=255"`
	Field string `query:"field"`
}
