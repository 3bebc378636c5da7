package models

import "time"

const (
	AuditActionDeletePost    = "delete_post"
	AuditActionDeleteComment = "delete_comment"
)

// AuditEvent records a moderation action taken from the dashboard
type AuditEvent struct {
	Action    string    `json:"action" bson:"action"`
	TargetID  uint      `json:"target_id" bson:"target_id"`
	ActorID   uint      `json:"actor_id" bson:"actor_id"`
	ActorMail string    `json:"actor_email" bson:"actor_email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
