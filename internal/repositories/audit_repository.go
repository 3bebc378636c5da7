package repositories

import (
	"context"
	"time"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuditRepository stores the moderation actions taken through the dashboard
type AuditRepository interface {
	Record(ctx context.Context, event models.AuditEvent) error
}

// MongoAuditRepository implements AuditRepository for MongoDB
type MongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates a new MongoAuditRepository
func NewMongoAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{collection: db.Collection("moderation_events")}
}

// Record inserts one audit event
func (r *MongoAuditRepository) Record(ctx context.Context, event models.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return errors.Wrap(err, "record audit event")
}

// NoopAuditRepository discards audit events; used when no MongoDB is configured
type NoopAuditRepository struct{}

func (NoopAuditRepository) Record(context.Context, models.AuditEvent) error {
	return nil
}
