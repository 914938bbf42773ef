package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/group-study-api/internal/models"
)

// SubmissionRepository handles persistence for submitted assignments.
type SubmissionRepository struct {
	docs documentCollection
}

// NewSubmissionRepository creates a new repository instance.
func NewSubmissionRepository(db *mongo.Database, observer QueryObserver) *SubmissionRepository {
	return &SubmissionRepository{docs: newDocumentCollection(db, SubmissionsCollection, observer)}
}

func (r *SubmissionRepository) Create(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	return r.docs.insert(ctx, doc)
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	return r.docs.findByID(ctx, id)
}

// ListByStatus returns every submission whose status matches exactly.
func (r *SubmissionRepository) ListByStatus(ctx context.Context, status string) ([]models.Document, error) {
	return r.docs.find(ctx, bson.M{models.StatusField: status})
}

// ListByExaminee returns the submissions made by email.
func (r *SubmissionRepository) ListByExaminee(ctx context.Context, email string) ([]models.Document, error) {
	return r.docs.find(ctx, bson.M{models.ExamineeEmailField: email})
}

// SetFields overwrites the given fields without creating a record.
func (r *SubmissionRepository) SetFields(ctx context.Context, id primitive.ObjectID, fields models.Document) (models.UpdateResult, error) {
	return r.docs.set(ctx, id, fields, false)
}
