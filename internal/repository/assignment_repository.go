package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/group-study-api/internal/models"
)

// AssignmentRepository handles persistence for assignments.
type AssignmentRepository struct {
	docs documentCollection
}

// NewAssignmentRepository creates a new repository instance.
func NewAssignmentRepository(db *mongo.Database, observer QueryObserver) *AssignmentRepository {
	return &AssignmentRepository{docs: newDocumentCollection(db, AssignmentsCollection, observer)}
}

// List returns one page of assignments in store order.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Document, error) {
	return r.docs.find(ctx, assignmentQuery(filter), assignmentPage(filter))
}

// EstimatedCount returns the collection size from metadata without scanning.
func (r *AssignmentRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return r.docs.estimatedCount(ctx)
}

// FindByID returns mongo.ErrNoDocuments when the assignment does not exist.
func (r *AssignmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	return r.docs.findByID(ctx, id)
}

// Create stores doc verbatim under a fresh identifier.
func (r *AssignmentRepository) Create(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	return r.docs.insert(ctx, doc)
}

// Upsert merges fields into the assignment, creating it when absent.
func (r *AssignmentRepository) Upsert(ctx context.Context, id primitive.ObjectID, fields models.Document) (models.UpdateResult, error) {
	return r.docs.set(ctx, id, fields, true)
}

// Delete removes the assignment and reports how many records went away.
func (r *AssignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.docs.deleteByID(ctx, id)
}

func assignmentQuery(filter models.AssignmentFilter) bson.M {
	if filter.AllLevels() {
		return bson.M{}
	}
	return bson.M{models.LevelField: filter.Difficulty}
}

func assignmentPage(filter models.AssignmentFilter) *options.FindOptions {
	opts := options.Find()
	if filter.PageSize > 0 {
		opts.SetSkip(filter.Skip()).SetLimit(int64(filter.PageSize))
	}
	return opts
}
