package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/group-study-api/internal/models"
)

// ReferenceRepository reads the small read-only collections.
type ReferenceRepository struct {
	featured documentCollection
	faqs     documentCollection
}

func NewReferenceRepository(db *mongo.Database, observer QueryObserver) *ReferenceRepository {
	return &ReferenceRepository{
		featured: newDocumentCollection(db, FeaturedCollection, observer),
		faqs:     newDocumentCollection(db, FAQsCollection, observer),
	}
}

func (r *ReferenceRepository) ListFeatured(ctx context.Context) ([]models.Document, error) {
	return r.featured.find(ctx, bson.M{})
}

func (r *ReferenceRepository) ListFAQs(ctx context.Context) ([]models.Document, error) {
	return r.faqs.find(ctx, bson.M{})
}
