// Package testutil provides in-memory stand-ins for the Mongo repositories.
package testutil

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/group-study-api/internal/models"
)

// Collection is an ordered in-memory document collection. Err, when set, is
// returned by every operation.
type Collection struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]models.Document
	order []primitive.ObjectID
	Err   error
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{docs: make(map[primitive.ObjectID]models.Document)}
}

// Seed inserts doc and returns its identifier.
func (c *Collection) Seed(doc models.Document) primitive.ObjectID {
	id, _ := c.Create(context.Background(), doc)
	return id
}

func (c *Collection) Create(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return primitive.NilObjectID, c.Err
	}
	id := primitive.NewObjectID()
	c.put(id, doc)
	return id, nil
}

func (c *Collection) FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return clone(doc), nil
}

func (c *Collection) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return 0, c.Err
	}
	if _, ok := c.docs[id]; !ok {
		return 0, nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// Len returns the number of stored documents.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

func (c *Collection) set(id primitive.ObjectID, fields models.Document, upsert bool) (models.UpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return models.UpdateResult{}, c.Err
	}
	doc, ok := c.docs[id]
	if !ok {
		if !upsert {
			return models.UpdateResult{}, nil
		}
		c.put(id, fields)
		return models.UpdateResult{UpsertedID: id.Hex()}, nil
	}
	modified := int64(0)
	for key, value := range fields {
		if current, exists := doc[key]; !exists || !reflect.DeepEqual(current, value) {
			modified = 1
		}
		doc[key] = value
	}
	return models.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

func (c *Collection) filter(match func(models.Document) bool, skip, limit int64) ([]models.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	out := []models.Document{}
	var skipped int64
	for _, id := range c.order {
		doc := c.docs[id]
		if match != nil && !match(doc) {
			continue
		}
		if skipped < skip {
			skipped++
			continue
		}
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		out = append(out, clone(doc))
	}
	return out, nil
}

func (c *Collection) put(id primitive.ObjectID, doc models.Document) {
	stored := clone(doc)
	stored[models.IDField] = id
	c.docs[id] = stored
	c.order = append(c.order, id)
}

func clone(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for key, value := range doc {
		out[key] = value
	}
	return out
}

// AssignmentStore satisfies the assignment repository contract.
type AssignmentStore struct {
	*Collection
}

func NewAssignmentStore() *AssignmentStore {
	return &AssignmentStore{Collection: NewCollection()}
}

func (s *AssignmentStore) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Document, error) {
	var match func(models.Document) bool
	if !filter.AllLevels() {
		match = func(doc models.Document) bool {
			level, _ := doc.String(models.LevelField)
			return level == filter.Difficulty
		}
	}
	return s.filter(match, filter.Skip(), int64(filter.PageSize))
}

func (s *AssignmentStore) EstimatedCount(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.docs)), nil
}

func (s *AssignmentStore) Upsert(ctx context.Context, id primitive.ObjectID, fields models.Document) (models.UpdateResult, error) {
	return s.set(id, fields, true)
}

// SubmissionStore satisfies the submission repository contract.
type SubmissionStore struct {
	*Collection
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{Collection: NewCollection()}
}

func (s *SubmissionStore) ListByStatus(ctx context.Context, status string) ([]models.Document, error) {
	return s.filter(fieldEquals(models.StatusField, status), 0, 0)
}

func (s *SubmissionStore) ListByExaminee(ctx context.Context, email string) ([]models.Document, error) {
	return s.filter(fieldEquals(models.ExamineeEmailField, email), 0, 0)
}

func (s *SubmissionStore) SetFields(ctx context.Context, id primitive.ObjectID, fields models.Document) (models.UpdateResult, error) {
	return s.set(id, fields, false)
}

func fieldEquals(key, want string) func(models.Document) bool {
	return func(doc models.Document) bool {
		got, ok := doc.String(key)
		return ok && got == want
	}
}

// ReferenceStore serves fixed featured and FAQ documents.
type ReferenceStore struct {
	Featured []models.Document
	FAQs     []models.Document
	Err      error
}

func (s *ReferenceStore) ListFeatured(ctx context.Context) ([]models.Document, error) {
	return s.Featured, s.Err
}

func (s *ReferenceStore) ListFAQs(ctx context.Context) ([]models.Document, error) {
	return s.FAQs, s.Err
}

// RevocationStore records revoked token identifiers in memory.
type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Duration)}
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ttl > 0 {
		s.revoked[tokenID] = ttl
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}
