package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/group-study-api/internal/models"
)

// Collection names inside the study database.
const (
	AssignmentsCollection = "assignments"
	SubmissionsCollection = "submittedAssignments"
	FeaturedCollection    = "featured"
	FAQsCollection        = "faqs"
)

// QueryObserver receives timings for store round trips.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// documentCollection wraps a Mongo collection holding open documents.
type documentCollection struct {
	c        *mongo.Collection
	observer QueryObserver
}

func newDocumentCollection(db *mongo.Database, name string, observer QueryObserver) documentCollection {
	return documentCollection{c: db.Collection(name), observer: observer}
}

func (d documentCollection) observe(op string, start time.Time) {
	if d.observer == nil {
		return
	}
	d.observer.ObserveDBQuery(d.c.Name()+"."+op, time.Since(start))
}

func (d documentCollection) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Document, error) {
	defer d.observe("find", time.Now())

	cur, err := d.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}
	docs := make([]models.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, models.Document(m))
	}
	return docs, nil
}

func (d documentCollection) findByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	defer d.observe("find_one", time.Now())

	var raw bson.M
	if err := d.c.FindOne(ctx, bson.M{models.IDField: id}).Decode(&raw); err != nil {
		return nil, err
	}
	return models.Document(raw), nil
}

func (d documentCollection) insert(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	defer d.observe("insert_one", time.Now())

	id := primitive.NewObjectID()
	record := bson.M{}
	for key, value := range doc {
		record[key] = value
	}
	record[models.IDField] = id

	if _, err := d.c.InsertOne(ctx, record); err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

func (d documentCollection) set(ctx context.Context, id primitive.ObjectID, fields models.Document, upsert bool) (models.UpdateResult, error) {
	defer d.observe("update_one", time.Now())

	opts := options.Update().SetUpsert(upsert)
	res, err := d.c.UpdateOne(ctx, bson.M{models.IDField: id}, bson.M{"$set": bson.M(fields)}, opts)
	if err != nil {
		return models.UpdateResult{}, err
	}

	result := models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
	if res.UpsertedID != nil {
		result.UpsertedID = idString(res.UpsertedID)
	}
	return result, nil
}

func (d documentCollection) deleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	defer d.observe("delete_one", time.Now())

	res, err := d.c.DeleteOne(ctx, bson.M{models.IDField: id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (d documentCollection) estimatedCount(ctx context.Context) (int64, error) {
	defer d.observe("estimated_count", time.Now())
	return d.c.EstimatedDocumentCount(ctx)
}

func idString(v interface{}) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(v)
}
