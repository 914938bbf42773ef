package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/group-study-api/internal/models"
)

const submissionsNS = "test.submittedAssignments"

func TestSubmissionRepositoryListByExaminee(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("filters by email", func(mt *mtest.T) {
		repo := NewSubmissionRepository(mt.DB, nil)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, submissionsNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "examineeEmail", Value: "u@x.com"}, {Key: "status", Value: "pending"}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "examineeEmail", Value: "u@x.com"}, {Key: "status", Value: "completed"}},
			),
			endCursor(submissionsNS),
		)

		docs, err := repo.ListByExaminee(context.Background(), "u@x.com")
		require.NoError(mt, err)
		assert.Len(mt, docs, 2)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "u@x.com", started.Command.Lookup("filter", "examineeEmail").StringValue())
		_, err = started.Command.LookupErr("limit")
		assert.Error(mt, err, "submission listings are not paginated")
	})
}

func TestSubmissionRepositoryListByStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("filters by status", func(mt *mtest.T) {
		repo := NewSubmissionRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, submissionsNS, mtest.FirstBatch))

		docs, err := repo.ListByStatus(context.Background(), "pending")
		require.NoError(mt, err)
		assert.Empty(mt, docs)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "pending", started.Command.Lookup("filter", "status").StringValue())
	})
}

func TestSubmissionRepositorySetFieldsDoesNotUpsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("grading update", func(mt *mtest.T) {
		repo := NewSubmissionRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		fields := models.GradeRequest{Status: models.SubmissionCompleted, Remark: "8/10", Feedback: "good"}.Fields()
		res, err := repo.SetFields(context.Background(), primitive.NewObjectID(), fields)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.MatchedCount)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		update, err := started.Command.Lookup("updates").Array().IndexErr(0)
		require.NoError(mt, err)
		set := update.Value().Document().Lookup("u", "$set").Document()
		elems, err := set.Elements()
		require.NoError(mt, err)
		assert.Len(mt, elems, 3)
		_, err = set.LookupErr("examineeEmail")
		assert.Error(mt, err)
		upsert, err := update.Value().Document().LookupErr("upsert")
		if err == nil {
			assert.False(mt, upsert.Boolean())
		}
	})
}

func TestReferenceRepositoryListsWholeCollections(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("featured and faqs", func(mt *mtest.T) {
		repo := NewReferenceRepository(mt.DB, nil)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.featured", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "Weekly pick"}}),
			mtest.CreateCursorResponse(0, "test.faqs", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "question", Value: "How?"}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "question", Value: "Why?"}}),
		)

		featured, err := repo.ListFeatured(context.Background())
		require.NoError(mt, err)
		assert.Len(mt, featured, 1)
		assert.Equal(mt, FeaturedCollection, mt.GetStartedEvent().Command.Lookup("find").StringValue())

		faqs, err := repo.ListFAQs(context.Background())
		require.NoError(mt, err)
		assert.Len(mt, faqs, 2)
		assert.Equal(mt, FAQsCollection, mt.GetStartedEvent().Command.Lookup("find").StringValue())
	})
}
