package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/group-study-api/internal/models"
	"github.com/noah-isme/group-study-api/internal/testutil"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
)

type spyAssignmentRepo struct {
	*testutil.AssignmentStore
	lastFilter models.AssignmentFilter
	listErr    error
}

func (s *spyAssignmentRepo) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Document, error) {
	s.lastFilter = filter
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.AssignmentStore.List(ctx, filter)
}

func newAssignmentFixture() (*AssignmentService, *spyAssignmentRepo) {
	repo := &spyAssignmentRepo{AssignmentStore: testutil.NewAssignmentStore()}
	return NewAssignmentService(repo, nil, nil), repo
}

func TestAssignmentServiceListFiltersByLevel(t *testing.T) {
	svc, repo := newAssignmentFixture()
	repo.Seed(models.Document{"title": "Algebra", "level": "hard"})
	repo.Seed(models.Document{"title": "Spelling", "level": "easy"})
	repo.Seed(models.Document{"title": "Calculus", "level": "hard"})

	docs, page, err := svc.List(context.Background(), models.AssignmentFilter{Difficulty: "hard"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, doc := range docs {
		assert.Equal(t, "hard", doc["level"])
	}
	assert.Equal(t, "hard", repo.lastFilter.Difficulty)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Equal(t, 0, page.Page)
}

func TestAssignmentServiceListAllIgnoresLevel(t *testing.T) {
	svc, repo := newAssignmentFixture()
	repo.Seed(models.Document{"level": "hard"})
	repo.Seed(models.Document{"level": "easy"})

	docs, _, err := svc.List(context.Background(), models.AssignmentFilter{Difficulty: "All"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestAssignmentServiceListPaginates(t *testing.T) {
	svc, repo := newAssignmentFixture()
	for i := 0; i < 5; i++ {
		repo.Seed(models.Document{"n": i})
	}

	docs, page, err := svc.List(context.Background(), models.AssignmentFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, 2, docs[0]["n"])
	assert.Equal(t, 3, docs[1]["n"])
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 2}, page)
}

func TestAssignmentServiceListCapsPageSize(t *testing.T) {
	svc, repo := newAssignmentFixture()

	_, page, err := svc.List(context.Background(), models.AssignmentFilter{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.PageSize)
	assert.Equal(t, MaxPageSize, repo.lastFilter.PageSize)
}

func TestAssignmentServiceListRejectsNegativePaging(t *testing.T) {
	svc, _ := newAssignmentFixture()

	_, _, err := svc.List(context.Background(), models.AssignmentFilter{Page: -1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceListStoreTimeout(t *testing.T) {
	svc, repo := newAssignmentFixture()
	repo.listErr = context.DeadlineExceeded

	_, _, err := svc.List(context.Background(), models.AssignmentFilter{})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrStoreUnavailable))
}

func TestAssignmentServiceCount(t *testing.T) {
	svc, repo := newAssignmentFixture()
	repo.Seed(models.Document{"title": "a"})
	repo.Seed(models.Document{"title": "b"})

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Count)
}

func TestAssignmentServiceGet(t *testing.T) {
	svc, repo := newAssignmentFixture()
	id := repo.Seed(models.Document{"title": "Algebra"})

	doc, err := svc.Get(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Algebra", doc["title"])
	assert.Equal(t, id, doc[models.IDField])
}

func TestAssignmentServiceGetInvalidID(t *testing.T) {
	svc, _ := newAssignmentFixture()

	_, err := svc.Get(context.Background(), "not-a-hex-id")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidID.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "not-a-hex-id")
	assert.NotNil(t, appErr.Err)
}

func TestAssignmentServiceGetMissing(t *testing.T) {
	svc, _ := newAssignmentFixture()

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestAssignmentServiceCreate(t *testing.T) {
	svc, repo := newAssignmentFixture()

	res, err := svc.Create(context.Background(), models.Document{
		"_id":   "client-chosen",
		"title": "Algebra",
		"level": "hard",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.InsertedID)

	doc, err := svc.Get(context.Background(), res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", doc["title"])
	assert.NotEqual(t, "client-chosen", doc[models.IDField])
	assert.Equal(t, 1, repo.Len())
}

func TestAssignmentServiceCreateValidation(t *testing.T) {
	svc, _ := newAssignmentFixture()

	cases := map[string]models.Document{
		"empty":          {},
		"only reserved":  {"_id": "x", "$set": "y"},
		"unknown level":  {"title": "Algebra", "level": "legendary"},
		"non-text level": {"title": "Algebra", "level": 3},
		"dotted key":     {"title": "Algebra", "meta.author": "x"},
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), doc)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestAssignmentServiceUpsertMergesFields(t *testing.T) {
	svc, repo := newAssignmentFixture()
	id := repo.Seed(models.Document{"title": "Algebra", "marks": 10, "level": "easy"})

	res, err := svc.Upsert(context.Background(), id.Hex(), models.Document{"marks": 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)

	doc, err := svc.Get(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Algebra", doc["title"])
	assert.Equal(t, 20, doc["marks"])
	assert.Equal(t, "easy", doc["level"])
}

func TestAssignmentServiceUpsertCreatesMissing(t *testing.T) {
	svc, _ := newAssignmentFixture()
	id := primitive.NewObjectID()

	res, err := svc.Upsert(context.Background(), id.Hex(), models.Document{"title": "New"})
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), res.UpsertedID)

	doc, err := svc.Get(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "New", doc["title"])
}

func TestAssignmentServiceUpsertRejectsBadInput(t *testing.T) {
	svc, _ := newAssignmentFixture()

	_, err := svc.Upsert(context.Background(), "zzz", models.Document{"title": "x"})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidID))

	_, err = svc.Upsert(context.Background(), primitive.NewObjectID().Hex(), models.Document{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAssignmentServiceDelete(t *testing.T) {
	svc, repo := newAssignmentFixture()
	id := repo.Seed(models.Document{"title": "Algebra"})

	res, err := svc.Delete(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	_, err = svc.Get(context.Background(), id.Hex())
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	res, err = svc.Delete(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)
}

func TestAssignmentServiceStoreFailureIsInternal(t *testing.T) {
	svc, repo := newAssignmentFixture()
	repo.Err = errors.New("boom")

	_, err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
	assert.False(t, errors.Is(err, mongo.ErrNoDocuments))
}

func TestAssignmentServiceUpsertRejectsDottedKeys(t *testing.T) {
	svc, repo := newAssignmentFixture()
	id := repo.Seed(models.Document{"title": "Algebra"})

	_, err := svc.Upsert(context.Background(), id.Hex(), models.Document{"a.b": 1})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Contains(t, appErrors.FromError(err).Message, "a.b")

	doc, err := svc.Get(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.NotContains(t, doc, "a.b")
}
