package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/group-study-api/internal/models"
	"github.com/noah-isme/group-study-api/internal/testutil"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
)

func TestReferenceServiceLists(t *testing.T) {
	repo := &testutil.ReferenceStore{
		Featured: []models.Document{{"title": "Weekly challenge"}},
		FAQs:     []models.Document{{"question": "How do I submit?"}, {"question": "Who grades?"}},
	}
	svc := NewReferenceService(repo, nil)

	featured, err := svc.ListFeatured(context.Background())
	require.NoError(t, err)
	assert.Len(t, featured, 1)

	faqs, err := svc.ListFAQs(context.Background())
	require.NoError(t, err)
	assert.Len(t, faqs, 2)
}

func TestReferenceServiceStoreUnavailable(t *testing.T) {
	repo := &testutil.ReferenceStore{Err: mongo.ErrClientDisconnected}
	svc := NewReferenceService(repo, nil)

	_, err := svc.ListFAQs(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrStoreUnavailable))
}
