package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/group-study-api/internal/models"
	"github.com/noah-isme/group-study-api/internal/service"
	"github.com/noah-isme/group-study-api/internal/testutil"
)

func TestHealthHandlerReady(t *testing.T) {
	h := NewHealthHandler(nil, func(context.Context) error { return nil })
	c, rec := newTestContext(http.MethodGet, "/ready", "")
	h.Ready(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	h = NewHealthHandler(nil, func(context.Context) error { return errors.New("no primary") })
	c, rec = newTestContext(http.MethodGet, "/ready", "")
	h.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "STORE_UNAVAILABLE", decodeEnvelope(t, rec).Error.Code)
}

func TestHealthHandlerRootAndMetrics(t *testing.T) {
	h := NewHealthHandler(service.NewMetricsService(), nil)

	c, rec := newTestContext(http.MethodGet, "/", "")
	h.Root(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")

	c, rec = newTestContext(http.MethodGet, "/metrics", "")
	h.Prometheus(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutines_total")

}

func TestHealthHandlerMetricsDisabled(t *testing.T) {
	h := NewHealthHandler(nil, nil)
	c, rec := newTestContext(http.MethodGet, "/metrics", "")

	h.Prometheus(c)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, http.StatusServiceUnavailable, c.Writer.Status())
	assert.Contains(t, rec.Body.String(), "metrics disabled")
}

func TestReferenceHandlerLists(t *testing.T) {
	svc := service.NewReferenceService(&testutil.ReferenceStore{
		Featured: []models.Document{{"title": "Weekly"}},
		FAQs:     []models.Document{},
	}, nil)
	h := NewReferenceHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/user/featured", "")
	h.Featured(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"title":"Weekly"}]`, string(decodeEnvelope(t, rec).Data))

	c, rec = newTestContext(http.MethodGet, "/user/FAQs", "")
	h.FAQs(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rec).Data))
}
