package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/group-study-api/internal/models"
	"github.com/noah-isme/group-study-api/pkg/response"
)

type referenceService interface {
	ListFeatured(ctx context.Context) ([]models.Document, error)
	ListFAQs(ctx context.Context) ([]models.Document, error)
}

// ReferenceHandler serves the static featured and FAQ content.
type ReferenceHandler struct {
	references referenceService
}

func NewReferenceHandler(references referenceService) *ReferenceHandler {
	return &ReferenceHandler{references: references}
}

// Featured godoc
// @Summary List featured items
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/featured [get]
func (h *ReferenceHandler) Featured(c *gin.Context) {
	docs, err := h.references.ListFeatured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, docs)
}

// FAQs godoc
// @Summary List frequently asked questions
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/FAQs [get]
func (h *ReferenceHandler) FAQs(c *gin.Context) {
	docs, err := h.references.ListFAQs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, docs)
}
