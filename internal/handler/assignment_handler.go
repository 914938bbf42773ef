package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/group-study-api/internal/models"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
	"github.com/noah-isme/group-study-api/pkg/response"
)

type assignmentService interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Document, *models.Pagination, error)
	Count(ctx context.Context) (*models.AssignmentCount, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Create(ctx context.Context, doc models.Document) (*models.InsertResult, error)
	Upsert(ctx context.Context, id string, doc models.Document) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

// AssignmentHandler exposes assignment endpoints.
type AssignmentHandler struct {
	assignments assignmentService
}

// NewAssignmentHandler constructs AssignmentHandler.
func NewAssignmentHandler(assignments assignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List godoc
// @Summary List assignments
// @Tags Assignments
// @Produce json
// @Param difficulty query string false "Level filter, All for every level"
// @Param page query int false "Zero based page"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	filter := models.AssignmentFilter{Difficulty: strings.TrimSpace(c.Query("difficulty"))}

	var err error
	if filter.Page, err = queryInt(c, "page"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.PageSize, err = queryInt(c, "size"); err != nil {
		response.Error(c, err)
		return
	}

	docs, pagination, err := h.assignments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs, pagination)
}

// Count godoc
// @Summary Count assignments
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/assignmentsCount [get]
func (h *AssignmentHandler) Count(c *gin.Context) {
	count, err := h.assignments.Count(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, count)
}

// Get godoc
// @Summary Get assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /user/assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	doc, err := h.assignments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, doc)
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body object true "Assignment document"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	doc, ok := bindDocument(c, "invalid assignment payload")
	if !ok {
		return
	}
	res, err := h.assignments.Create(c.Request.Context(), doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Upsert godoc
// @Summary Update or create assignment
// @Description Merges the supplied fields, creating the assignment when the id is unknown
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body object true "Fields to set"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/assignments/{id} [put]
func (h *AssignmentHandler) Upsert(c *gin.Context) {
	doc, ok := bindDocument(c, "invalid assignment payload")
	if !ok {
		return
	}
	res, err := h.assignments.Upsert(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Delete godoc
// @Summary Delete assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	res, err := h.assignments.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// queryInt reads an optional non-negative integer query parameter.
func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be a non-negative integer")
	}
	return value, nil
}

func bindDocument(c *gin.Context, message string) (models.Document, bool) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return nil, false
	}
	return doc, true
}
