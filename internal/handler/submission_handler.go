package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/group-study-api/internal/middleware"
	"github.com/noah-isme/group-study-api/internal/models"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
	"github.com/noah-isme/group-study-api/pkg/response"
)

type submissionService interface {
	Create(ctx context.Context, doc models.Document) (*models.InsertResult, error)
	Get(ctx context.Context, id string) (models.Document, error)
	ListByStatus(ctx context.Context, status, requesterEmail, queriedEmail string) ([]models.Document, error)
	ListBySubmitter(ctx context.Context, requesterEmail, email string) ([]models.Document, error)
	Grade(ctx context.Context, id string, req models.GradeRequest) (*models.UpdateResult, error)
}

// SubmissionHandler exposes submitted assignment endpoints.
type SubmissionHandler struct {
	submissions submissionService
}

// NewSubmissionHandler constructs SubmissionHandler.
func NewSubmissionHandler(submissions submissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// ListByStatus godoc
// @Summary List submissions by status
// @Tags Submissions
// @Produce json
// @Param status query string true "Submission status"
// @Param email query string true "Requester email, must match the signed in user"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /user/submitted_assignments [get]
func (h *SubmissionHandler) ListByStatus(c *gin.Context) {
	docs, err := h.submissions.ListByStatus(c.Request.Context(), c.Query("status"), requesterEmail(c), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, docs)
}

// ListBySubmitter godoc
// @Summary List the caller's submissions
// @Tags Submissions
// @Produce json
// @Param email path string true "Examinee email, must match the signed in user"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /user/user_submitted_assignments/{email} [get]
func (h *SubmissionHandler) ListBySubmitter(c *gin.Context) {
	docs, err := h.submissions.ListBySubmitter(c.Request.Context(), requesterEmail(c), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, docs)
}

// Get godoc
// @Summary Get submission
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /user/submitted_assignments/{id} [get]
func (h *SubmissionHandler) Get(c *gin.Context) {
	doc, err := h.submissions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, doc)
}

// Create godoc
// @Summary Submit an assignment
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body object true "Submission document"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/submitted_assignments [post]
func (h *SubmissionHandler) Create(c *gin.Context) {
	doc, ok := bindDocument(c, "invalid submission payload")
	if !ok {
		return
	}
	res, err := h.submissions.Create(c.Request.Context(), doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Grade godoc
// @Summary Grade submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param payload body models.GradeRequest true "Grading payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user/submitted_assignments/{id} [put]
func (h *SubmissionHandler) Grade(c *gin.Context) {
	var req models.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grading payload"))
		return
	}
	res, err := h.submissions.Grade(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func requesterEmail(c *gin.Context) string {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return ""
	}
	return claims.Email
}
