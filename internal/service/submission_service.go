package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/group-study-api/internal/models"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
)

type submissionRepository interface {
	Create(ctx context.Context, doc models.Document) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error)
	ListByStatus(ctx context.Context, status string) ([]models.Document, error)
	ListByExaminee(ctx context.Context, email string) ([]models.Document, error)
	SetFields(ctx context.Context, id primitive.ObjectID, fields models.Document) (models.UpdateResult, error)
}

// SubmissionService handles submissions and their grading.
type SubmissionService struct {
	repo      submissionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(repo submissionRepository, validate *validator.Validate, logger *zap.Logger) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{repo: repo, validator: validate, logger: logger}
}

// Create stores a new submission. Status defaults to pending.
func (s *SubmissionService) Create(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	clean := doc.WithoutReserved()
	if len(clean) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "submission payload must contain at least one field")
	}
	if key, ok := clean.NestedKey(); ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("field name %q must not contain '.'", key))
	}
	if clean.Has(models.ExamineeEmailField) {
		email, ok := clean.String(models.ExamineeEmailField)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "examineeEmail must be a string")
		}
		if err := s.validator.Var(email, "email"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "examineeEmail must be a valid email")
		}
	}
	if !clean.Has(models.StatusField) {
		clean[models.StatusField] = string(models.SubmissionPending)
	}

	id, err := s.repo.Create(ctx, clean)
	if err != nil {
		s.logger.Error("create submission failed", zap.Error(err))
		return nil, storeError(err, "failed to create submission")
	}
	return &models.InsertResult{InsertedID: id.Hex()}, nil
}

// Get returns a submission by identifier.
func (s *SubmissionService) Get(ctx context.Context, rawID string) (models.Document, error) {
	id, err := parseObjectID(rawID, "submission")
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "submission")
	}
	return doc, nil
}

// ListByStatus returns every submission with the given status. The requester
// may only ask on their own behalf; results are not narrowed to them.
func (s *SubmissionService) ListByStatus(ctx context.Context, status, requesterEmail, queriedEmail string) ([]models.Document, error) {
	if err := ensureSameIdentity(requesterEmail, queriedEmail); err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status is required")
	}

	docs, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("list submissions by status failed", zap.String("status", status), zap.Error(err))
		return nil, storeError(err, "failed to list submissions")
	}
	return docs, nil
}

// ListBySubmitter returns the submissions made by email, which must be the requester.
func (s *SubmissionService) ListBySubmitter(ctx context.Context, requesterEmail, email string) ([]models.Document, error) {
	if err := ensureSameIdentity(requesterEmail, email); err != nil {
		return nil, err
	}

	docs, err := s.repo.ListByExaminee(ctx, email)
	if err != nil {
		s.logger.Error("list submissions by examinee failed", zap.String("email", email), zap.Error(err))
		return nil, storeError(err, "failed to list submissions")
	}
	return docs, nil
}

// Grade records the review outcome. Only status, remark and feedback change.
func (s *SubmissionService) Grade(ctx context.Context, rawID string, req models.GradeRequest) (*models.UpdateResult, error) {
	id, err := parseObjectID(rawID, "submission")
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grading payload")
	}

	res, err := s.repo.SetFields(ctx, id, req.Fields())
	if err != nil {
		s.logger.Error("grade submission failed", zap.String("id", rawID), zap.Error(err))
		return nil, storeError(err, "failed to grade submission")
	}
	return &res, nil
}

func ensureSameIdentity(requesterEmail, queriedEmail string) error {
	if requesterEmail == "" {
		return appErrors.ErrUnauthorized
	}
	if requesterEmail != strings.TrimSpace(queriedEmail) {
		return appErrors.ErrForbidden
	}
	return nil
}
