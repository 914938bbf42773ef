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

const (
	// DefaultPageSize applies when the client omits size.
	DefaultPageSize = 10
	// MaxPageSize caps a single page.
	MaxPageSize = 100
)

type assignmentRepository interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Document, error)
	EstimatedCount(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error)
	Create(ctx context.Context, doc models.Document) (primitive.ObjectID, error)
	Upsert(ctx context.Context, id primitive.ObjectID, fields models.Document) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// AssignmentService handles assignment browsing and authoring.
type AssignmentService struct {
	repo      assignmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(repo assignmentRepository, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, validator: validate, logger: logger}
}

// List returns one page of assignments, optionally restricted to a level.
func (s *AssignmentService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Document, *models.Pagination, error) {
	if filter.Page < 0 || filter.PageSize < 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "page and size must not be negative")
	}
	if filter.PageSize == 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}
	filter.Difficulty = strings.TrimSpace(filter.Difficulty)

	docs, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("difficulty", filter.Difficulty), zap.Error(err))
		return nil, nil, storeError(err, "failed to list assignments")
	}
	return docs, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize}, nil
}

// Count returns the estimated size of the whole assignment collection.
func (s *AssignmentService) Count(ctx context.Context) (*models.AssignmentCount, error) {
	count, err := s.repo.EstimatedCount(ctx)
	if err != nil {
		return nil, storeError(err, "failed to count assignments")
	}
	return &models.AssignmentCount{Count: count}, nil
}

// Get returns an assignment by identifier.
func (s *AssignmentService) Get(ctx context.Context, rawID string) (models.Document, error) {
	id, err := parseObjectID(rawID, "assignment")
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "assignment")
	}
	return doc, nil
}

// Create stores a new assignment document.
func (s *AssignmentService) Create(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	clean, err := s.prepare(doc)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, clean)
	if err != nil {
		s.logger.Error("create assignment failed", zap.Error(err))
		return nil, storeError(err, "failed to create assignment")
	}
	return &models.InsertResult{InsertedID: id.Hex()}, nil
}

// Upsert merges fields into the assignment at rawID, creating it when absent.
func (s *AssignmentService) Upsert(ctx context.Context, rawID string, doc models.Document) (*models.UpdateResult, error) {
	id, err := parseObjectID(rawID, "assignment")
	if err != nil {
		return nil, err
	}
	clean, err := s.prepare(doc)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.Upsert(ctx, id, clean)
	if err != nil {
		s.logger.Error("upsert assignment failed", zap.String("id", rawID), zap.Error(err))
		return nil, storeError(err, "failed to update assignment")
	}
	return &res, nil
}

// Delete removes an assignment. Deleting a missing id reports zero deletions.
func (s *AssignmentService) Delete(ctx context.Context, rawID string) (*models.DeleteResult, error) {
	id, err := parseObjectID(rawID, "assignment")
	if err != nil {
		return nil, err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete assignment failed", zap.String("id", rawID), zap.Error(err))
		return nil, storeError(err, "failed to delete assignment")
	}
	return &models.DeleteResult{DeletedCount: deleted}, nil
}

func (s *AssignmentService) prepare(doc models.Document) (models.Document, error) {
	clean := doc.WithoutReserved()
	if len(clean) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignment payload must contain at least one field")
	}
	if key, ok := clean.NestedKey(); ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("field name %q must not contain '.'", key))
	}
	if clean.Has(models.LevelField) {
		level, ok := clean.String(models.LevelField)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "level must be a string")
		}
		if err := s.validator.Var(level, "oneof=easy medium hard"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "level must be one of easy, medium, hard")
		}
	}
	return clean, nil
}
