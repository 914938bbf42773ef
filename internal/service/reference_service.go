package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/group-study-api/internal/models"
)

type referenceRepository interface {
	ListFeatured(ctx context.Context) ([]models.Document, error)
	ListFAQs(ctx context.Context) ([]models.Document, error)
}

// ReferenceService serves the read-only featured and FAQ collections.
type ReferenceService struct {
	repo   referenceRepository
	logger *zap.Logger
}

func NewReferenceService(repo referenceRepository, logger *zap.Logger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{repo: repo, logger: logger}
}

func (s *ReferenceService) ListFeatured(ctx context.Context) ([]models.Document, error) {
	docs, err := s.repo.ListFeatured(ctx)
	if err != nil {
		s.logger.Error("list featured failed", zap.Error(err))
		return nil, storeError(err, "failed to list featured items")
	}
	return docs, nil
}

func (s *ReferenceService) ListFAQs(ctx context.Context) ([]models.Document, error) {
	docs, err := s.repo.ListFAQs(ctx)
	if err != nil {
		s.logger.Error("list faqs failed", zap.Error(err))
		return nil, storeError(err, "failed to list faqs")
	}
	return docs, nil
}
