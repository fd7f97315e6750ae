package services

import (
	"context"

	"github.com/akjilan/digital-ecommerce/models"
	"github.com/akjilan/digital-ecommerce/repository"

	"go.uber.org/zap"
)

// CatalogService defines the public catalog query operations.
type CatalogService interface {
	ListProducts(ctx context.Context, spec models.ProductFilterSpec) (*models.PaginatedResult[models.ProductSummary], error)
}

type catalogServiceImpl struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repository.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{repo: repo, logger: logger}
}

// ListProducts returns one page of active products matching spec. A store
// failure is reported as ErrStoreUnavailable, never as an empty page.
func (s *catalogServiceImpl) ListProducts(ctx context.Context, spec models.ProductFilterSpec) (*models.PaginatedResult[models.ProductSummary], error) {
	products, total, err := s.repo.FindPage(ctx, spec)
	if err != nil {
		s.logger.Error("Failed to query catalog page",
			zap.Int("page", spec.Page),
			zap.Int("page_size", spec.PageSize),
			zap.Error(err),
		)
		return nil, storeUnavailable(err)
	}

	if want := models.ExpectedPageLen(total, spec.Page, spec.PageSize); len(products) > want {
		products = products[:want]
	}

	return models.NewPaginatedResult(models.Summaries(products), spec.Page, spec.PageSize, total), nil
}
