package service

import (
	"fmt"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

type CatalogService struct {
	repo   domain.ProductRepository
	logger logger.Logger
}

func NewCatalogService(repo domain.ProductRepository, logger logger.Logger) domain.CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CatalogService) ListFeatured(limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 3
	}

	products, err := s.repo.FindFeatured(limit)
	if err != nil {
		return nil, fmt.Errorf("featured listing failed: %w", err)
	}

	return products, nil
}

func (s *CatalogService) ListAll() ([]*domain.Product, error) {
	products, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("catalog listing failed: %w", err)
	}

	return products, nil
}

func (s *CatalogService) GetByID(id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	return product, nil
}

func (s *CatalogService) CreateProduct(product *domain.Product) error {
	if err := s.repo.Create(product); err != nil {
		return fmt.Errorf("product creation failed: %w", err)
	}

	s.logger.Info("product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price,
		"stock":      product.Stock,
	})
	return nil
}

// DeleteProduct removes the product unconditionally. Purchases referencing
// it are kept; sales history survives catalog cleanup.
func (s *CatalogService) DeleteProduct(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("product deleted", map[string]interface{}{"product_id": id})
	return nil
}
