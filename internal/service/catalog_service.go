package service

import (
	"context"
	"fmt"

	"jewelry-store/internal/entity"
)

// CatalogStore is the slice of the catalog repository the services need.
type CatalogStore interface {
	ListMetals(ctx context.Context) ([]*entity.Metal, error)
	GetMetal(ctx context.Context, id int) (*entity.Metal, error)
	ListGems(ctx context.Context) ([]*entity.Gem, error)
	GetGem(ctx context.Context, id int) (*entity.Gem, error)
	ListLinks(ctx context.Context) ([]*entity.Link, error)
	GetLink(ctx context.Context, id int) (*entity.Link, error)
	ListRings(ctx context.Context) ([]*entity.Ring, error)
	CreateRing(ctx context.Context, ring *entity.Ring) (*entity.Ring, error)
	CreateNecklace(ctx context.Context, necklace *entity.Necklace) (*entity.Necklace, error)
}

// CatalogService serves the reference data that populates the storefront's
// configurator and creates the geometry rows a product references.
type CatalogService struct {
	repo CatalogStore
}

func NewCatalogService(repo CatalogStore) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListMetals(ctx context.Context) ([]*entity.Metal, error) {
	return s.repo.ListMetals(ctx)
}

func (s *CatalogService) ListGems(ctx context.Context) ([]*entity.Gem, error) {
	return s.repo.ListGems(ctx)
}

func (s *CatalogService) ListLinks(ctx context.Context) ([]*entity.Link, error) {
	return s.repo.ListLinks(ctx)
}

func (s *CatalogService) ListRings(ctx context.Context) ([]*entity.Ring, error) {
	return s.repo.ListRings(ctx)
}

func (s *CatalogService) CreateRing(ctx context.Context, ring *entity.Ring) (*entity.Ring, error) {
	if ring.Name == "" || ring.Size <= 0 || ring.Volume <= 0 {
		return nil, fmt.Errorf("%w: name, size and volume are required", entity.ErrValidation)
	}

	created, err := s.repo.CreateRing(ctx, ring)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating ring")
		return nil, err
	}
	return created, nil
}

func (s *CatalogService) CreateNecklace(ctx context.Context, necklace *entity.Necklace) (*entity.Necklace, error) {
	if necklace.Name == "" || necklace.LinkID == 0 || necklace.LinkCount <= 0 {
		return nil, fmt.Errorf("%w: name, linkId and linkCount are required", entity.ErrValidation)
	}

	// Reject references to links that do not exist.
	if _, err := s.repo.GetLink(ctx, necklace.LinkID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateNecklace(ctx, necklace)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating necklace")
		return nil, err
	}
	return created, nil
}
