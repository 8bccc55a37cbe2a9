package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"

	"jewelry-store/internal/entity"
)

const (
	productListCacheKey = "products"
	productCacheTTL     = 1 * time.Minute
)

// ProductStore is the slice of the product repository the service needs.
type ProductStore interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	CreateCustom(ctx context.Context, product *entity.Product, necklace *entity.Necklace, ring *entity.Ring) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id int) error
}

// ProductEvent is the JSON payload published to the product topic on every
// mutation. The message key is "product.<type>.<id>".
type ProductEvent struct {
	Type    string          `json:"type"` // created, updated, deleted
	Product *entity.Product `json:"product"`
}

type ProductService struct {
	repo        ProductStore
	rdb         *redis.Client
	kafkaWriter *kafka.Writer
}

// NewProductService creates a new instance of ProductService. rdb and
// kafkaWriter may be nil; caching and event publishing are then skipped.
func NewProductService(repo ProductStore, rdb *redis.Client, kafkaWriter *kafka.Writer) *ProductService {
	return &ProductService{repo: repo, rdb: rdb, kafkaWriter: kafkaWriter}
}

// List returns all products, served from the redis cache when it is warm.
func (s *ProductService) List(ctx context.Context) ([]*entity.Product, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, productListCacheKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msg("Error reading product cache")
		}
		if cached != "" {
			var products []*entity.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
			logger.Warn().Msg("Dropping unreadable product cache entry")
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(products); err == nil {
			if err := s.rdb.Set(ctx, productListCacheKey, data, productCacheTTL).Err(); err != nil {
				logger.Error().Err(err).Msg("Error warming product cache")
			}
		}
	}

	return products, nil
}

// validateDraft checks the required fields and the necklace/ring
// exclusivity: exactly one of the two references must be set.
func validateDraft(product *entity.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: name is required", entity.ErrValidation)
	}
	if product.Mass <= 0 || product.Price < 0 {
		return fmt.Errorf("%w: mass must be positive and price must not be negative", entity.ErrValidation)
	}
	if product.MetalID == 0 || product.GemID == 0 || product.CreatorID == 0 {
		return fmt.Errorf("%w: metalId, gemId and creatorId are required", entity.ErrValidation)
	}
	if (product.NecklaceID == nil) == (product.RingID == nil) {
		return fmt.Errorf("%w: exactly one of necklaceId and ringId must be set", entity.ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateDraft(product); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}

	s.afterMutation(ctx, "created", created)
	return created, nil
}

// CreateCustom creates the geometry row and the product referencing it in
// one transaction. The caller supplies exactly one of necklace and ring.
func (s *ProductService) CreateCustom(ctx context.Context, product *entity.Product, necklace *entity.Necklace, ring *entity.Ring) (*entity.Product, error) {
	if (necklace == nil) == (ring == nil) {
		return nil, fmt.Errorf("%w: exactly one of necklace and ring must be set", entity.ErrValidation)
	}

	created, err := s.repo.CreateCustom(ctx, product, necklace, ring)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating custom product")
		return nil, err
	}

	s.afterMutation(ctx, "created", created)
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product.ID == 0 {
		return nil, fmt.Errorf("%w: product id is required", entity.ErrValidation)
	}
	if err := validateDraft(product); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", product.ID)
		return nil, err
	}

	s.afterMutation(ctx, "updated", updated)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}

	s.afterMutation(ctx, "deleted", &entity.Product{ID: id})
	return nil
}

// afterMutation invalidates the list cache and publishes the change event.
// Both are best effort; the row is already committed.
func (s *ProductService) afterMutation(ctx context.Context, eventType string, product *entity.Product) {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, productListCacheKey).Err(); err != nil {
			logger.Error().Err(err).Msg("Error invalidating product cache")
		}
	}

	if s.kafkaWriter != nil {
		if err := s.publishEvent(ctx, eventType, product); err != nil {
			logger.Error().Err(err).Msgf("Error publishing product %s event", eventType)
		}
	}
}

func (s *ProductService) publishEvent(ctx context.Context, eventType string, product *entity.Product) error {
	payload, err := json.Marshal(ProductEvent{Type: eventType, Product: product})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("product.%s.%d", eventType, product.ID)),
		Value: payload,
	}
	return s.kafkaWriter.WriteMessages(ctx, msg)
}
