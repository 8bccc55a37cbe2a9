package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"jewelry-store/internal/entity"
	"jewelry-store/internal/pricing"
)

// QuoteService derives mass and price for a configured piece from the
// stored metal, gem and geometry rows. Metals and gems change rarely, so
// lookups go through the redis cache when one is configured.
type QuoteService struct {
	catalog CatalogStore
	rdb     *redis.Client
}

func NewQuoteService(catalog CatalogStore, rdb *redis.Client) *QuoteService {
	return &QuoteService{catalog: catalog, rdb: rdb}
}

// NecklaceQuote prices a chain of linkCount links of the given link type.
// gemID may be zero for a piece without a gem.
func (s *QuoteService) NecklaceQuote(ctx context.Context, metalID, gemID, linkID, linkCount int) (*entity.Quote, error) {
	metal, err := s.getMetal(ctx, metalID)
	if err != nil {
		return nil, err
	}

	link, err := s.catalog.GetLink(ctx, linkID)
	if err != nil {
		return nil, err
	}

	gemPrice, err := s.gemPrice(ctx, gemID)
	if err != nil {
		return nil, err
	}

	return pricing.NecklaceQuote(linkCount, link.Volume, metal.Density, metal.CostPerGram, gemPrice)
}

// RingQuote prices a ring of the given metal volume. gemID may be zero.
func (s *QuoteService) RingQuote(ctx context.Context, metalID, gemID int, volume float64) (*entity.Quote, error) {
	metal, err := s.getMetal(ctx, metalID)
	if err != nil {
		return nil, err
	}

	gemPrice, err := s.gemPrice(ctx, gemID)
	if err != nil {
		return nil, err
	}

	return pricing.RingQuote(volume, metal.Density, metal.CostPerGram, gemPrice)
}

func (s *QuoteService) gemPrice(ctx context.Context, gemID int) (float64, error) {
	if gemID == 0 {
		return 0, nil
	}
	gem, err := s.getGem(ctx, gemID)
	if err != nil {
		return 0, err
	}
	return gem.Price, nil
}

func (s *QuoteService) getMetal(ctx context.Context, id int) (*entity.Metal, error) {
	key := fmt.Sprintf("metal:%d", id)
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error reading metal %d from cache", id)
		}
		if cached != "" {
			var metal entity.Metal
			if err := json.Unmarshal([]byte(cached), &metal); err == nil {
				return &metal, nil
			}
		}
	}

	metal, err := s.catalog.GetMetal(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache(ctx, key, metal)
	return metal, nil
}

func (s *QuoteService) getGem(ctx context.Context, id int) (*entity.Gem, error) {
	key := fmt.Sprintf("gem:%d", id)
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error reading gem %d from cache", id)
		}
		if cached != "" {
			var gem entity.Gem
			if err := json.Unmarshal([]byte(cached), &gem); err == nil {
				return &gem, nil
			}
		}
	}

	gem, err := s.catalog.GetGem(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache(ctx, key, gem)
	return gem, nil
}

func (s *QuoteService) cache(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error caching %s", key)
	}
}
