package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"jewelry-store/internal/config"
	"jewelry-store/internal/service"
)

// Consumer tails the product topic and keeps the redis read-cache warm: any
// product mutation drops the stale list so the next read reloads it.
type Consumer struct {
	productSvc *service.ProductService
}

func NewConsumer(productSvc *service.ProductService) *Consumer {
	return &Consumer{productSvc: productSvc}
}

// Run reads product events until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  config.KafkaBrokerURLs(),
		Topic:    config.ProductTopic,
		GroupID:  "storefront-cache-group",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}

		c.processMessage(ctx, msg)
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	var event service.ProductEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	// key -> "product.created.<id>", "product.updated.<id>" or "product.deleted.<id>"
	parts := strings.Split(string(msg.Key), ".")
	if len(parts) != 3 {
		log.Error().Msgf("Unknown message key: %s", string(msg.Key))
		return
	}

	switch eventType := parts[1]; eventType {
	case "created", "updated", "deleted":
		if _, err := c.productSvc.List(ctx); err != nil {
			log.Error().Msgf("Error refreshing product cache: %v", err)
		}
	default:
		log.Error().Msgf("Unknown product event type: %s", eventType)
	}
}
