package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/palettelab/color-agent/internal/models"
	"github.com/palettelab/color-agent/internal/parser"
	"github.com/palettelab/color-agent/internal/resolver"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Consumer reads raw multi-color requests off a Redis stream and resolves
// them. The stream is an intake transport only; results are logged, never
// stored.
type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	resolver     *resolver.Resolver
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, stream string, groupID string, consumerName string, res *resolver.Resolver, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		resolver:     res,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var textReq models.BatchTextRequest
	if err := json.Unmarshal([]byte(payload), &textReq); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	queries := parser.Parse(textReq.RawText)
	if len(queries) == 0 {
		c.logger.Warn().Str("id", msg.ID).Msg("Empty color request, skipping")
		c.ack(ctx, msg.ID)
		return
	}

	results := c.resolver.ResolveMany(ctx, queries)

	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
	}

	c.logger.Info().
		Str("id", msg.ID).
		Int("resolved", len(results)-failed).
		Int("failed", failed).
		Msg("Color request processed")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
