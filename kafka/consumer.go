package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jingxi/marketplace/pkg/logger"
)

// EventHandler processes a single decoded order event.
type EventHandler func(ctx context.Context, event OrderPlacedEvent) error

// Consumer reads order events off a consumer group and dispatches them
// to handlers registered per event type.
type Consumer struct {
	group   sarama.ConsumerGroup
	groupID string
	topics  []string

	mu       sync.RWMutex
	handlers map[string]EventHandler
}

// NewConsumer joins the given consumer group on the given topics.
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return &Consumer{
		group:    group,
		groupID:  groupID,
		topics:   topics,
		handlers: make(map[string]EventHandler),
	}, nil
}

// RegisterHandler binds a handler to an event type. Events with no
// registered handler are logged and skipped.
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.mu.Lock()
	c.handlers[eventType] = handler
	c.mu.Unlock()
}

func (c *Consumer) handlerFor(eventType string) (EventHandler, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handlers[eventType]
	return h, ok
}

// Start begins consuming in the background until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	session := &groupSession{consumer: c}

	go func() {
		for {
			// Consume returns on every rebalance, so loop until
			// the context ends.
			if err := c.group.Consume(ctx, c.topics, session); err != nil {
				logger.Logger.Error().Err(err).Msg("Consumer session ended with error")
			}
			if ctx.Err() != nil {
				logger.Logger.Info().Msg("Consumer stopped")
				return
			}
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			logger.Logger.Error().Err(err).Msg("Consumer group error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")
	return nil
}

// Close shuts the consumer group down.
func (c *Consumer) Close() error {
	if c.group == nil {
		return nil
	}
	return c.group.Close()
}

// groupSession implements sarama.ConsumerGroupHandler.
type groupSession struct {
	consumer *Consumer
}

func (s *groupSession) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (s *groupSession) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (s *groupSession) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		s.dispatch(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// headerValue returns the value of the named record header, or "".
func headerValue(message *sarama.ConsumerMessage, key string) string {
	for _, h := range message.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

// extractTraceContext rebuilds the producer's trace context from record
// headers so the consumer span joins the original request trace.
func extractTraceContext(ctx context.Context, message *sarama.ConsumerMessage) context.Context {
	carrier := propagation.MapCarrier{}
	for _, key := range []string{"traceparent", "tracestate"} {
		if v := headerValue(message, key); v != "" {
			carrier[key] = v
		}
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

func (s *groupSession) dispatch(ctx context.Context, message *sarama.ConsumerMessage) {
	ctx = extractTraceContext(ctx, message)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume."+message.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	eventType := headerValue(message, "event_type")
	if eventType == "" {
		span.SetStatus(codes.Error, "missing event_type header")
		logger.Logger.Warn().
			Str("topic", message.Topic).
			Int64("offset", message.Offset).
			Msg("Discarding message without event_type header")
		return
	}
	span.SetAttributes(
		attribute.String("event.type", eventType),
		attribute.String("event.id", headerValue(message, "event_id")),
	)

	handler, ok := s.consumer.handlerFor(eventType)
	if !ok {
		span.SetStatus(codes.Error, "no handler registered")
		logger.Logger.Warn().
			Str("event_type", eventType).
			Msg("No handler registered for event type")
		return
	}

	var event OrderPlacedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode event")
		logger.Logger.Error().
			Err(err).
			Str("event_type", eventType).
			Msg("Failed to decode event payload")
		return
	}
	span.SetAttributes(
		attribute.String("order.id", event.OrderID),
		attribute.Int64("seller.id", int64(event.SellerID)),
	)

	if err := handler(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		logger.WithContext(ctx).Error().
			Err(err).
			Str("event_type", eventType).
			Str("event_id", event.EventID).
			Msg("Event handler failed")
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info(ctx).
		Str("event_type", eventType).
		Str("order_id", event.OrderID).
		Uint("seller_id", event.SellerID).
		Msg("Event handled")
}
