package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type BookingSubmitted struct {
	Kind        string    `json:"kind"`
	ItemID      int64     `json:"item_id"`
	People      int       `json:"people"`
	Success     bool      `json:"success"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Publisher interface {
	PublishBooking(ctx context.Context, event BookingSubmitted) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zerolog.Logger
}

// New returns a kafka backed publisher, or a no-op one when no brokers are configured.
func New(brokers []string, topic string, log *zerolog.Logger) Publisher {
	if len(brokers) == 0 {
		return Noop{}
	}

	return NewKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}, topic, log)
}

func NewKafkaPublisher(writer messageWriter, topic string, log *zerolog.Logger) *kafkaPublisher {
	logger := log.With().Str("label", "events").Str("topic", topic).Logger()
	return &kafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: &logger,
	}
}

func (p *kafkaPublisher) PublishBooking(ctx context.Context, event BookingSubmitted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.Kind + ":" + strconv.FormatInt(event.ItemID, 10)),
		Value: data,
		Time:  event.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to write booking event: %w", err)
	}

	p.logger.Debug().
		Str("kind", event.Kind).
		Int64("item_id", event.ItemID).
		Bool("success", event.Success).
		Msg("booking event published")

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type Noop struct{}

func (Noop) PublishBooking(context.Context, BookingSubmitted) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
