package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"allocation-tracker/utils"

	"github.com/segmentio/kafka-go"
)

var readRetryDelay = time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaConfig selects the brokers and topic used to fan events out across instances
type KafkaConfig struct {
	Brokers []string
	Topic   string
	// GroupID must be unique per instance so that every instance sees every event
	GroupID string
}

// KafkaRelay publishes events to a Kafka topic and feeds the events consumed from it into the local hub.
// When a write fails the event is still delivered to local subscribers.
type KafkaRelay struct {
	writer messageWriter
	reader messageReader
	local  Publisher
	topic  string
}

// NewKafkaRelay creates a relay delivering into local
func NewKafkaRelay(cfg KafkaConfig, local Publisher) *KafkaRelay {
	r := &KafkaRelay{local: local, topic: cfg.Topic}
	r.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 10 * time.Millisecond,
		Completion:   r.onWritten,
	}
	r.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    1 << 20,
		MaxWait:     250 * time.Millisecond,
	})
	return r
}

// Publish hands ev to the Kafka writer; keyed by cycle so one cycle's events stay ordered
func (r *KafkaRelay) Publish(ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		utils.Error("kafka relay: marshal event", map[string]any{"type": ev.Type, "error": err.Error()})
		r.local.Publish(ev)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msg := kafka.Message{Key: []byte(ev.CycleID), Value: body}
	if err := r.writer.WriteMessages(ctx, msg); err != nil {
		r.onWritten([]kafka.Message{msg}, err)
	}
}

func (r *KafkaRelay) onWritten(msgs []kafka.Message, err error) {
	if err == nil {
		return
	}
	utils.Warn("kafka relay: write failed, delivering locally", map[string]any{"topic": r.topic, "count": len(msgs), "error": err.Error()})
	for _, m := range msgs {
		var ev Event
		if jsonErr := json.Unmarshal(m.Value, &ev); jsonErr == nil {
			r.local.Publish(ev)
		}
	}
}

// Run consumes the topic until ctx is cancelled, republishing every event into the local hub.
// Read failures are logged and retried; the relay never takes the process down.
func (r *KafkaRelay) Run(ctx context.Context) error {
	utils.Info("kafka relay started", map[string]any{"topic": r.topic})
	for {
		msg, err := r.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				utils.Info("kafka relay stopped", map[string]any{"topic": r.topic})
				return nil
			}
			utils.Warn("kafka relay: read message", map[string]any{"topic": r.topic, "error": err.Error()})
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var ev Event
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			utils.Warn("kafka relay: skipping malformed event", map[string]any{"offset": msg.Offset, "error": err.Error()})
			continue
		}
		r.local.Publish(ev)
	}
}

// Close flushes the writer and stops the reader
func (r *KafkaRelay) Close() error {
	return errors.Join(r.writer.Close(), r.reader.Close())
}
