package event

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
)

// Producer 事件生产者, 房间完成等事件经此投递到 kafka
type Producer interface {
	Produce(ctx context.Context, msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
	Close() error
}

type SyncProducer struct {
	producer sarama.SyncProducer
}

var _ Producer = (*SyncProducer)(nil)

func NewSyncProducer(brokers []string) (*SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("NewSyncProducer failed at sarama.NewSyncProducer: %w", err)
	}
	return &SyncProducer{producer: producer}, nil
}

func (p *SyncProducer) Produce(ctx context.Context, msg *sarama.ProducerMessage) (int32, int64, error) {
	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	default:
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return 0, 0, fmt.Errorf("Produce failed at SendMessage: %w", err)
	}
	return partition, offset, nil
}

func (p *SyncProducer) Close() error {
	return p.producer.Close()
}
