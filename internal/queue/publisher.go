package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"crossmatch/internal/arb"
)

// PublishOpportunities writes analyzed opportunities to the opportunity
// topic, keyed by pair id so re-detections of the same pair land on the same
// partition.
func PublishOpportunities(ctx context.Context, writer *kafka.Writer, ops []arb.Opportunity) error {
	if writer == nil || len(ops) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(ops))
	for i := range ops {
		payload, err := json.Marshal(&ops[i])
		if err != nil {
			return fmt.Errorf("marshal opportunity %s: %w", ops[i].ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ops[i].Pair.PairID),
			Value: payload,
		})
	}
	return writer.WriteMessages(ctx, msgs...)
}
