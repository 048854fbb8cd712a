package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Extra-Chill/extrachill-blocks/pkg/trivia"
)

const attemptsKey = "trivia:attempts"

// AttemptQueue buffers trivia attempts between the log-attempt endpoint
// and the aggregation worker. The endpoint only ever enqueues; attempts
// are folded into per-block aggregates asynchronously.
type AttemptQueue struct {
	client *Client
}

func NewAttemptQueue(client *Client) *AttemptQueue {
	return &AttemptQueue{
		client: client,
	}
}

// Enqueue appends one attempt to the end of the queue.
func (q *AttemptQueue) Enqueue(ctx context.Context, attempt trivia.Attempt) error {
	payload, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}
	if err := q.client.rdb.RPush(ctx, attemptsKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue attempt: %w", err)
	}
	return nil
}

// DequeueBatch removes and returns up to limit attempts from the front of
// the queue. Entries that fail to decode are dropped with a warning so a
// single corrupt record can never wedge the worker.
func (q *AttemptQueue) DequeueBatch(ctx context.Context, limit int) ([]trivia.Attempt, error) {
	if limit <= 0 {
		return nil, nil
	}

	raw, err := q.client.rdb.LPopCount(ctx, attemptsKey, limit).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Empty queue
		}
		return nil, fmt.Errorf("failed to dequeue attempts: %w", err)
	}

	attempts := make([]trivia.Attempt, 0, len(raw))
	for _, entry := range raw {
		var a trivia.Attempt
		if err := json.Unmarshal([]byte(entry), &a); err != nil {
			q.client.logger.Warn("Dropping malformed attempt record", "error", err)
			continue
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// Depth returns the number of attempts waiting in the queue.
func (q *AttemptQueue) Depth(ctx context.Context) (int64, error) {
	depth, err := q.client.rdb.LLen(ctx, attemptsKey).Result()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to read queue depth: %w", err)
	}
	return depth, nil
}
