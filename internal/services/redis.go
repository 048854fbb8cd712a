package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Extra-Chill/extrachill-blocks/pkg/trivia"
	"github.com/Extra-Chill/extrachill-blocks/pkg/voting"
)

// RedisService implements the Storage interface using Redis
type RedisService struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisService implements Storage interface
var _ Storage = (*RedisService)(nil)

// NewRedisService creates a new Redis service instance
func NewRedisService(redisAddr string, logger *slog.Logger) *RedisService {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	return &RedisService{
		client: rdb,
		logger: logger,
	}
}

func voteCountKey(postID int, instanceID string) string {
	return fmt.Sprintf("vote:%d:%s:count", postID, instanceID)
}

func votersKey(postID int, instanceID string) string {
	return fmt.Sprintf("vote:%d:%s:voters", postID, instanceID)
}

func aggregateKey(blockID string) string {
	return fmt.Sprintf("trivia:aggregate:%s", blockID)
}

func (r *RedisService) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	r.logger.Debug("Redis ping successful", "result", cmd.Val())
	return nil
}

func (r *RedisService) VoteCount(ctx context.Context, postID int, instanceID string) (int64, error) {
	val, err := r.client.Get(ctx, voteCountKey(postID, instanceID)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil // Never voted on is zero, not an error
		}
		r.logger.Error("Redis GET failed", "key", voteCountKey(postID, instanceID), "error", err)
		return 0, fmt.Errorf("failed to read vote count: %w", err)
	}
	return val, nil
}

func (r *RedisService) RecordVote(ctx context.Context, postID int, instanceID string, email string) (int64, error) {
	added, err := r.client.SAdd(ctx, votersKey(postID, instanceID), email).Result()
	if err != nil {
		r.logger.Error("Redis SADD failed", "key", votersKey(postID, instanceID), "error", err)
		return 0, fmt.Errorf("failed to record voter: %w", err)
	}
	if added == 0 {
		return 0, voting.ErrAlreadyVoted
	}

	count, err := r.client.Incr(ctx, voteCountKey(postID, instanceID)).Result()
	if err != nil {
		r.logger.Error("Redis INCR failed", "key", voteCountKey(postID, instanceID), "error", err)
		return 0, fmt.Errorf("failed to increment vote count: %w", err)
	}

	r.logger.Debug("Vote recorded", "post_id", postID, "instance_id", instanceID, "count", count)
	return count, nil
}

func (r *RedisService) RecordAttempt(ctx context.Context, attempt trivia.Attempt) error {
	key := aggregateKey(attempt.BlockID)

	if err := r.client.HIncrBy(ctx, key, "attempts", 1).Err(); err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempt.IsCorrect {
		if err := r.client.HIncrBy(ctx, key, "correct", 1).Err(); err != nil {
			return fmt.Errorf("failed to increment correct answers: %w", err)
		}
	}

	r.logger.Debug("Attempt aggregated", "block_id", attempt.BlockID, "correct", attempt.IsCorrect)
	return nil
}

func (r *RedisService) BlockAggregate(ctx context.Context, blockID string) (*trivia.Aggregate, error) {
	fields, err := r.client.HGetAll(ctx, aggregateKey(blockID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read aggregate: %w", err)
	}

	agg := &trivia.Aggregate{BlockID: blockID}
	if v, ok := fields["attempts"]; ok {
		if _, err := fmt.Sscanf(v, "%d", &agg.Attempts); err != nil {
			return nil, fmt.Errorf("malformed attempts field %q: %w", v, err)
		}
	}
	if v, ok := fields["correct"]; ok {
		if _, err := fmt.Sscanf(v, "%d", &agg.Correct); err != nil {
			return nil, fmt.Errorf("malformed correct field %q: %w", v, err)
		}
	}
	return agg, nil
}

func (r *RedisService) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}

	r.logger.Info("Redis connection closed")
	return nil
}

// GetClient returns the underlying Redis client for direct operations
func (r *RedisService) GetClient() *redis.Client {
	return r.client
}

func (r *RedisService) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}
