package services

import (
	"context"

	"github.com/Extra-Chill/extrachill-blocks/pkg/trivia"
)

// Storage defines the persistence surface for the block endpoints: vote
// counters with append-only voter sets, and trivia attempt aggregates.
// The adventure endpoint deliberately has no storage; all story state
// round-trips through the client.
type Storage interface {
	HealthChecker
	Closer

	// VoteCount returns the current count for a block instance. A never
	// voted-on instance counts as zero, not an error.
	VoteCount(ctx context.Context, postID int, instanceID string) (int64, error)

	// RecordVote appends the voter to the instance's voter set and
	// increments the count, returning the new count. A voter already in
	// the set gets voting.ErrAlreadyVoted and no increment.
	RecordVote(ctx context.Context, postID int, instanceID string, email string) (int64, error)

	// RecordAttempt folds one trivia attempt into its block's aggregate.
	RecordAttempt(ctx context.Context, attempt trivia.Attempt) error

	// BlockAggregate returns the rollup for one trivia block. A block with
	// no attempts yields a zero aggregate.
	BlockAggregate(ctx context.Context, blockID string) (*trivia.Aggregate, error)
}
