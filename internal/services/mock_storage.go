package services

import (
	"context"
	"sync"

	"github.com/Extra-Chill/extrachill-blocks/pkg/trivia"
	"github.com/Extra-Chill/extrachill-blocks/pkg/voting"
)

// MockStorage is an in-memory Storage implementation for handler tests.
type MockStorage struct {
	PingFunc          func(ctx context.Context) error
	RecordVoteFunc    func(ctx context.Context, postID int, instanceID, email string) (int64, error)
	VoteCountFunc     func(ctx context.Context, postID int, instanceID string) (int64, error)
	RecordAttemptFunc func(ctx context.Context, attempt trivia.Attempt) error

	mu         sync.Mutex
	counts     map[string]int64
	voters     map[string]map[string]bool
	aggregates map[string]*trivia.Aggregate
}

// Ensure MockStorage implements Storage
var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		counts:     make(map[string]int64),
		voters:     make(map[string]map[string]bool),
		aggregates: make(map[string]*trivia.Aggregate),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockStorage) Close() error { return nil }

func (m *MockStorage) VoteCount(ctx context.Context, postID int, instanceID string) (int64, error) {
	if m.VoteCountFunc != nil {
		return m.VoteCountFunc(ctx, postID, instanceID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[voteCountKey(postID, instanceID)], nil
}

func (m *MockStorage) RecordVote(ctx context.Context, postID int, instanceID string, email string) (int64, error) {
	if m.RecordVoteFunc != nil {
		return m.RecordVoteFunc(ctx, postID, instanceID, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := voteCountKey(postID, instanceID)
	if m.voters[key] == nil {
		m.voters[key] = make(map[string]bool)
	}
	if m.voters[key][email] {
		return 0, voting.ErrAlreadyVoted
	}
	m.voters[key][email] = true
	m.counts[key]++
	return m.counts[key], nil
}

func (m *MockStorage) RecordAttempt(ctx context.Context, attempt trivia.Attempt) error {
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, attempt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	agg, ok := m.aggregates[attempt.BlockID]
	if !ok {
		agg = &trivia.Aggregate{BlockID: attempt.BlockID}
		m.aggregates[attempt.BlockID] = agg
	}
	agg.Attempts++
	if attempt.IsCorrect {
		agg.Correct++
	}
	return nil
}

func (m *MockStorage) BlockAggregate(ctx context.Context, blockID string) (*trivia.Aggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if agg, ok := m.aggregates[blockID]; ok {
		copied := *agg
		return &copied, nil
	}
	return &trivia.Aggregate{BlockID: blockID}, nil
}
