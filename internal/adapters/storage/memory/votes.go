package memory

import (
	"context"
	"sync"

	"pupper-backend/internal/domain/votes"
)

type VoteRepository struct {
	mu    sync.RWMutex
	items map[string]votes.Vote
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{items: make(map[string]votes.Vote)}
}

func voteKey(userID, dogID string) string {
	return userID + "/" + dogID
}

func (r *VoteRepository) Put(_ context.Context, v votes.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[voteKey(v.UserID, v.DogID)] = v
	return nil
}

func (r *VoteRepository) Get(_ context.Context, userID, dogID string) (votes.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[voteKey(userID, dogID)]
	if !ok {
		return votes.Vote{}, votes.ErrNotFound
	}
	return v, nil
}
