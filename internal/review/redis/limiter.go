package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// VoteLimiter enforces one trust vote per review per caller per day, the only
// abuse-control rule the site carries. The claim is a SetNX with a TTL, so an
// expired window frees the vote automatically.
type VoteLimiter struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewVoteLimiter(client *redis.Client, ttl time.Duration) *VoteLimiter {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &VoteLimiter{Client: client, TTL: ttl}
}

func voteKey(reviewID, callerID string) string {
	return fmt.Sprintf("vote_limit:%s:%s", reviewID, callerID)
}

// Claim reserves the caller's vote for the review. It returns false when the
// caller already voted inside the window.
func (l *VoteLimiter) Claim(ctx context.Context, reviewID, callerID string) (bool, error) {
	ok, err := l.Client.SetNX(ctx, voteKey(reviewID, callerID), time.Now().Format(time.RFC3339), l.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("vote limiter claim: %w", err)
	}
	return ok, nil
}

// Release frees a claim, used to roll back when persisting the vote fails.
func (l *VoteLimiter) Release(ctx context.Context, reviewID, callerID string) error {
	return l.Client.Del(ctx, voteKey(reviewID, callerID)).Err()
}
