package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

// ScoredMember is a sorted-set member with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

// ZIncrBy increments member in the sorted set at key and refreshes the key TTL.
// Both commands go out in one round trip. ttl <= 0 leaves the expiry untouched.
func (s *Store) ZIncrBy(ctx context.Context, key, member string, by float64, ttl time.Duration) error {
	cmds := rueidis.Commands{
		s.b().Zincrby().Key(key).Increment(by).Member(member).Build(),
	}
	if ttl > 0 {
		cmds = append(cmds, s.b().Expire().Key(key).Seconds(int64(ttl.Seconds())).Build())
	}
	for _, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return wrapErr(OpZIncrBy, err)
		}
	}
	return nil
}

// ZTop returns up to n members with the highest scores, best first. A missing key yields an empty slice.
func (s *Store) ZTop(ctx context.Context, key string, n int) ([]ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}
	cmd := s.b().Zrange().Key(key).Min("0").Max(strconv.Itoa(n - 1)).Rev().Withscores().Build()
	scores, err := s.do(ctx, cmd).AsZScores()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, wrapErr(OpZRange, err)
	}

	out := make([]ScoredMember, 0, len(scores))
	for _, z := range scores {
		out = append(out, ScoredMember{Member: z.Member, Score: z.Score})
	}
	return out, nil
}

// Del removes keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	cmd := s.b().Del().Key(keys...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return wrapErr(OpDel, err)
	}
	return nil
}
