package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/predict-win/internal/config"
	"github.com/predict-win/internal/domain"
)

// LeaderboardStore serves leaderboard scopes from Redis sorted sets.
// Member ids index player info hashes holding the display fields.
type LeaderboardStore struct {
	client *redis.Client
	selfID string
	logger *slog.Logger
}

// NewLeaderboardStore connects to Redis. selfID is the member id of the
// signed-in user.
func NewLeaderboardStore(cfg *config.RedisConfig, selfID string, logger *slog.Logger) (*LeaderboardStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &LeaderboardStore{
		client: client,
		selfID: selfID,
		logger: logger,
	}, nil
}

// Close closes the Redis connection
func (s *LeaderboardStore) Close() error {
	return s.client.Close()
}

// Ping checks the connection
func (s *LeaderboardStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func scoresKey(scope domain.Scope) string {
	return fmt.Sprintf("leaderboard:%s:scores", scope)
}

func playerInfoKey(playerID string) string {
	return fmt.Sprintf("player:%s:info", playerID)
}

// Leaderboard returns the top limit entries of a scope and the signed-in
// user's own entry. A user without a score gets a zero entry with rank 0.
func (s *LeaderboardStore) Leaderboard(ctx context.Context, scope domain.Scope, limit int) ([]domain.LeaderboardEntry, domain.LeaderboardEntry, error) {
	key := scoresKey(scope)

	results, err := s.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, domain.LeaderboardEntry{}, fmt.Errorf("getting top %d of %s: %w", limit, scope, err)
	}

	pipe := s.client.Pipeline()
	infoCmds := make([]*redis.MapStringStringCmd, len(results))
	for i, z := range results {
		infoCmds[i] = pipe.HGetAll(ctx, playerInfoKey(member(z)))
	}
	rankCmd := pipe.ZRevRank(ctx, key, s.selfID)
	scoreCmd := pipe.ZScore(ctx, key, s.selfID)
	selfInfoCmd := pipe.HGetAll(ctx, playerInfoKey(s.selfID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, domain.LeaderboardEntry{}, fmt.Errorf("getting %s player info: %w", scope, err)
	}

	infos := make([]map[string]string, len(infoCmds))
	for i, cmd := range infoCmds {
		infos[i] = cmd.Val()
	}
	entries := buildEntries(results, infos, s.selfID)

	self := domain.LeaderboardEntry{ID: s.selfID, IsCurrentUser: true}
	applyInfo(&self, selfInfoCmd.Val())
	if rank, err := rankCmd.Result(); err == nil {
		self.Rank = rank + 1
		self.Points = int64(scoreCmd.Val())
	}

	return entries, self, nil
}

// Seed replaces a scope with the given entries. Ranks are implied by the
// points; the self entry is stored like any other member.
func (s *LeaderboardStore) Seed(ctx context.Context, scope domain.Scope, entries []domain.LeaderboardEntry, self domain.LeaderboardEntry) error {
	key := scoresKey(scope)
	all := append(append([]domain.LeaderboardEntry(nil), entries...), self)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		for _, e := range all {
			pipe.ZAdd(ctx, key, redis.Z{Score: float64(e.Points), Member: e.ID})
			pipe.HSet(ctx, playerInfoKey(e.ID), "username", e.Username, "avatar", e.Avatar)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seeding %s leaderboard: %w", scope, err)
	}

	s.logger.Info("seeded leaderboard", "scope", scope, "entries", len(all))
	return nil
}

// buildEntries turns sorted set results into ranked entries. infos holds
// the player hash of each result, possibly empty.
func buildEntries(results []redis.Z, infos []map[string]string, selfID string) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, len(results))
	for i, z := range results {
		id := member(z)
		entries[i] = domain.LeaderboardEntry{
			ID:            id,
			Rank:          int64(i + 1),
			Username:      id,
			Points:        int64(z.Score),
			IsCurrentUser: id == selfID,
		}
		if i < len(infos) {
			applyInfo(&entries[i], infos[i])
		}
	}
	return entries
}

func applyInfo(e *domain.LeaderboardEntry, info map[string]string) {
	if name := info["username"]; name != "" {
		e.Username = name
	}
	e.Avatar = info["avatar"]
}

func member(z redis.Z) string {
	switch m := z.Member.(type) {
	case string:
		return m
	default:
		return fmt.Sprint(m)
	}
}
