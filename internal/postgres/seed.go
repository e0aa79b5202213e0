package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/predict-win/internal/domain"
)

// SeedData is the catalog content written by Seed
type SeedData struct {
	Matches       []domain.MatchSummary
	Races         []domain.Race
	Horses        []domain.Horse
	Rewards       domain.RewardCatalog
	Notifications []domain.Notification
}

// Seed replaces the catalog with data in one transaction. Every race gets
// the same field of horses.
func (c *Catalog) Seed(ctx context.Context, data SeedData) error {
	batch, err := seedBatch(data)
	if err != nil {
		return err
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("seeding catalog statement %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing seed batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	c.logger.Info("seeded catalog",
		"matches", len(data.Matches),
		"races", len(data.Races),
		"horses", len(data.Horses)*len(data.Races),
		"notifications", len(data.Notifications),
	)
	return nil
}

// seedBatch queues the statements that replace the catalog
func seedBatch(data SeedData) (*pgx.Batch, error) {
	batch := &pgx.Batch{}
	batch.Queue(`TRUNCATE matches, horses, races, reward_items, notifications`)

	for i, m := range data.Matches {
		teams, err := encodeOptional(m.Teams)
		if err != nil {
			return nil, fmt.Errorf("encoding teams of %s: %w", m.ID, err)
		}
		race, err := encodeOptional(m.Race)
		if err != nil {
			return nil, fmt.Errorf("encoding race of %s: %w", m.ID, err)
		}
		batch.Queue(`
			INSERT INTO matches (id, position, sport, title, status, time, countdown, progress, teams, race)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, m.ID, i, string(m.Sport), m.Title, string(m.Status), m.Time, m.Countdown, m.Progress, teams, race)
	}

	for _, r := range data.Races {
		batch.Queue(`
			INSERT INTO races (id, number, name, venue, time, status, time_to_start)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.ID, r.Number, r.Name, r.Venue, r.Time, string(r.Status), r.TimeToStart)

		for _, h := range data.Horses {
			batch.Queue(`
				INSERT INTO horses (race_id, id, number, name, jockey, odds, tag)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, r.ID, h.ID, h.Number, h.Name, h.Jockey, h.Odds, string(h.Tag))
		}
	}

	queueReward := func(kind, id string, position int, v any) error {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", kind, id, err)
		}
		batch.Queue(`INSERT INTO reward_items (kind, id, position, data) VALUES ($1, $2, $3, $4)`,
			kind, id, position, payload)
		return nil
	}
	for i, m := range data.Rewards.Milestones {
		if err := queueReward(kindMilestone, m.ID, i, m); err != nil {
			return nil, err
		}
	}
	for i, r := range data.Rewards.Claimables {
		if err := queueReward(kindClaimable, r.ID, i, r); err != nil {
			return nil, err
		}
	}
	for i, r := range data.Rewards.History {
		if err := queueReward(kindRedemption, r.ID, i, r); err != nil {
			return nil, err
		}
	}

	for i, n := range data.Notifications {
		batch.Queue(`
			INSERT INTO notifications (id, position, category, title, message, time, is_read)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, n.ID, i, string(n.Category), n.Title, n.Message, n.Time, n.IsRead)
	}

	return batch, nil
}
