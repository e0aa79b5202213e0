package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/predict-win/internal/config"
	"github.com/predict-win/internal/domain"
)

// Reward row kinds
const (
	kindMilestone  = "milestone"
	kindClaimable  = "claimable"
	kindRedemption = "redemption"
)

// Catalog serves matches, races, rewards and notifications from PostgreSQL
type Catalog struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCatalog connects to PostgreSQL
func NewCatalog(cfg *config.PostgresConfig, logger *slog.Logger) (*Catalog, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Catalog{
		pool:   pool,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (c *Catalog) Close() {
	c.pool.Close()
}

// Ping checks the connection
func (c *Catalog) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS matches (
		id VARCHAR(64) PRIMARY KEY,
		position INT NOT NULL,
		sport VARCHAR(20) NOT NULL,
		title VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL,
		time VARCHAR(64) NOT NULL DEFAULT '',
		countdown VARCHAR(64) NOT NULL DEFAULT '',
		progress VARCHAR(64) NOT NULL DEFAULT '',
		teams JSONB,
		race JSONB
	)`,
	`CREATE TABLE IF NOT EXISTS races (
		id VARCHAR(64) PRIMARY KEY,
		number INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		venue VARCHAR(255) NOT NULL,
		time VARCHAR(64) NOT NULL,
		status VARCHAR(20) NOT NULL,
		time_to_start VARCHAR(64) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS horses (
		race_id VARCHAR(64) NOT NULL REFERENCES races(id) ON DELETE CASCADE,
		id INT NOT NULL,
		number INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		jockey VARCHAR(255) NOT NULL,
		odds DOUBLE PRECISION NOT NULL,
		tag VARCHAR(20) NOT NULL DEFAULT '',
		PRIMARY KEY (race_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS reward_items (
		kind VARCHAR(20) NOT NULL,
		id VARCHAR(64) NOT NULL,
		position INT NOT NULL,
		data JSONB NOT NULL,
		PRIMARY KEY (kind, id)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id VARCHAR(64) PRIMARY KEY,
		position INT NOT NULL,
		category VARCHAR(20) NOT NULL,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		time VARCHAR(64) NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_races_number ON races(number)`,
	`CREATE INDEX IF NOT EXISTS idx_reward_items_position ON reward_items(kind, position)`,
}

// RunMigrations executes database migrations
func (c *Catalog) RunMigrations(ctx context.Context) error {
	for _, migration := range migrations {
		if _, err := c.pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	c.logger.Info("database migrations completed")
	return nil
}

// Matches returns the home match cards in display order
func (c *Catalog) Matches(ctx context.Context) ([]domain.MatchSummary, error) {
	query := `
		SELECT id, sport, title, status, time, countdown, progress, teams, race
		FROM matches
		ORDER BY position
	`
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.MatchSummary
	for rows.Next() {
		var (
			m           domain.MatchSummary
			teams, race []byte
		)
		if err := rows.Scan(&m.ID, &m.Sport, &m.Title, &m.Status, &m.Time, &m.Countdown, &m.Progress, &teams, &race); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		if err := decodeOptional(teams, &m.Teams); err != nil {
			return nil, fmt.Errorf("decoding teams of %s: %w", m.ID, err)
		}
		if err := decodeOptional(race, &m.Race); err != nil {
			return nil, fmt.Errorf("decoding race of %s: %w", m.ID, err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

const raceColumns = `id, number, name, venue, time, status, time_to_start`

func scanRace(row pgx.Row) (domain.Race, error) {
	var r domain.Race
	err := row.Scan(&r.ID, &r.Number, &r.Name, &r.Venue, &r.Time, &r.Status, &r.TimeToStart)
	return r, err
}

// Races returns every race by number
func (c *Catalog) Races(ctx context.Context) ([]domain.Race, error) {
	rows, err := c.pool.Query(ctx, `SELECT `+raceColumns+` FROM races ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("listing races: %w", err)
	}
	defer rows.Close()

	var races []domain.Race
	for rows.Next() {
		r, err := scanRace(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning race: %w", err)
		}
		races = append(races, r)
	}
	return races, rows.Err()
}

// Race returns one race
func (c *Catalog) Race(ctx context.Context, id string) (domain.Race, error) {
	r, err := scanRace(c.pool.QueryRow(ctx, `SELECT `+raceColumns+` FROM races WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Race{}, domain.ErrRaceNotFound
		}
		return domain.Race{}, fmt.Errorf("getting race: %w", err)
	}
	return r, nil
}

// Horses returns the field of a race by saddle number
func (c *Catalog) Horses(ctx context.Context, raceID string) ([]domain.Horse, error) {
	query := `
		SELECT id, number, name, jockey, odds, tag
		FROM horses
		WHERE race_id = $1
		ORDER BY number
	`
	rows, err := c.pool.Query(ctx, query, raceID)
	if err != nil {
		return nil, fmt.Errorf("listing horses: %w", err)
	}
	defer rows.Close()

	var horses []domain.Horse
	for rows.Next() {
		var h domain.Horse
		if err := rows.Scan(&h.ID, &h.Number, &h.Name, &h.Jockey, &h.Odds, &h.Tag); err != nil {
			return nil, fmt.Errorf("scanning horse: %w", err)
		}
		horses = append(horses, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(horses) == 0 {
		if _, err := c.Race(ctx, raceID); err != nil {
			return nil, err
		}
	}
	return horses, nil
}

// Rewards returns the reward catalog
func (c *Catalog) Rewards(ctx context.Context) (domain.RewardCatalog, error) {
	rows, err := c.pool.Query(ctx, `SELECT kind, data FROM reward_items ORDER BY kind, position`)
	if err != nil {
		return domain.RewardCatalog{}, fmt.Errorf("listing rewards: %w", err)
	}
	defer rows.Close()

	var catalog domain.RewardCatalog
	for rows.Next() {
		var (
			kind string
			data []byte
		)
		if err := rows.Scan(&kind, &data); err != nil {
			return domain.RewardCatalog{}, fmt.Errorf("scanning reward: %w", err)
		}
		if err := addRewardItem(&catalog, kind, data); err != nil {
			c.logger.Warn("skipping reward row", "kind", kind, "error", err)
		}
	}
	return catalog, rows.Err()
}

// Notifications returns the notification list in display order
func (c *Catalog) Notifications(ctx context.Context) ([]domain.Notification, error) {
	query := `
		SELECT id, category, title, message, time, is_read
		FROM notifications
		ORDER BY position
	`
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Category, &n.Title, &n.Message, &n.Time, &n.IsRead); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// addRewardItem decodes one reward row into the catalog
func addRewardItem(catalog *domain.RewardCatalog, kind string, data []byte) error {
	switch kind {
	case kindMilestone:
		var m domain.MilestoneReward
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		catalog.Milestones = append(catalog.Milestones, m)
	case kindClaimable:
		var r domain.ClaimableReward
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		catalog.Claimables = append(catalog.Claimables, r)
	case kindRedemption:
		var r domain.Redemption
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		catalog.History = append(catalog.History, r)
	default:
		return fmt.Errorf("unknown reward kind %q", kind)
	}
	return nil
}

// decodeOptional unmarshals a nullable JSONB column into *T
func decodeOptional[T any](data []byte, out **T) error {
	if len(data) == 0 {
		*out = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*out = &v
	return nil
}

// encodeOptional marshals v for a nullable JSONB column
func encodeOptional[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
