package screen

import (
	"context"
	"fmt"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Rewards shows the points balance and lets the user claim rewards.
// Claims only change the balance held by this screen.
type Rewards struct {
	base
	balance   int64
	milestone int64
	catalog   domain.RewardCatalog
	selected  *domain.ClaimableReward
}

// RewardsView is the rendered rewards screen
type RewardsView struct {
	Points        int64                    `json:"points"`
	NextMilestone int64                    `json:"next_milestone"`
	Progress      int                      `json:"progress"`
	Milestones    []domain.MilestoneReward `json:"milestones"`
	Claimables    []ClaimableCard          `json:"claimables"`
	History       []domain.Redemption      `json:"history"`
	Dialog        *ClaimDialog             `json:"dialog,omitempty"`
}

// ClaimableCard is a rendered claimable reward
type ClaimableCard struct {
	domain.ClaimableReward
	Affordable bool `json:"affordable"`
}

// ClaimDialog is the open claim confirmation
type ClaimDialog struct {
	Reward     domain.ClaimableReward `json:"reward"`
	Balance    int64                  `json:"balance"`
	Remaining  int64                  `json:"remaining"`
	Affordable bool                   `json:"affordable"`
}

// NewRewards loads the rewards store
func NewRewards(ctx context.Context, env Env) (*Rewards, error) {
	user, err := env.Sources.Profiles.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	catalog, err := env.Sources.Rewards.Rewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rewards: %w", err)
	}
	r := &Rewards{balance: user.Points, milestone: user.NextMilestone, catalog: catalog}
	r.init(env)
	return r, nil
}

// Name identifies the screen
func (r *Rewards) Name() route.Screen { return route.ScreenRewards }

// View renders the screen state
func (r *Rewards) View() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := RewardsView{
		Points:        r.balance,
		NextMilestone: r.milestone,
		Progress:      percent(r.balance, r.milestone),
		Milestones:    r.catalog.Milestones,
		Claimables:    make([]ClaimableCard, len(r.catalog.Claimables)),
		History:       r.catalog.History,
	}
	for i, c := range r.catalog.Claimables {
		v.Claimables[i] = ClaimableCard{ClaimableReward: c, Affordable: c.PointsCost <= r.balance}
	}
	if r.selected != nil {
		v.Dialog = &ClaimDialog{
			Reward:     *r.selected,
			Balance:    r.balance,
			Remaining:  r.balance - r.selected.PointsCost,
			Affordable: r.selected.PointsCost <= r.balance,
		}
	}
	return v
}

// Balance returns the screen-local points balance
func (r *Rewards) Balance() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balance
}

// Open shows the claim dialog for a claimable reward, or for the
// claimable matching an available milestone by name
func (r *Rewards) Open(rewardID string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.catalog.Claimables {
		if r.catalog.Claimables[i].ID == rewardID {
			c := r.catalog.Claimables[i]
			r.selected = &c
			return Result{}, nil
		}
	}

	for _, m := range r.catalog.Milestones {
		if m.ID != rewardID {
			continue
		}
		if !m.IsAvailable {
			return Result{}, domain.ErrRewardUnavailable
		}
		for i := range r.catalog.Claimables {
			if r.catalog.Claimables[i].Name == m.Name {
				c := r.catalog.Claimables[i]
				r.selected = &c
				return Result{}, nil
			}
		}
		return Result{}, domain.ErrRewardUnavailable
	}
	return Result{}, domain.ErrRewardNotFound
}

// CloseDialog dismisses the claim dialog
func (r *Rewards) CloseDialog() (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = nil
	return Result{}, nil
}

// Claim redeems the selected reward. With too few points the balance and
// the dialog stay as they are.
func (r *Rewards) Claim() (Result, error) {
	r.mu.Lock()
	if r.selected == nil {
		r.mu.Unlock()
		return Result{}, domain.ErrNoRewardSelected
	}
	reward := *r.selected
	if reward.PointsCost > r.balance {
		r.mu.Unlock()
		return Result{}, domain.ErrInsufficientPoints
	}
	r.balance -= reward.PointsCost
	r.selected = nil
	balance := r.balance
	r.mu.Unlock()

	r.env.Hooks.publish(domain.EventRewardClaimed, map[string]any{
		"reward_id": reward.ID, "points_cost": reward.PointsCost, "balance": balance,
	})
	return notice(domain.NoticeSuccess, "RewardClaimed", map[string]any{"Name": reward.Name}), nil
}
