package domain

// MilestoneReward unlocks at a points threshold
type MilestoneReward struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int64  `json:"points_required"`
	Image          string `json:"image,omitempty"`
	IsAvailable    bool   `json:"is_available"`
}

// ClaimableReward can be redeemed for points
type ClaimableReward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost"`
	ExpiryDate  string `json:"expiry_date,omitempty"`
	Image       string `json:"image,omitempty"`
}

// RedemptionStatus tracks a past redemption
type RedemptionStatus string

const (
	RedemptionProcessing RedemptionStatus = "processing"
	RedemptionCompleted  RedemptionStatus = "completed"
)

// Redemption is a row of the redemption history
type Redemption struct {
	ID           string           `json:"id"`
	RewardName   string           `json:"reward_name"`
	PointsCost   int64            `json:"points_cost"`
	DateRedeemed string           `json:"date_redeemed"`
	Status       RedemptionStatus `json:"status"`
}

// RewardCatalog bundles everything the rewards screen shows
type RewardCatalog struct {
	Milestones []MilestoneReward `json:"milestones"`
	Claimables []ClaimableReward `json:"claimables"`
	History    []Redemption      `json:"history"`
}
