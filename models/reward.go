package models

// Reward is one row of the append-only payout ledger. Every call to the
// reward mutation appends a row, including NO/reversal entries; rows are
// never updated or deleted.
type Reward struct {
	Model
	UserID     uint    `json:"userId" gorm:"index;not null"`
	User       User    `json:"user" gorm:"foreignKey:UserID"`
	Amount     float64 `json:"amount"`
	RewardSent string  `json:"rewardSent" gorm:"index"`
}

// UpdateRewardRequest is the body of PATCH /users/:id/reward.
type UpdateRewardRequest struct {
	RewardSent string  `json:"rewardSent" binding:"required,oneof=YES NO"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}
