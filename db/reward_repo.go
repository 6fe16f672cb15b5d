package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ashil31/Admin-Panel/models"
)

type RewardRepository interface {
	SaveReward(reward *models.Reward) error
	GetRewardedPage(page, pageSize int) ([]models.Reward, int64, error)
	GetAllRewarded() ([]models.Reward, error)
	SumRewardAmounts() (float64, error)
}

type rewardRepo struct {
	DB *gorm.DB
}

func NewRewardRepo(db *GormDB) RewardRepository {
	return &rewardRepo{db.DB}
}

// SaveReward appends a ledger row. Always a Create, never an update:
// multiple rows per user are expected and the current status lives on
// the user record, not here.
func (r *rewardRepo) SaveReward(reward *models.Reward) error {
	if reward == nil {
		return errors.New("reward is nil")
	}
	if err := r.DB.Create(reward).Error; err != nil {
		return errors.Wrap(err, "could not append reward")
	}
	return nil
}

// GetRewardedPage returns one page of sent rewards with their users
// preloaded, most recently updated first.
func (r *rewardRepo) GetRewardedPage(page, pageSize int) ([]models.Reward, int64, error) {
	var total int64
	err := r.DB.Model(&models.Reward{}).
		Where("reward_sent = ?", models.RewardYes).
		Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not count rewards")
	}

	var rewards []models.Reward
	err = r.DB.Preload("User").
		Where("reward_sent = ?", models.RewardYes).
		Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rewards).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not fetch rewards")
	}
	return rewards, total, nil
}

func (r *rewardRepo) GetAllRewarded() ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.DB.Preload("User").
		Where("reward_sent = ?", models.RewardYes).
		Order("updated_at DESC").
		Find(&rewards).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch rewards")
	}
	return rewards, nil
}

func (r *rewardRepo) SumRewardAmounts() (float64, error) {
	var total float64
	err := r.DB.Model(&models.Reward{}).
		Where("reward_sent = ?", models.RewardYes).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "could not sum reward amounts")
	}
	return total, nil
}
