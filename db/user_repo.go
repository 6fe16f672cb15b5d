package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ashil31/Admin-Panel/models"
)

// MonthlyCount is one month's submission tally, month 1-12.
type MonthlyCount struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	SetRewardSent(id uint, status string) (*models.User, error)
	GetPendingUsers(page, pageSize int) ([]models.User, int64, error)
	CountUsers() (int64, error)
	MonthlyUserCounts(year int) ([]MonthlyCount, error)
}

type userRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *GormDB) UserRepository {
	return &userRepo{db.DB}
}

func (r *userRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if user.RewardSent == "" {
		user.RewardSent = models.RewardNo
	}
	if err := r.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "could not create user")
	}
	return user, nil
}

func (r *userRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetRewardSent flips the authoritative flag on the user row and returns
// the updated record. gorm.ErrRecordNotFound bubbles up for unknown ids.
func (r *userRepo) SetRewardSent(id uint, status string) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&user).Update("reward_sent", status).Error; err != nil {
		return nil, errors.Wrap(err, "could not update reward status")
	}
	return &user, nil
}

// GetPendingUsers returns one page of users whose reward has not been
// sent, newest submissions first, plus the filtered row count taken at
// request time.
func (r *userRepo) GetPendingUsers(page, pageSize int) ([]models.User, int64, error) {
	pending := r.DB.Model(&models.User{}).Where("reward_sent IS DISTINCT FROM ?", models.RewardYes)

	var total int64
	if err := pending.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "could not count pending users")
	}

	var users []models.User
	err := r.DB.Where("reward_sent IS DISTINCT FROM ?", models.RewardYes).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not fetch pending users")
	}
	return users, total, nil
}

func (r *userRepo) CountUsers() (int64, error) {
	var count int64
	if err := r.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "could not count users")
	}
	return count, nil
}

// MonthlyUserCounts groups submissions of the given year by calendar
// month. Months with no submissions are absent from the result; the
// service layer zero-fills.
func (r *userRepo) MonthlyUserCounts(year int) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	err := r.DB.Model(&models.User{}).
		Select("EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count").
		Where("EXTRACT(YEAR FROM created_at) = ?", year).
		Group("month").
		Order("month").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not aggregate monthly users")
	}
	return rows, nil
}
