package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ashil31/Admin-Panel/config"
	"github.com/ashil31/Admin-Panel/db"
	"github.com/ashil31/Admin-Panel/models"
	"github.com/ashil31/Admin-Panel/ws"
)

// PageSize is the fixed page size of both list views.
const PageSize = 10

// Broadcaster pushes events to connected dashboards. Satisfied by
// *ws.Hub; tests substitute a recorder.
type Broadcaster interface {
	BroadcastNewUser(user *models.User)
	BroadcastRewardUpdate(user *models.User, reward *models.Reward)
}

// PushMirror optionally republishes dashboard events to a mobile push
// topic. Satisfied by notifications.FCM.
type PushMirror interface {
	Publish(ctx context.Context, event string, data map[string]string) error
}

type UserService interface {
	SubmitUser(user *models.User) (*models.User, error)
	GetPendingUsers(page int) ([]models.User, int, error)
	GetRewardedUsers(page int) ([]models.Reward, int, error)
	CountUsers() (int64, error)
	MonthlyUserStats() ([]int64, error)
}

type userService struct {
	Config     *config.Config
	userRepo   db.UserRepository
	rewardRepo db.RewardRepository
	hub        Broadcaster
	push       PushMirror
}

func NewUserService(userRepo db.UserRepository, rewardRepo db.RewardRepository, hub Broadcaster, push PushMirror, conf *config.Config) UserService {
	return &userService{
		Config:     conf,
		userRepo:   userRepo,
		rewardRepo: rewardRepo,
		hub:        hub,
		push:       push,
	}
}

// SubmitUser stores a new form submission and announces it. The
// broadcast happens after the write succeeds; its delivery is fire and
// forget and does not affect the response.
func (s *userService) SubmitUser(user *models.User) (*models.User, error) {
	user.RewardSent = models.RewardNo
	created, err := s.userRepo.CreateUser(user)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastNewUser(created)
	s.mirror(ws.EventNewUser, map[string]string{
		"userId": fmt.Sprintf("%d", created.ID),
		"name":   created.Name,
	})
	return created, nil
}

func (s *userService) GetPendingUsers(page int) ([]models.User, int, error) {
	users, total, err := s.userRepo.GetPendingUsers(page, PageSize)
	if err != nil {
		return nil, 0, err
	}
	return users, totalPages(total, PageSize), nil
}

func (s *userService) GetRewardedUsers(page int) ([]models.Reward, int, error) {
	rewards, total, err := s.rewardRepo.GetRewardedPage(page, PageSize)
	if err != nil {
		return nil, 0, err
	}
	return rewards, totalPages(total, PageSize), nil
}

func (s *userService) CountUsers() (int64, error) {
	return s.userRepo.CountUsers()
}

// MonthlyUserStats returns submission counts for the current year as a
// 12-element array, index 0 = January, zero-filled for empty months.
func (s *userService) MonthlyUserStats() ([]int64, error) {
	rows, err := s.userRepo.MonthlyUserCounts(time.Now().Year())
	if err != nil {
		return nil, err
	}
	return ZeroFillMonths(rows), nil
}

// ZeroFillMonths spreads sparse month buckets over a full 12-month
// array. Out-of-range months are ignored.
func ZeroFillMonths(rows []db.MonthlyCount) []int64 {
	counts := make([]int64, 12)
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			counts[row.Month-1] = row.Count
		}
	}
	return counts
}

func totalPages(total int64, pageSize int) int {
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (s *userService) mirror(event string, data map[string]string) {
	if s.push == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.push.Publish(ctx, event, data); err != nil {
			log.Printf("push mirror error: %v", err)
		}
	}()
}
