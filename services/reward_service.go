package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/ashil31/Admin-Panel/config"
	"github.com/ashil31/Admin-Panel/db"
	apiError "github.com/ashil31/Admin-Panel/errors"
	"github.com/ashil31/Admin-Panel/models"
	"github.com/ashil31/Admin-Panel/ws"
)

type RewardService interface {
	UpdateRewardStatus(userID uint, req *models.UpdateRewardRequest) (*models.User, *models.Reward, *apiError.Error)
	SumRewardAmounts() (float64, error)
}

type rewardService struct {
	Config     *config.Config
	userRepo   db.UserRepository
	rewardRepo db.RewardRepository
	hub        Broadcaster
	push       PushMirror
}

func NewRewardService(userRepo db.UserRepository, rewardRepo db.RewardRepository, hub Broadcaster, push PushMirror, conf *config.Config) RewardService {
	return &rewardService{
		Config:     conf,
		userRepo:   userRepo,
		rewardRepo: rewardRepo,
		hub:        hub,
		push:       push,
	}
}

// UpdateRewardStatus flips the user's reward flag and appends a ledger
// row, then broadcasts the result. The two writes are not wrapped in a
// transaction: a failed append after a successful flag update leaves an
// updated user without a matching ledger row, which is surfaced as a 500
// and left to the operator.
func (s *rewardService) UpdateRewardStatus(userID uint, req *models.UpdateRewardRequest) (*models.User, *models.Reward, *apiError.Error) {
	if !models.IsValidRewardStatus(req.RewardSent) {
		return nil, nil, apiError.New("rewardSent must be YES or NO", http.StatusBadRequest)
	}
	if req.Amount <= 0 {
		return nil, nil, apiError.New("amount must be a positive number", http.StatusBadRequest)
	}

	user, err := s.userRepo.SetRewardSent(userID, req.RewardSent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apiError.ErrNotFound
		}
		log.Printf("UpdateRewardStatus error updating user %d: %v", userID, err)
		return nil, nil, apiError.ErrInternalServerError
	}

	reward := &models.Reward{
		UserID:     user.ID,
		Amount:     req.Amount,
		RewardSent: req.RewardSent,
	}
	if err := s.rewardRepo.SaveReward(reward); err != nil {
		log.Printf("ledger append failed after status update for user %d: %v", userID, err)
		return nil, nil, apiError.ErrInternalServerError
	}
	reward.User = *user

	s.hub.BroadcastRewardUpdate(user, reward)
	s.mirror(ws.EventRewardUpdated, map[string]string{
		"userId":     fmt.Sprintf("%d", user.ID),
		"name":       user.Name,
		"rewardSent": req.RewardSent,
		"amount":     fmt.Sprintf("%.2f", req.Amount),
	})

	return user, reward, nil
}

func (s *rewardService) SumRewardAmounts() (float64, error) {
	return s.rewardRepo.SumRewardAmounts()
}

func (s *rewardService) mirror(event string, data map[string]string) {
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
