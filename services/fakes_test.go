package services

import (
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ashil31/Admin-Panel/db"
	"github.com/ashil31/Admin-Panel/models"
)

// fakeUserRepo is an in-memory db.UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = user.CreatedAt
	if user.RewardSent == "" {
		user.RewardSent = models.RewardNo
	}
	stored := *user
	f.users[user.ID] = &stored
	return user, nil
}

func (f *fakeUserRepo) FindUserByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) SetRewardSent(id uint, status string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.RewardSent = status
	u.UpdatedAt = time.Now()
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetPendingUsers(page, pageSize int) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []models.User
	for _, u := range f.users {
		if u.RewardSent != models.RewardYes {
			pending = append(pending, *u)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	total := int64(len(pending))
	start := (page - 1) * pageSize
	if start >= len(pending) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(pending) {
		end = len(pending)
	}
	return pending[start:end], total, nil
}

func (f *fakeUserRepo) CountUsers() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) MonthlyUserCounts(year int) ([]db.MonthlyCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	buckets := map[int]int64{}
	for _, u := range f.users {
		if u.CreatedAt.Year() == year {
			buckets[int(u.CreatedAt.Month())]++
		}
	}
	var rows []db.MonthlyCount
	for m, c := range buckets {
		rows = append(rows, db.MonthlyCount{Month: m, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

// fakeRewardRepo is an in-memory db.RewardRepository holding the ledger.
type fakeRewardRepo struct {
	mu      sync.Mutex
	nextID  uint
	rewards []models.Reward
	saveErr error
}

func newFakeRewardRepo() *fakeRewardRepo {
	return &fakeRewardRepo{}
}

func (f *fakeRewardRepo) SaveReward(reward *models.Reward) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.nextID++
	reward.ID = f.nextID
	now := time.Now()
	reward.CreatedAt = now
	reward.UpdatedAt = now
	f.rewards = append(f.rewards, *reward)
	return nil
}

func (f *fakeRewardRepo) rewarded() []models.Reward {
	var out []models.Reward
	for _, r := range f.rewards {
		if r.RewardSent == models.RewardYes {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (f *fakeRewardRepo) GetRewardedPage(page, pageSize int) ([]models.Reward, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rewarded := f.rewarded()
	total := int64(len(rewarded))
	start := (page - 1) * pageSize
	if start >= len(rewarded) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(rewarded) {
		end = len(rewarded)
	}
	return rewarded[start:end], total, nil
}

func (f *fakeRewardRepo) GetAllRewarded() ([]models.Reward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rewarded(), nil
}

func (f *fakeRewardRepo) SumRewardAmounts() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, r := range f.rewarded() {
		total += r.Amount
	}
	return total, nil
}

// recorderHub captures broadcasts instead of pushing them to sockets.
type recorderHub struct {
	mu            sync.Mutex
	newUsers      []models.User
	rewardUpdates []models.Reward
}

func (r *recorderHub) BroadcastNewUser(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.newUsers = append(r.newUsers, *user)
}

func (r *recorderHub) BroadcastRewardUpdate(user *models.User, reward *models.Reward) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enriched := *reward
	enriched.User = *user
	r.rewardUpdates = append(r.rewardUpdates, enriched)
}
