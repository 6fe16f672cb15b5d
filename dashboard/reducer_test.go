package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashil31/Admin-Panel/models"
)

func userAt(id uint, created time.Time, status string) models.User {
	u := models.User{
		Name:       fmt.Sprintf("user-%d", id),
		Telephone:  fmt.Sprintf("900000000%d", id),
		RewardSent: status,
	}
	u.ID = id
	u.CreatedAt = created
	return u
}

func pendingWith(users ...models.User) PendingState {
	return NewPendingState().Apply(FetchedPage{Page: 1, TotalPages: 1, Users: users})
}

func TestFetchedPageFiltersRewardedAndSorts(t *testing.T) {
	now := time.Now()
	s := NewPendingState().Apply(FetchedPage{
		Page:       1,
		TotalPages: 3,
		Users: []models.User{
			userAt(1, now.Add(-2*time.Hour), models.RewardNo),
			userAt(2, now, models.RewardYes),
			userAt(3, now.Add(-1*time.Hour), models.RewardNo),
		},
	})

	require.Len(t, s.Users, 2)
	assert.Equal(t, uint(3), s.Users[0].ID, "newest pending first")
	assert.Equal(t, uint(1), s.Users[1].ID)
	assert.Equal(t, 3, s.TotalPages)
}

func TestPushedNewUserInsertsOnPageOne(t *testing.T) {
	now := time.Now()
	s := pendingWith(userAt(1, now.Add(-time.Hour), models.RewardNo))

	s = s.Apply(PushedNewUser{Seq: 1, User: userAt(2, now, models.RewardNo)})

	require.Len(t, s.Users, 2)
	assert.Equal(t, uint(2), s.Users[0].ID)
}

func TestPushedNewUserDeduplicatesById(t *testing.T) {
	now := time.Now()
	s := pendingWith(userAt(1, now.Add(-time.Hour), models.RewardNo))

	s = s.Apply(PushedNewUser{Seq: 1, User: userAt(1, now, models.RewardNo)})

	require.Len(t, s.Users, 1)
	assert.Equal(t, uint(1), s.Users[0].ID)
}

func TestPushedNewUserTruncatesToPageSize(t *testing.T) {
	now := time.Now()
	var users []models.User
	for i := 1; i <= PageSize; i++ {
		users = append(users, userAt(uint(i), now.Add(-time.Duration(i)*time.Minute), models.RewardNo))
	}
	s := pendingWith(users...)

	s = s.Apply(PushedNewUser{Seq: 1, User: userAt(99, now, models.RewardNo)})

	require.Len(t, s.Users, PageSize)
	assert.Equal(t, uint(99), s.Users[0].ID)
}

func TestPushedNewUserIgnoredOffPageOne(t *testing.T) {
	now := time.Now()
	s := NewPendingState().Apply(FetchedPage{
		Page: 2, TotalPages: 2,
		Users: []models.User{userAt(1, now.Add(-time.Hour), models.RewardNo)},
	})

	s = s.Apply(PushedNewUser{Seq: 1, User: userAt(2, now, models.RewardNo)})

	require.Len(t, s.Users, 1)
	assert.Equal(t, uint(1), s.Users[0].ID)
}

func TestPushedNewUserAlreadyRewardedIgnored(t *testing.T) {
	s := pendingWith()
	s = s.Apply(PushedNewUser{Seq: 1, User: userAt(2, time.Now(), models.RewardYes)})
	assert.Empty(t, s.Users)
}

func TestStaleSequenceDiscarded(t *testing.T) {
	now := time.Now()
	s := pendingWith()
	s = s.Apply(PushedNewUser{Seq: 5, User: userAt(1, now, models.RewardNo)})
	s = s.Apply(PushedNewUser{Seq: 4, User: userAt(2, now, models.RewardNo)})
	s = s.Apply(PushedNewUser{Seq: 5, User: userAt(3, now, models.RewardNo)})

	require.Len(t, s.Users, 1)
	assert.Equal(t, uint(1), s.Users[0].ID)
	assert.Equal(t, uint64(5), s.LastSeq)
}

// Two sessions: the other session marks a user rewarded; this one drops
// the row from its pending list on the pushed event alone.
func TestPushedRewardUpdateYesRemovesPendingRow(t *testing.T) {
	now := time.Now()
	s := pendingWith(
		userAt(1, now.Add(-time.Minute), models.RewardNo),
		userAt(2, now.Add(-2*time.Minute), models.RewardNo),
	)
	s = s.SetAmount(2, "500")

	updated := userAt(2, now.Add(-2*time.Minute), models.RewardYes)
	s = s.Apply(PushedRewardUpdate{Seq: 1, User: updated})

	require.Len(t, s.Users, 1)
	assert.Equal(t, uint(1), s.Users[0].ID)
	assert.NotContains(t, s.Amounts, uint(2), "scratch amount leaves with the row")
}

func TestPushedRewardUpdateNoMergesInPlace(t *testing.T) {
	now := time.Now()
	s := pendingWith(userAt(1, now, models.RewardNo))

	changed := userAt(1, now, models.RewardNo)
	changed.Occupation = "mechanic"
	s = s.Apply(PushedRewardUpdate{Seq: 1, User: changed})

	require.Len(t, s.Users, 1)
	assert.Equal(t, "mechanic", s.Users[0].Occupation)
}

func TestUserActionOptimisticallyRemoves(t *testing.T) {
	now := time.Now()
	s := pendingWith(userAt(1, now, models.RewardNo))
	s = s.SetAmount(1, "500")

	s = s.Apply(UserAction{UserID: 1, RewardSent: models.RewardYes})

	assert.Empty(t, s.Users)
	assert.Empty(t, s.Amounts)
	assert.False(t, s.NeedsRefetch)

	s = s.Apply(ActionFailed{})
	assert.True(t, s.NeedsRefetch, "failed call rolls back via refetch")
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	now := time.Now()
	before := pendingWith(userAt(1, now, models.RewardNo))
	_ = before.Apply(PushedRewardUpdate{Seq: 1, User: userAt(1, now, models.RewardYes)})

	require.Len(t, before.Users, 1, "original state untouched")
}

func rewardRow(id, userID uint, amount float64, updated time.Time) models.Reward {
	r := models.Reward{UserID: userID, Amount: amount, RewardSent: models.RewardYes}
	r.ID = id
	r.UpdatedAt = updated
	r.User = userAt(userID, updated.Add(-time.Hour), models.RewardYes)
	return r
}

func TestRewardedInsertsEnrichedEventOnPageOne(t *testing.T) {
	now := time.Now()
	s := NewRewardedState().Apply(FetchedPage{
		Page: 1, TotalPages: 1,
		Rewards: []models.Reward{rewardRow(1, 1, 200, now.Add(-time.Minute))},
	})

	user := userAt(2, now.Add(-time.Hour), models.RewardYes)
	reward := models.Reward{UserID: 2, Amount: 500, RewardSent: models.RewardYes}
	reward.ID = 2
	reward.UpdatedAt = now

	s = s.Apply(PushedRewardUpdate{Seq: 1, User: user, Reward: reward})

	require.Len(t, s.Rewards, 2)
	assert.Equal(t, uint(2), s.Rewards[0].ID)
	assert.Equal(t, 500.0, s.Rewards[0].Amount)
	assert.Equal(t, uint(2), s.Rewards[0].User.ID)
	assert.False(t, s.NeedsRefetch)
}

func TestRewardedFallsBackToRefetchWithoutAmount(t *testing.T) {
	now := time.Now()
	s := NewRewardedState()

	user := userAt(2, now, models.RewardYes)
	s = s.Apply(PushedRewardUpdate{Seq: 1, User: user})

	assert.Empty(t, s.Rewards)
	assert.True(t, s.NeedsRefetch)
}

func TestRewardedIgnoresReversalEvents(t *testing.T) {
	now := time.Now()
	s := NewRewardedState()
	reward := models.Reward{UserID: 2, Amount: 500, RewardSent: models.RewardNo}
	s = s.Apply(PushedRewardUpdate{Seq: 1, User: userAt(2, now, models.RewardNo), Reward: reward})

	assert.Empty(t, s.Rewards)
	assert.False(t, s.NeedsRefetch)
}
