// Package dashboard models the client-side reconciliation of pushed
// events into paginated list state as pure reducers. The transitions
// mirror what the web dashboard does: no I/O, no timers, just state in
// and state out, so the merge logic is testable without a network.
package dashboard

import (
	"sort"

	"github.com/ashil31/Admin-Panel/models"
)

// PageSize matches the server's fixed page size.
const PageSize = 10

// Event is one input to a reducer.
type Event interface{ isEvent() }

// FetchedPage replaces list state with the result of an explicit fetch.
type FetchedPage struct {
	Page       int
	TotalPages int
	Users      []models.User   // pending view
	Rewards    []models.Reward // rewarded view
}

// PushedNewUser is the hub's newUser envelope.
type PushedNewUser struct {
	Seq  uint64
	User models.User
}

// PushedRewardUpdate is the hub's rewardUpdated envelope. Reward may be
// zero-valued when talking to an older server that does not enrich the
// payload; the rewarded view then falls back to a refetch.
type PushedRewardUpdate struct {
	Seq    uint64
	User   models.User
	Reward models.Reward
}

// UserAction is the admin pressing YES/NO on a row; applied before the
// network call resolves.
type UserAction struct {
	UserID     uint
	RewardSent string
}

// ActionFailed signals the optimistic mutation was rejected; the caller
// must refetch to roll back.
type ActionFailed struct{}

func (FetchedPage) isEvent()        {}
func (PushedNewUser) isEvent()      {}
func (PushedRewardUpdate) isEvent() {}
func (UserAction) isEvent()         {}
func (ActionFailed) isEvent()       {}

// PendingState is the "users awaiting reward" view: at most PageSize
// rows plus the per-row amount scratch pad. Amounts for rows that leave
// the list are dropped with them.
type PendingState struct {
	Page         int
	TotalPages   int
	Users        []models.User
	Amounts      map[uint]string
	LastSeq      uint64
	NeedsRefetch bool
}

func NewPendingState() PendingState {
	return PendingState{Page: 1, TotalPages: 1, Amounts: map[uint]string{}}
}

// Apply returns the next state; the receiver is never mutated.
func (s PendingState) Apply(e Event) PendingState {
	next := s.clone()
	switch ev := e.(type) {
	case FetchedPage:
		next.Page = ev.Page
		next.TotalPages = ev.TotalPages
		next.Users = nil
		for _, u := range ev.Users {
			if u.RewardSent != models.RewardYes {
				next.Users = append(next.Users, u)
			}
		}
		sortByCreatedDesc(next.Users)
		next.Users = truncateUsers(next.Users)
		next.pruneAmounts()
		next.NeedsRefetch = false

	case PushedNewUser:
		if !next.acceptSeq(ev.Seq) {
			return next
		}
		if next.Page != 1 || ev.User.RewardSent == models.RewardYes {
			return next
		}
		next.Users = append([]models.User{ev.User}, removeUser(next.Users, ev.User.ID)...)
		sortByCreatedDesc(next.Users)
		next.Users = truncateUsers(next.Users)
		next.pruneAmounts()

	case PushedRewardUpdate:
		if !next.acceptSeq(ev.Seq) {
			return next
		}
		if ev.User.RewardSent == models.RewardYes {
			next.Users = removeUser(next.Users, ev.User.ID)
			delete(next.Amounts, ev.User.ID)
			return next
		}
		for i := range next.Users {
			if next.Users[i].ID == ev.User.ID {
				next.Users[i] = ev.User
				break
			}
		}

	case UserAction:
		if ev.RewardSent == models.RewardYes {
			next.Users = removeUser(next.Users, ev.UserID)
			delete(next.Amounts, ev.UserID)
		}

	case ActionFailed:
		next.NeedsRefetch = true
	}
	return next
}

// SetAmount records the admin's typed amount for a visible row.
func (s PendingState) SetAmount(userID uint, amount string) PendingState {
	next := s.clone()
	next.Amounts[userID] = amount
	return next
}

func (s PendingState) clone() PendingState {
	next := s
	next.Users = append([]models.User(nil), s.Users...)
	next.Amounts = make(map[uint]string, len(s.Amounts))
	for k, v := range s.Amounts {
		next.Amounts[k] = v
	}
	return next
}

func (s *PendingState) acceptSeq(seq uint64) bool {
	if seq != 0 && seq <= s.LastSeq {
		return false
	}
	if seq > s.LastSeq {
		s.LastSeq = seq
	}
	return true
}

func (s *PendingState) pruneAmounts() {
	visible := make(map[uint]bool, len(s.Users))
	for _, u := range s.Users {
		visible[u.ID] = true
	}
	for id := range s.Amounts {
		if !visible[id] {
			delete(s.Amounts, id)
		}
	}
}

// RewardedState is the sent-rewards view: ledger rows with preloaded
// users, most recently updated first.
type RewardedState struct {
	Page         int
	TotalPages   int
	Rewards      []models.Reward
	LastSeq      uint64
	NeedsRefetch bool
}

func NewRewardedState() RewardedState {
	return RewardedState{Page: 1, TotalPages: 1}
}

func (s RewardedState) Apply(e Event) RewardedState {
	next := s
	next.Rewards = append([]models.Reward(nil), s.Rewards...)

	switch ev := e.(type) {
	case FetchedPage:
		next.Page = ev.Page
		next.TotalPages = ev.TotalPages
		next.Rewards = append([]models.Reward(nil), ev.Rewards...)
		sortByUpdatedDesc(next.Rewards)
		if len(next.Rewards) > PageSize {
			next.Rewards = next.Rewards[:PageSize]
		}
		next.NeedsRefetch = false

	case PushedRewardUpdate:
		if ev.Seq != 0 && ev.Seq <= next.LastSeq {
			return next
		}
		if ev.Seq > next.LastSeq {
			next.LastSeq = ev.Seq
		}
		if ev.User.RewardSent != models.RewardYes {
			return next
		}
		// Without the enriched payload the amount is unknowable from
		// the event alone; the view must resynchronize via fetch.
		if ev.Reward.Amount <= 0 {
			next.NeedsRefetch = true
			return next
		}
		if next.Page != 1 {
			return next
		}
		row := ev.Reward
		row.User = ev.User
		kept := next.Rewards[:0:0]
		for _, r := range next.Rewards {
			if r.ID != row.ID {
				kept = append(kept, r)
			}
		}
		next.Rewards = append([]models.Reward{row}, kept...)
		sortByUpdatedDesc(next.Rewards)
		if len(next.Rewards) > PageSize {
			next.Rewards = next.Rewards[:PageSize]
		}
	}
	return next
}

func sortByCreatedDesc(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}

func sortByUpdatedDesc(rewards []models.Reward) {
	sort.SliceStable(rewards, func(i, j int) bool {
		return rewards[i].UpdatedAt.After(rewards[j].UpdatedAt)
	})
}

func truncateUsers(users []models.User) []models.User {
	if len(users) > PageSize {
		return users[:PageSize]
	}
	return users
}

func removeUser(users []models.User, id uint) []models.User {
	kept := users[:0:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return kept
}
