package ws

import "github.com/ashil31/Admin-Panel/models"

// Event names pushed to connected dashboards.
const (
	EventNewUser       = "newUser"
	EventRewardUpdated = "rewardUpdated"
)

// Envelope wraps every pushed event. Seq is a server-assigned
// monotonically increasing counter; clients discard an envelope whose
// seq is not newer than the last one they applied, which corrects
// per-connection delivery reordering.
type Envelope struct {
	Seq   uint64      `json:"seq"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// RewardUpdatedPayload carries both the updated user and the appended
// ledger row, so the rewarded view can apply the amount without a
// defensive refetch.
type RewardUpdatedPayload struct {
	User   *models.User   `json:"user"`
	Reward *models.Reward `json:"reward"`
}
