package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashil31/Admin-Panel/models"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(message, &env))
	return env
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub, url := startHub(t)

	first := dial(t, url)
	second := dial(t, url)
	time.Sleep(50 * time.Millisecond) // let registrations settle

	user := &models.User{Name: "Asha Patel", Telephone: "9876543210"}
	user.ID = 1
	hub.BroadcastNewUser(user)

	for _, conn := range []*websocket.Conn{first, second} {
		env := readEnvelope(t, conn)
		assert.Equal(t, EventNewUser, env.Event)
		assert.Equal(t, uint64(1), env.Seq)

		data, ok := env.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Asha Patel", data["name"])
	}
}

func TestSequenceIncreasesAcrossEvents(t *testing.T) {
	hub, url := startHub(t)

	conn := dial(t, url)
	time.Sleep(50 * time.Millisecond)

	user := &models.User{Name: "Asha Patel", RewardSent: models.RewardNo}
	user.ID = 1
	hub.BroadcastNewUser(user)

	user.RewardSent = models.RewardYes
	reward := &models.Reward{UserID: 1, Amount: 500, RewardSent: models.RewardYes}
	hub.BroadcastRewardUpdate(user, reward)

	env1 := readEnvelope(t, conn)
	env2 := readEnvelope(t, conn)

	assert.Equal(t, EventNewUser, env1.Event)
	assert.Equal(t, EventRewardUpdated, env2.Event)
	assert.Greater(t, env2.Seq, env1.Seq)
}

func TestRewardUpdateCarriesUserAndLedgerRow(t *testing.T) {
	hub, url := startHub(t)

	conn := dial(t, url)
	time.Sleep(50 * time.Millisecond)

	user := &models.User{Name: "Asha Patel", RewardSent: models.RewardYes}
	user.ID = 3
	reward := &models.Reward{UserID: 3, Amount: 500, RewardSent: models.RewardYes}
	hub.BroadcastRewardUpdate(user, reward)

	env := readEnvelope(t, conn)
	require.Equal(t, EventRewardUpdated, env.Event)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	pushedUser, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	pushedReward, ok := data["reward"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, models.RewardYes, pushedUser["rewardSent"])
	assert.Equal(t, 500.0, pushedReward["amount"])
	assert.Equal(t, 3.0, pushedReward["userId"])
}

func TestLateClientDoesNotReceiveEarlierEvents(t *testing.T) {
	hub, url := startHub(t)

	early := dial(t, url)
	time.Sleep(50 * time.Millisecond)

	user := &models.User{Name: "Asha Patel"}
	user.ID = 1
	hub.BroadcastNewUser(user)
	_ = readEnvelope(t, early)

	late := dial(t, url)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, late.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := late.ReadMessage()
	assert.Error(t, err, "no replay for connections made after the event")
}
