package server

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom() *Room {
	return NewRoom("overworld", RoomConfig{
		Size:       10,
		Step:       1,
		StarterKit: []ItemStack{{Item: "minecraft:bread", Count: 8}},
	})
}

func TestJoinPlayer(t *testing.T) {
	r := testRoom()
	p := r.JoinPlayer("alice", nil)

	assert.Equal(t, PlayerUUID("alice"), p.UUID())
	assert.Equal(t, mgl64.Vec3{5, GroundLevel, 5}, p.Position())
	assert.Equal(t, ItemStack{Item: "minecraft:bread", Count: 8}, p.Inventory()[0])

	got, ok := r.Player(p.UUID())
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestJoinPlayer_KeepsJoinOrder(t *testing.T) {
	r := testRoom()
	a := r.JoinPlayer("alice", nil)
	b := r.JoinPlayer("bob", nil)
	c := r.JoinPlayer("carol", nil)
	assert.Equal(t, []*Player{a, b, c}, r.Players())

	r.LeavePlayer(b)
	assert.Equal(t, []*Player{a, c}, r.Players())
}

func TestJoinPlayer_SameNameReplacesSession(t *testing.T) {
	r := testRoom()
	old := r.JoinPlayer("alice", nil)
	cur := r.JoinPlayer("alice", nil)
	require.Len(t, r.Players(), 1)
	assert.Same(t, cur, r.Players()[0])

	// 旧会话的迟到离开请求不能移除新会话
	r.LeavePlayer(old)
	assert.Len(t, r.Players(), 1)
}

func TestRoomManager_JoinPlayerAcrossRooms(t *testing.T) {
	rm := NewRoomManager(RoomConfig{Size: 10}, "overworld")
	t.Cleanup(rm.Close)
	overworld := rm.GetOrCreateRoom("overworld")
	nether := rm.GetOrCreateRoom("the_nether")

	old := rm.JoinPlayer(overworld, "alice", nil)
	cur := rm.JoinPlayer(nether, "alice", nil)
	assert.Equal(t, old.UUID(), cur.UUID())

	assert.Equal(t, []*Player{cur}, rm.ConnectedPlayers())
	assert.Empty(t, overworld.Players())

	players := NewViewerHost(rm).ConnectedPlayers()
	require.Len(t, players, 1)
	assert.Equal(t, "the_nether", players[0].Dimension())

	// 同房间再次加入仍只保留一个会话
	again := rm.JoinPlayer(nether, "alice", nil)
	assert.Equal(t, []*Player{again}, rm.ConnectedPlayers())
}

func TestProcessInputs_SeqDedup(t *testing.T) {
	r := testRoom()
	p := r.JoinPlayer("alice", nil)

	r.OnInput(Input{PlayerID: p.UUID(), Kind: InputMove, Command: DirRight, Seq: 1})
	r.OnInput(Input{PlayerID: p.UUID(), Kind: InputMove, Command: DirRight, Seq: 1}) // 重复
	r.OnInput(Input{PlayerID: p.UUID(), Kind: InputMove, Command: DirRight, Seq: 3})
	r.OnInput(Input{PlayerID: p.UUID(), Kind: InputMove, Command: DirRight, Seq: 2}) // 乱序
	r.OnInput(Input{PlayerID: p.UUID(), Kind: InputMove, Command: DirRight})         // 不带序列号
	r.ProcessInputs()

	assert.Equal(t, 8.0, p.Position().X())
	snap := r.Metrics().Snapshot()
	assert.EqualValues(t, 3, snap["inputs_accepted"])
	assert.EqualValues(t, 2, snap["old_seq_ignored"])
}

func TestRoomManager_DefaultRoom(t *testing.T) {
	assert.Equal(t, "the_nether", NewRoomManager(RoomConfig{}, "the_nether").DefaultRoom())
	assert.Equal(t, "overworld", NewRoomManager(RoomConfig{}, "").DefaultRoom())
}

func TestProcessInputs_MoveAndClamp(t *testing.T) {
	r := testRoom()
	p := r.JoinPlayer("alice", nil)

	r.OnInput(Input{PlayerID: p.UUID(), Kind: InputMove, Command: DirRight})
	r.OnInput(Input{PlayerID: p.UUID(), Kind: InputMove, Command: DirUp})
	r.ProcessInputs()
	assert.Equal(t, mgl64.Vec3{6, GroundLevel, 4}, p.Position())

	for i := 0; i < 20; i++ {
		r.OnInput(Input{PlayerID: p.UUID(), Kind: InputMove, Command: DirLeft})
	}
	r.ProcessInputs()
	assert.Equal(t, 0.0, p.Position().X())
	assert.EqualValues(t, 22, r.Metrics().InputsAccepted)
}

func TestProcessInputs_Drop(t *testing.T) {
	r := testRoom()
	p := r.JoinPlayer("alice", nil)
	r.OnInput(Input{PlayerID: p.UUID(), Kind: InputDrop, Slot: 0})
	r.ProcessInputs()
	assert.True(t, p.Inventory()[0].Empty())
}

func TestRequestLeave(t *testing.T) {
	r := testRoom()
	p := r.JoinPlayer("alice", nil)
	r.RequestLeave(p)
	// 离开在下一次 Tick 处理
	assert.Len(t, r.Players(), 1)
	r.ProcessInputs()
	assert.Empty(t, r.Players())
}

func TestRequestLeave_StoppedRoom(t *testing.T) {
	r := testRoom()
	r.JoinPlayer("alice", nil)
	r.Stop()
	assert.Empty(t, r.Players())

	q := r.JoinPlayer("bob", nil)
	r.RequestLeave(q)
	assert.Empty(t, r.Players())
}

func TestTick(t *testing.T) {
	r := testRoom()
	r.JoinPlayer("alice", nil)
	r.Tick()
	r.Tick()
	assert.EqualValues(t, 2, r.tickSeq.Load())
	assert.EqualValues(t, 2, r.Metrics().Snapshot()["tick_count"])
}
