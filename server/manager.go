package server

import "sync"

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	joinMu      sync.Mutex // 串行化加入，保证同一 UUID 全局只有一个会话
	mu          sync.RWMutex
	rooms       map[string]*Room
	order       []string
	cfg         RoomConfig
	defaultRoom string
}

// NewRoomManager 创建房间管理器；defaultRoom 为未指定房间时加入的房间
func NewRoomManager(cfg RoomConfig, defaultRoom string) *RoomManager {
	if defaultRoom == "" {
		defaultRoom = "overworld"
	}
	return &RoomManager{
		rooms:       make(map[string]*Room),
		cfg:         cfg,
		defaultRoom: defaultRoom,
	}
}

// DefaultRoom 默认房间 ID
func (m *RoomManager) DefaultRoom() string { return m.defaultRoom }

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		r = NewRoom(id, m.cfg)
		m.rooms[id] = r
		m.order = append(m.order, id)
		r.StartTicker()
		Log.Infof("room created: %s", id)
	}
	return r
}

// JoinPlayer 将玩家加入指定房间。同名玩家在任一房间在线时，旧会话被移除并断开。
func (m *RoomManager) JoinPlayer(room *Room, name string, conn *ClientConn) *Player {
	m.joinMu.Lock()
	defer m.joinMu.Unlock()
	id := PlayerUUID(name)
	for _, r := range m.Rooms() {
		if r == room {
			// 同房间的顶替由 Room.JoinPlayer 处理
			continue
		}
		if old, ok := r.Player(id); ok {
			r.evict(old, replacedReason)
		}
	}
	return room.JoinPlayer(name, conn)
}

// Room 获取已存在的房间
func (m *RoomManager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Rooms 按创建顺序返回所有房间
func (m *RoomManager) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rooms[id])
	}
	return out
}

// ConnectedPlayers 所有房间的在线玩家：房间按创建顺序，房间内按加入顺序
func (m *RoomManager) ConnectedPlayers() []*Player {
	var out []*Player
	for _, r := range m.Rooms() {
		out = append(out, r.Players()...)
	}
	return out
}

// Close 停止所有房间
func (m *RoomManager) Close() {
	for _, r := range m.Rooms() {
		r.Stop()
	}
}
