package server

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	// InventorySize 主物品栏槽位数
	InventorySize = 36
	// MaxStackSize 单格最大堆叠数
	MaxStackSize = 64
	// GroundLevel 玩家所在高度（竞技场为平地）
	GroundLevel = 64
)

// playerNamespace 由用户名派生 UUID 的命名空间（同名玩家 UUID 稳定）
var playerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("miniarena:player"))

// PlayerUUID 根据用户名生成稳定的玩家 UUID
func PlayerUUID(name string) uuid.UUID {
	return uuid.NewSHA1(playerNamespace, []byte(name))
}

// Direction 移动方向（服务端权威解释客户端“意图”）
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// ItemStack 物品栏中的一格，零值表示空格
type ItemStack struct {
	Item  string
	Count int
}

// Empty 是否为空格
func (s ItemStack) Empty() bool { return s.Item == "" || s.Count <= 0 }

// PlayerState 为广播给客户端的轻量状态
type PlayerState struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// Player 房间内的玩家实体（服务端权威状态）。
// 位置与物品栏由 mu 保护，可被 Tick 协程以外的读者（如 HTTP 查询）并发读取。
type Player struct {
	id   uuid.UUID
	name string
	room *Room
	conn *ClientConn // 网络连接的发送端（写协程），测试中可为 nil

	lastSeq int64 // 最近处理的输入序列号，只在 Tick 线程读写

	mu        sync.RWMutex
	pos       mgl64.Vec3
	inventory [InventorySize]ItemStack
}

func newPlayer(name string, room *Room, conn *ClientConn) *Player {
	p := &Player{
		id:   PlayerUUID(name),
		name: name,
		room: room,
		conn: conn,
		pos:  mgl64.Vec3{room.size / 2, GroundLevel, room.size / 2},
	}
	for _, st := range room.starterKit {
		p.Give(st)
	}
	return p
}

// UUID 玩家唯一标识
func (p *Player) UUID() uuid.UUID { return p.id }

// Name 用户名
func (p *Player) Name() string { return p.name }

// Room 玩家所在房间（即维度）
func (p *Player) Room() *Room { return p.room }

// Position 当前精确坐标
func (p *Player) Position() mgl64.Vec3 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos
}

// BlockPos 当前所在方块坐标（向下取整）
func (p *Player) BlockPos() [3]int {
	pos := p.Position()
	return [3]int{
		int(math.Floor(pos.X())),
		int(math.Floor(pos.Y())),
		int(math.Floor(pos.Z())),
	}
}

// Inventory 物品栏副本（含空格）
func (p *Player) Inventory() [InventorySize]ItemStack {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inventory
}

// Give 放入物品：先合并同类未满的格子，再占用空格。返回未能放下的数量。
func (p *Player) Give(st ItemStack) int {
	if st.Empty() {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	left := st.Count
	for i := range p.inventory {
		s := &p.inventory[i]
		if left == 0 {
			break
		}
		if s.Item == st.Item && s.Count < MaxStackSize {
			n := min(MaxStackSize-s.Count, left)
			s.Count += n
			left -= n
		}
	}
	for i := range p.inventory {
		s := &p.inventory[i]
		if left == 0 {
			break
		}
		if s.Empty() {
			n := min(MaxStackSize, left)
			*s = ItemStack{Item: st.Item, Count: n}
			left -= n
		}
	}
	return left
}

// DropSlot 清空指定槽位，返回被丢弃的物品
func (p *Player) DropSlot(slot int) (ItemStack, bool) {
	if slot < 0 || slot >= InventorySize {
		return ItemStack{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	st := p.inventory[slot]
	if st.Empty() {
		return ItemStack{}, false
	}
	p.inventory[slot] = ItemStack{}
	return st, true
}

// Disconnect 以给定原因断开连接并请求房间移除该玩家（不等待 Tick 完成）
func (p *Player) Disconnect(reason string) {
	if p.conn != nil {
		p.conn.CloseWithReason(reason)
	}
	p.room.metrics.IncKicks()
	p.room.RequestLeave(p)
	Log.Infof("player kicked: room=%s name=%s uuid=%s reason=%q", p.room.ID, p.name, p.id, reason)
}

// SendMessage 向玩家发送一条聊天消息（非阻塞，队列满时丢弃）
func (p *Player) SendMessage(text string) {
	p.room.metrics.IncMessages()
	if p.conn == nil {
		return
	}
	b, err := json.Marshal(chatMessage{Type: "chat", Message: text})
	if err != nil {
		Log.Errorf("encode chat message: %v", err)
		return
	}
	p.conn.Enqueue(b)
}

func (p *Player) state() PlayerState {
	pos := p.Position()
	return PlayerState{ID: p.id.String(), Name: p.name, X: pos.X(), Y: pos.Y(), Z: pos.Z()}
}
