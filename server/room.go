package server

import (
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// RoomConfig 房间参数（所有房间共用）
type RoomConfig struct {
	Size       float64     // 世界边界：x、z 取值范围 [0, Size]
	Step       float64     // 每个移动输入前进的距离
	StarterKit []ItemStack // 玩家加入时发放
}

// Room 房间世界：权威状态维护在内存，单线程 Tick 推进。
// 房间 ID 同时作为玩家所在维度的标识。
type Room struct {
	ID string

	mu      sync.RWMutex
	players map[uuid.UUID]*Player
	order   []*Player // 按加入顺序

	inputChan chan Input
	leaveChan chan *Player

	size       float64
	step       float64
	starterKit []ItemStack

	metrics *RoomMetrics
	tickSeq atomic.Int64

	tickerOnce sync.Once
	stopOnce   sync.Once
	stop       chan struct{}
}

// NewRoom 创建房间，初始化数据结构
func NewRoom(id string, cfg RoomConfig) *Room {
	if cfg.Size <= 0 {
		cfg.Size = 100
	}
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	return &Room{
		ID:         id,
		players:    make(map[uuid.UUID]*Player),
		inputChan:  make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		leaveChan:  make(chan *Player, 64),
		size:       cfg.Size,
		step:       cfg.Step,
		starterKit: append([]ItemStack(nil), cfg.StarterKit...),
		metrics:    &RoomMetrics{},
		stop:       make(chan struct{}),
	}
}

// Metrics 房间运行指标
func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// JoinPlayer 将玩家加入房间。同名玩家已在线时顶替旧会话。
func (r *Room) JoinPlayer(name string, conn *ClientConn) *Player {
	p := newPlayer(name, r, conn)

	r.mu.Lock()
	old := r.players[p.id]
	if old != nil {
		r.removeLocked(old)
	}
	r.players[p.id] = p
	r.order = append(r.order, p)
	r.mu.Unlock()

	if old != nil && old.conn != nil {
		old.conn.CloseWithReason(replacedReason)
	}
	Log.Infof("player joined: room=%s name=%s uuid=%s", r.ID, name, p.id)
	return p
}

// replacedReason 同名玩家在别处登录时旧会话收到的原因
const replacedReason = "Logged in from another location"

// evict 立即移除玩家并以给定原因关闭连接（不经过 Tick 线程）
func (r *Room) evict(p *Player, reason string) {
	r.mu.Lock()
	removed := r.removeLocked(p)
	r.mu.Unlock()
	if !removed {
		return
	}
	if p.conn != nil {
		p.conn.CloseWithReason(reason)
	}
	Log.Infof("player replaced: room=%s name=%s uuid=%s", r.ID, p.name, p.id)
}

// LeavePlayer 将玩家移出房间；p 已被新会话顶替时不做任何事
func (r *Room) LeavePlayer(p *Player) {
	r.mu.Lock()
	removed := r.removeLocked(p)
	r.mu.Unlock()
	if !removed {
		return
	}
	if p.conn != nil {
		p.conn.Close()
	}
	Log.Infof("player left: room=%s name=%s uuid=%s", r.ID, p.name, p.id)
}

func (r *Room) removeLocked(p *Player) bool {
	if cur, ok := r.players[p.id]; !ok || cur != p {
		return false
	}
	delete(r.players, p.id)
	for i, q := range r.order {
		if q == p {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Player 按 UUID 查找在线玩家
func (r *Room) Player(id uuid.UUID) (*Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	return p, ok
}

// Players 在线玩家副本（按加入顺序）
func (r *Room) Players() []*Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Player(nil), r.order...)
}

// OnInput 入站输入（不立即改变位置），仅记录意图，等下一次 Tick 处理
func (r *Room) OnInput(in Input) {
	// 不阻塞：输入拥塞时丢弃（由通道容量控制），保证 Tick 准时
	select {
	case r.inputChan <- in:
	default:
		r.metrics.IncDropped()
	}
}

// RequestLeave 请求在 Tick 线程中移除玩家，避免并发改动房间状态
func (r *Room) RequestLeave(p *Player) {
	// 房间已停止时没有 Tick 线程，直接移除
	select {
	case <-r.stop:
		r.LeavePlayer(p)
		return
	default:
	}
	// 为保证移除一定生效，这里采用阻塞式写入（通道有容量，避免死锁）
	select {
	case r.leaveChan <- p:
	case <-r.stop:
		r.LeavePlayer(p)
	}
}

// ProcessInputs 处理当前帧的所有输入意图（非阻塞 drain）
func (r *Room) ProcessInputs() {
	for {
		select {
		case p := <-r.leaveChan:
			r.LeavePlayer(p)
		case in := <-r.inputChan:
			p, ok := r.Player(in.PlayerID)
			if !ok {
				continue
			}
			// 序列号不大于上一次处理的值视为重复或乱序，丢弃；0 表示客户端不带序列号
			if in.Seq > 0 {
				if in.Seq <= p.lastSeq {
					r.metrics.IncOldSeqIgnored()
					continue
				}
				p.lastSeq = in.Seq
			}
			r.metrics.IncAccepted()
			switch in.Kind {
			case InputMove:
				r.applyMove(p, in.Command) // 每个输入仅移动一步
			case InputDrop:
				if st, ok := p.DropSlot(in.Slot); ok {
					Log.Debugf("player dropped: room=%s name=%s item=%s x%d", r.ID, p.name, st.Item, st.Count)
				}
			}
		default:
			return
		}
	}
}

// Broadcast 将当前世界状态广播给所有玩家（文本 JSON）
func (r *Room) Broadcast() {
	players := r.Players()
	snapshot := make([]PlayerState, 0, len(players))
	for _, p := range players {
		snapshot = append(snapshot, p.state())
	}
	b, err := json.Marshal(stateMessage{Type: "state", Room: r.ID, Tick: r.tickSeq.Load(), Players: snapshot})
	if err != nil {
		Log.Errorf("encode state: %v", err)
		return
	}
	for _, p := range players {
		if p.conn != nil {
			p.conn.Enqueue(b)
		}
	}
}

// applyMove 在 x/z 平面执行一次移动并进行越界裁剪
func (r *Room) applyMove(p *Player, dir Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch dir {
	case DirUp:
		p.pos[2] -= r.step
	case DirDown:
		p.pos[2] += r.step
	case DirLeft:
		p.pos[0] -= r.step
	case DirRight:
		p.pos[0] += r.step
	default:
		// no-op
	}
	p.pos[0] = clamp(p.pos[0], 0, r.size)
	p.pos[2] = clamp(p.pos[2], 0, r.size)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
